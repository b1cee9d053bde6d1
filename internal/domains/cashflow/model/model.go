package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "cash_flow_entries"
	EntityName = "cash flow entry"

	FieldID            = "id"
	FieldFlowType      = "flow_type"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldPaymentMethod = "payment_method"
	FieldRefID         = "ref_id"
	FieldIsAuto        = "is_auto"
	FieldVerifiedByID  = "verified_by_staff_id"
	FieldVerifiedBy    = "verified_by_staff_name"
	FieldOccurredAt    = "occurred_at"
)

const (
	FlowTypeIn  = "IN"
	FlowTypeOut = "OUT"

	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodBank     = "bank"
	PaymentMethodQR       = "qr"
	PaymentMethodCredit   = "credit"

	CategoryRoomCharge = "Tiền phòng"
	CategoryDebtPaid   = "Thu nợ"
	CategoryExtraFee   = "Phụ phí"
	CategoryRefund     = "Hoàn tiền"
	CategoryAdjustment = "Điều chỉnh"
)

// CashFlowEntry is one append-only ledger row. Amount is a non-negative
// magnitude; FlowType carries the direction. Rows are never updated in
// place, and only manual (is_auto = false) rows can be reversed.
type CashFlowEntry struct {
	ID            string    `db:"id"`
	FlowType      string    `db:"flow_type"`
	Category      string    `db:"category"`
	Amount        int64     `db:"amount"`
	PaymentMethod string    `db:"payment_method"`
	RefID         *string   `db:"ref_id"`
	IsAuto        bool      `db:"is_auto"`
	VerifiedByID  string    `db:"verified_by_staff_id"`
	VerifiedBy    string    `db:"verified_by_staff_name"`
	OccurredAt    time.Time `db:"occurred_at"`
	model.Metadata
}

// SignedAmount is the entry's effect on its wallet.
func (e CashFlowEntry) SignedAmount() int64 {
	if e.FlowType == FlowTypeOut {
		return -e.Amount
	}

	return e.Amount
}

const (
	WalletTableName  = "wallets"
	WalletEntityName = "wallet"

	WalletCash = "CASH"
	WalletBank = "BANK"

	FieldWalletName    = "name"
	FieldWalletBalance = "balance"
)

// Wallet is the projected balance of one physical money store. Its balance
// always equals the signed sum of the ledger entries mapped to it.
type Wallet struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Balance int64  `db:"balance"`
	model.Metadata
}

// WalletForPaymentMethod maps a payment method to the wallet it moves money
// through. Credit settles against the customer balance and touches no wallet;
// the second return is false in that case.
func WalletForPaymentMethod(method string) (string, bool) {
	switch method {
	case PaymentMethodCash:
		return WalletCash, true
	case PaymentMethodTransfer, PaymentMethodBank, PaymentMethodQR:
		return WalletBank, true
	default:
		return "", false
	}
}
