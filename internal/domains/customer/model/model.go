package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldPhone    = "phone"
	FieldIDNumber = "id_number"
	FieldBalance  = "balance"
)

// Customer carries a running balance in VND. Positive means the hotel owes
// the guest (credit), negative means the guest owes the hotel (debt).
type Customer struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Phone    string `db:"phone"`
	IDNumber string `db:"id_number"`
	Balance  int64  `db:"balance"`
	model.Metadata
}

const (
	TransactionTableName  = "customer_transactions"
	TransactionEntityName = "customer transaction"

	FieldTxCustomerID    = "customer_id"
	FieldTxBookingID     = "booking_id"
	FieldTxType          = "tx_type"
	FieldTxAmount        = "amount"
	FieldTxBalanceBefore = "balance_before"
	FieldTxBalanceAfter  = "balance_after"
	FieldTxPaymentMethod = "payment_method"
	FieldTxDescription   = "description"
	FieldTxStaffID       = "staff_id"
	FieldTxStaffName     = "staff_name"
	FieldTxOccurredAt    = "occurred_at"
)

const (
	TxTypePayment    = "payment"
	TxTypeCharge     = "charge"
	TxTypeRefund     = "refund"
	TxTypeAdjustment = "adjustment"
	TxTypeCheckout   = "checkout"
)

// CustomerTransaction is one append-only balance movement. Amount is the
// signed delta; BalanceBefore and BalanceAfter pin the row to one exact
// position in the customer's history.
type CustomerTransaction struct {
	ID            string    `db:"id"`
	CustomerID    string    `db:"customer_id"`
	BookingID     *string   `db:"booking_id"`
	TxType        string    `db:"tx_type"`
	Amount        int64     `db:"amount"`
	BalanceBefore int64     `db:"balance_before"`
	BalanceAfter  int64     `db:"balance_after"`
	PaymentMethod string    `db:"payment_method"`
	Description   string    `db:"description"`
	StaffID       string    `db:"staff_id"`
	StaffName     string    `db:"staff_name"`
	OccurredAt    time.Time `db:"occurred_at"`
	model.Metadata
}
