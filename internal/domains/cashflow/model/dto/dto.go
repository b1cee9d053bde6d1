package dto

import (
	"time"

	"hotel/internal/domains/cashflow/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

// CreateEntryRequest is a manual ledger entry recorded by staff. Automatic
// entries are produced by checkout and never arrive through this DTO.
type CreateEntryRequest struct {
	FlowType      string  `json:"flow_type"      validate:"required,oneof=IN OUT"`
	Category      string  `json:"category"       validate:"required,max=100"`
	Amount        int64   `json:"amount"         validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash transfer bank qr credit"`
	RefID         *string `json:"ref_id"         validate:"omitempty"`
	OccurredAt    string  `json:"occurred_at"    validate:"omitempty"`
}

func (c *CreateEntryRequest) ToModel(staffID, staffName string) (model.CashFlowEntry, error) {
	occurredAt := timezone.Now()
	if c.OccurredAt != "" {
		parsed, err := time.Parse(time.RFC3339, c.OccurredAt)
		if err != nil {
			return model.CashFlowEntry{}, err
		}
		occurredAt = parsed
	}

	return model.CashFlowEntry{
		ID:            uuid.NewString(),
		FlowType:      c.FlowType,
		Category:      c.Category,
		Amount:        c.Amount,
		PaymentMethod: c.PaymentMethod,
		RefID:         c.RefID,
		IsAuto:        false,
		VerifiedByID:  staffID,
		VerifiedBy:    staffName,
		OccurredAt:    occurredAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  staffID,
			ModifiedBy: staffID,
		},
	}, nil
}

type EntryResponse struct {
	ID            string    `json:"id"`
	FlowType      string    `json:"flow_type"`
	Category      string    `json:"category"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	RefID         *string   `json:"ref_id"`
	IsAuto        bool      `json:"is_auto"`
	VerifiedByID  string    `json:"verified_by_staff_id"`
	VerifiedBy    string    `json:"verified_by_staff_name"`
	OccurredAt    time.Time `json:"occurred_at"`
	gDto.Metadata
}

func (r *EntryResponse) FromModel(mod model.CashFlowEntry) {
	r.ID = mod.ID
	r.FlowType = mod.FlowType
	r.Category = mod.Category
	r.Amount = mod.Amount
	r.PaymentMethod = mod.PaymentMethod
	r.RefID = mod.RefID
	r.IsAuto = mod.IsAuto
	r.VerifiedByID = mod.VerifiedByID
	r.VerifiedBy = mod.VerifiedBy
	r.OccurredAt = mod.OccurredAt
	r.Metadata.FromModel(mod.Metadata)
}

type GetEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEntriesResponse) FromModels(models []model.CashFlowEntry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Entries = make([]EntryResponse, len(models))
	for i, mod := range models {
		r.Entries[i].FromModel(mod)
	}
}

type WalletResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

func (r *WalletResponse) FromModel(mod model.Wallet) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Balance = mod.Balance
}

type GetWalletsResponse struct {
	Wallets []WalletResponse `json:"wallets"`
}

func (r *GetWalletsResponse) FromModels(models []model.Wallet) {
	r.Wallets = make([]WalletResponse, len(models))
	for i, mod := range models {
		r.Wallets[i].FromModel(mod)
	}
}

type WalletBalanceAtResponse struct {
	WalletID string    `json:"wallet_id"`
	At       time.Time `json:"at"`
	Balance  int64     `json:"balance"`
}

// EntryEvent is the post-commit notification payload.
type EntryEvent struct {
	EntryID    string    `json:"entry_id"`
	FlowType   string    `json:"flow_type"`
	Category   string    `json:"category"`
	Amount     int64     `json:"amount"`
	WalletID   string    `json:"wallet_id,omitempty"`
	Reversed   bool      `json:"reversed"`
	OccurredAt time.Time `json:"occurred_at"`
}
