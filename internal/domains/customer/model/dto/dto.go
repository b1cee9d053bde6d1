package dto

import (
	"time"

	"hotel/internal/domains/customer/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	FullName string `json:"full_name" validate:"required,max=150"`
	Phone    string `json:"phone"     validate:"omitempty,max=20"`
	IDNumber string `json:"id_number" validate:"omitempty,max=30"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:       uuid.NewString(),
		FullName: c.FullName,
		Phone:    c.Phone,
		IDNumber: c.IDNumber,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,max=150"`
	Phone    string `db:"phone"     json:"phone"     validate:"omitempty,max=20"`
	IDNumber string `db:"id_number" json:"id_number" validate:"omitempty,max=30"`
}

// AdjustBalanceRequest is a manual front-desk balance operation. Amount must
// be positive for payment, charge and refund; only adjustment takes a signed
// amount.
type AdjustBalanceRequest struct {
	Type          string  `json:"type"           validate:"required,oneof=payment charge refund adjustment"`
	Amount        int64   `json:"amount"         validate:"required"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash transfer bank qr credit"`
	Description   string  `json:"description"    validate:"omitempty,max=300"`
	BookingID     *string `json:"booking_id"     validate:"omitempty"`
}

type AdjustResult struct {
	Success    bool   `json:"success"`
	NewBalance int64  `json:"new_balance"`
	Message    string `json:"message"`
}

type CustomerResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	IDNumber string `json:"id_number"`
	Balance  int64  `json:"balance"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(mod model.Customer) {
	r.ID = mod.ID
	r.FullName = mod.FullName
	r.Phone = mod.Phone
	r.IDNumber = mod.IDNumber
	r.Balance = mod.Balance
	r.Metadata.FromModel(mod.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

type TransactionResponse struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	BookingID     *string   `json:"booking_id"`
	TxType        string    `json:"tx_type"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	PaymentMethod string    `json:"payment_method"`
	Description   string    `json:"description"`
	StaffID       string    `json:"staff_id"`
	StaffName     string    `json:"staff_name"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (r *TransactionResponse) FromModel(mod model.CustomerTransaction) {
	r.ID = mod.ID
	r.CustomerID = mod.CustomerID
	r.BookingID = mod.BookingID
	r.TxType = mod.TxType
	r.Amount = mod.Amount
	r.BalanceBefore = mod.BalanceBefore
	r.BalanceAfter = mod.BalanceAfter
	r.PaymentMethod = mod.PaymentMethod
	r.Description = mod.Description
	r.StaffID = mod.StaffID
	r.StaffName = mod.StaffName
	r.OccurredAt = mod.OccurredAt
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.CustomerTransaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}
