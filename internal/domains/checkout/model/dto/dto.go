package dto

import (
	"time"

	"hotel/internal/domains/tariff"
)

// CheckoutRequest is the staff-entered portion of a checkout. Discount and
// surcharge override whatever was stored on the booking at check-in.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash transfer bank qr credit"`
	AmountPaid    int64  `json:"amount_paid"    validate:"min=0"`
	Discount      *int64 `json:"discount"       validate:"omitempty,min=0"`
	Surcharge     *int64 `json:"surcharge"      validate:"omitempty,min=0"`
	Notes         string `json:"notes"          validate:"omitempty,max=500"`
}

// BillResponse is the bill contract. The keys are stable: dashboards poll
// this shape continuously and the same shape is stored in the audit trail.
type BillResponse struct {
	BookingID              string     `json:"booking_id"`
	RoomID                 string     `json:"room_id"`
	RoomName               string     `json:"room_name"`
	CustomerID             string     `json:"customer_id"`
	CustomerName           string     `json:"customer_name"`
	RentalType             string     `json:"rental_type"`
	CheckIn                time.Time  `json:"check_in"`
	CheckOut               time.Time  `json:"check_out"`
	RoomCharge             int64      `json:"room_charge"`
	Surcharge              int64      `json:"surcharge"`
	SurchargeExplanation   string     `json:"surcharge_explanation"`
	ExtraPerson            int64      `json:"extra_person"`
	ExtraPersonExplanation string     `json:"extra_person_explanation"`
	Discount               int64      `json:"discount"`
	ExtraSurcharge         int64      `json:"extra_surcharge"`
	Subtotal               int64      `json:"subtotal"`
	ServiceFee             int64      `json:"service_fee"`
	VAT                    int64      `json:"vat"`
	TotalAmount            int64      `json:"total_amount"`
	DepositAmount          int64      `json:"deposit_amount"`
	CustomerBalance        int64      `json:"customer_balance"`
	TotalReceivable        int64      `json:"total_receivable"`
	Explanation            []string   `json:"explanation"`
}

func (r *BillResponse) FromBill(bill tariff.Bill, checkIn, checkOut time.Time) {
	r.CheckIn = checkIn
	r.CheckOut = checkOut
	r.RoomCharge = bill.RoomCharge
	r.Surcharge = bill.Surcharge
	r.SurchargeExplanation = bill.SurchargeExplanation
	r.ExtraPerson = bill.ExtraPerson
	r.ExtraPersonExplanation = bill.ExtraPersonExplanation
	r.Discount = bill.DiscountAmount
	r.ExtraSurcharge = bill.CustomSurcharge
	r.Subtotal = bill.Subtotal
	r.ServiceFee = bill.ServiceFee
	r.VAT = bill.VAT
	r.TotalAmount = bill.TotalAmount
	r.DepositAmount = bill.DepositAmount
	r.TotalReceivable = bill.TotalReceivable
	r.Explanation = bill.Explanation
}

// CheckoutResult is soft by design: business refusals (unknown booking,
// already checked out) come back as Success=false with a message, not as
// transport errors.
type CheckoutResult struct {
	Success    bool          `json:"success"`
	Message    string        `json:"message"`
	NewBalance int64         `json:"new_balance"`
	Bill       *BillResponse `json:"bill,omitempty"`
}
