package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldRoomID            = "room_id"
	FieldCustomerID        = "customer_id"
	FieldRentalType        = "rental_type"
	FieldCheckInActual     = "check_in_actual"
	FieldCheckOutActual    = "check_out_actual"
	FieldExtraAdults       = "extra_adults"
	FieldExtraChildren     = "extra_children"
	FieldCustomPrice       = "custom_price"
	FieldDepositAmount     = "deposit_amount"
	FieldDiscountAmount    = "discount_amount"
	FieldCustomSurcharge   = "custom_surcharge"
	FieldStatus            = "status"
	FieldBillingAuditTrail = "billing_audit_trail"
	FieldNotes             = "notes"
)

const (
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"

	RentalTypeHourly    = "hourly"
	RentalTypeDaily     = "daily"
	RentalTypeOvernight = "overnight"
)

// Booking is one stay. CheckOutActual stays nil until checkout;
// BillingAuditTrail stores the final bill explanation verbatim so a disputed
// charge can be replayed line by line.
type Booking struct {
	ID                string     `db:"id"`
	RoomID            string     `db:"room_id"`
	CustomerID        string     `db:"customer_id"`
	RentalType        string     `db:"rental_type"`
	CheckInActual     time.Time  `db:"check_in_actual"`
	CheckOutActual    *time.Time `db:"check_out_actual"`
	ExtraAdults       int        `db:"extra_adults"`
	ExtraChildren     int        `db:"extra_children"`
	CustomPrice       *int64     `db:"custom_price"`
	DepositAmount     int64      `db:"deposit_amount"`
	DiscountAmount    int64      `db:"discount_amount"`
	CustomSurcharge   int64      `db:"custom_surcharge"`
	Status            string     `db:"status"`
	BillingAuditTrail string     `db:"billing_audit_trail"`
	Notes             string     `db:"notes"`
	model.Metadata
}
