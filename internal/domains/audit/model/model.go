package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "audit_logs"
	EntityName = "audit log"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldCustomerID  = "customer_id"
	FieldRoomID      = "room_id"
	FieldStaffID     = "staff_id"
	FieldTotalAmount = "total_amount"
	FieldExplanation = "explanation"
	FieldOccurredAt  = "occurred_at"
)

// AuditLog is a write-once record of one checkout (or one failure inside it).
// Explanation stores the full bill trail joined line by line; rows are never
// updated or deleted.
type AuditLog struct {
	ID          string    `db:"id"`
	BookingID   string    `db:"booking_id"`
	CustomerID  string    `db:"customer_id"`
	RoomID      string    `db:"room_id"`
	StaffID     string    `db:"staff_id"`
	TotalAmount int64     `db:"total_amount"`
	Explanation string    `db:"explanation"`
	OccurredAt  time.Time `db:"occurred_at"`
	model.Metadata
}
