package dto

import (
	"strings"
	"time"

	"hotel/internal/domains/audit/model"
	"hotel/shared"
)

type AuditLogResponse struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	CustomerID  string    `json:"customer_id"`
	RoomID      string    `json:"room_id"`
	StaffID     string    `json:"staff_id"`
	TotalAmount int64     `json:"total_amount"`
	Explanation []string  `json:"explanation"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (r *AuditLogResponse) FromModel(mod model.AuditLog) {
	r.ID = mod.ID
	r.BookingID = mod.BookingID
	r.CustomerID = mod.CustomerID
	r.RoomID = mod.RoomID
	r.StaffID = mod.StaffID
	r.TotalAmount = mod.TotalAmount
	r.OccurredAt = mod.OccurredAt

	if mod.Explanation != "" {
		r.Explanation = strings.Split(mod.Explanation, "\n")
	}
}

type GetAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"audit_logs"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetAuditLogsResponse) FromModels(models []model.AuditLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.AuditLogs = make([]AuditLogResponse, len(models))
	for i, mod := range models {
		r.AuditLogs[i].FromModel(mod)
	}
}
