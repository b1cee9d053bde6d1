package model

import "hotel/shared/model"

const (
	TableName  = "settings"
	EntityName = "settings"

	// The settings table holds exactly one row.
	SingletonID = "global"

	FieldID                = "id"
	FieldCheckInTime       = "check_in_time"
	FieldCheckOutTime      = "check_out_time"
	FieldEarlyGraceMinutes = "early_grace_minutes"
	FieldEarlyGraceEnabled = "early_grace_enabled"
	FieldLateGraceMinutes  = "late_grace_minutes"
	FieldLateGraceEnabled  = "late_grace_enabled"
	FieldServiceFeeEnabled = "service_fee_enabled"
	FieldServiceFeePercent = "service_fee_percent"
	FieldVATEnabled        = "vat_enabled"
	FieldVATPercent        = "vat_percent"
)

// Settings is the hotel-wide configuration row. Times are clock strings in
// "15:04" form.
type Settings struct {
	ID                string  `db:"id"`
	CheckInTime       string  `db:"check_in_time"`
	CheckOutTime      string  `db:"check_out_time"`
	EarlyGraceMinutes int     `db:"early_grace_minutes"`
	EarlyGraceEnabled bool    `db:"early_grace_enabled"`
	LateGraceMinutes  int     `db:"late_grace_minutes"`
	LateGraceEnabled  bool    `db:"late_grace_enabled"`
	ServiceFeeEnabled bool    `db:"service_fee_enabled"`
	ServiceFeePercent float64 `db:"service_fee_percent"`
	VATEnabled        bool    `db:"vat_enabled"`
	VATPercent        float64 `db:"vat_percent"`
	model.Metadata
}

// Snapshot is the immutable view handed to the pricing engine. It is passed
// by value so a concurrent settings update can never change a bill mid
// calculation.
type Snapshot struct {
	CheckInTime       string
	CheckOutTime      string
	EarlyGraceMinutes int
	EarlyGraceEnabled bool
	LateGraceMinutes  int
	LateGraceEnabled  bool
	ServiceFeeEnabled bool
	ServiceFeePercent float64
	VATEnabled        bool
	VATPercent        float64
}

func (s Settings) Snapshot() Snapshot {
	return Snapshot{
		CheckInTime:       s.CheckInTime,
		CheckOutTime:      s.CheckOutTime,
		EarlyGraceMinutes: s.EarlyGraceMinutes,
		EarlyGraceEnabled: s.EarlyGraceEnabled,
		LateGraceMinutes:  s.LateGraceMinutes,
		LateGraceEnabled:  s.LateGraceEnabled,
		ServiceFeeEnabled: s.ServiceFeeEnabled,
		ServiceFeePercent: s.ServiceFeePercent,
		VATEnabled:        s.VATEnabled,
		VATPercent:        s.VATPercent,
	}
}
