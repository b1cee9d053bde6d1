package dto

import (
	"hotel/internal/domains/settings/model"
	gDto "hotel/shared/dto"
)

type UpdateSettingsRequest struct {
	CheckInTime       string   `db:"check_in_time"       json:"check_in_time"       validate:"omitempty,len=5,datetime=15:04"`
	CheckOutTime      string   `db:"check_out_time"      json:"check_out_time"      validate:"omitempty,len=5,datetime=15:04"`
	EarlyGraceMinutes *int     `db:"early_grace_minutes" json:"early_grace_minutes" validate:"omitempty,min=0"`
	EarlyGraceEnabled *bool    `db:"early_grace_enabled" json:"early_grace_enabled" validate:"omitempty"`
	LateGraceMinutes  *int     `db:"late_grace_minutes"  json:"late_grace_minutes"  validate:"omitempty,min=0"`
	LateGraceEnabled  *bool    `db:"late_grace_enabled"  json:"late_grace_enabled"  validate:"omitempty"`
	ServiceFeeEnabled *bool    `db:"service_fee_enabled" json:"service_fee_enabled" validate:"omitempty"`
	ServiceFeePercent *float64 `db:"service_fee_percent" json:"service_fee_percent" validate:"omitempty,min=0,max=100"`
	VATEnabled        *bool    `db:"vat_enabled"         json:"vat_enabled"         validate:"omitempty"`
	VATPercent        *float64 `db:"vat_percent"         json:"vat_percent"         validate:"omitempty,min=0,max=100"`
}

type SettingsResponse struct {
	CheckInTime       string  `json:"check_in_time"`
	CheckOutTime      string  `json:"check_out_time"`
	EarlyGraceMinutes int     `json:"early_grace_minutes"`
	EarlyGraceEnabled bool    `json:"early_grace_enabled"`
	LateGraceMinutes  int     `json:"late_grace_minutes"`
	LateGraceEnabled  bool    `json:"late_grace_enabled"`
	ServiceFeeEnabled bool    `json:"service_fee_enabled"`
	ServiceFeePercent float64 `json:"service_fee_percent"`
	VATEnabled        bool    `json:"vat_enabled"`
	VATPercent        float64 `json:"vat_percent"`
	gDto.Metadata
}

func (r *SettingsResponse) FromModel(mod model.Settings) {
	r.CheckInTime = mod.CheckInTime
	r.CheckOutTime = mod.CheckOutTime
	r.EarlyGraceMinutes = mod.EarlyGraceMinutes
	r.EarlyGraceEnabled = mod.EarlyGraceEnabled
	r.LateGraceMinutes = mod.LateGraceMinutes
	r.LateGraceEnabled = mod.LateGraceEnabled
	r.ServiceFeeEnabled = mod.ServiceFeeEnabled
	r.ServiceFeePercent = mod.ServiceFeePercent
	r.VATEnabled = mod.VATEnabled
	r.VATPercent = mod.VATPercent
	r.Metadata.FromModel(mod.Metadata)
}
