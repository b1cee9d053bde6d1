package dto

import (
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID          string `json:"room_id"          validate:"required"`
	CustomerID      string `json:"customer_id"      validate:"required"`
	RentalType      string `json:"rental_type"      validate:"required,oneof=hourly daily overnight"`
	CheckInActual   string `json:"check_in_actual"  validate:"omitempty"`
	ExtraAdults     int    `json:"extra_adults"     validate:"omitempty,min=0"`
	ExtraChildren   int    `json:"extra_children"   validate:"omitempty,min=0"`
	CustomPrice     *int64 `json:"custom_price"     validate:"omitempty,min=0"`
	DepositAmount   int64  `json:"deposit_amount"   validate:"omitempty,min=0"`
	DiscountAmount  int64  `json:"discount_amount"  validate:"omitempty,min=0"`
	CustomSurcharge int64  `json:"custom_surcharge" validate:"omitempty,min=0"`
	Notes           string `json:"notes"            validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn := timezone.Now()
	if c.CheckInActual != "" {
		parsed, err := time.Parse(time.RFC3339, c.CheckInActual)
		if err != nil {
			return model.Booking{}, err
		}
		checkIn = parsed
	}

	return model.Booking{
		ID:              uuid.NewString(),
		RoomID:          c.RoomID,
		CustomerID:      c.CustomerID,
		RentalType:      c.RentalType,
		CheckInActual:   checkIn,
		ExtraAdults:     c.ExtraAdults,
		ExtraChildren:   c.ExtraChildren,
		CustomPrice:     c.CustomPrice,
		DepositAmount:   c.DepositAmount,
		DiscountAmount:  c.DiscountAmount,
		CustomSurcharge: c.CustomSurcharge,
		Status:          model.StatusCheckedIn,
		Notes:           c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingRequest struct {
	RentalType      string `db:"rental_type"      json:"rental_type"      validate:"omitempty,oneof=hourly daily overnight"`
	ExtraAdults     *int   `db:"extra_adults"     json:"extra_adults"     validate:"omitempty,min=0"`
	ExtraChildren   *int   `db:"extra_children"   json:"extra_children"   validate:"omitempty,min=0"`
	CustomPrice     *int64 `db:"custom_price"     json:"custom_price"     validate:"omitempty,min=0"`
	DepositAmount   *int64 `db:"deposit_amount"   json:"deposit_amount"   validate:"omitempty,min=0"`
	DiscountAmount  *int64 `db:"discount_amount"  json:"discount_amount"  validate:"omitempty,min=0"`
	CustomSurcharge *int64 `db:"custom_surcharge" json:"custom_surcharge" validate:"omitempty,min=0"`
	Notes           string `db:"notes"            json:"notes"            validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID                string     `json:"id"`
	RoomID            string     `json:"room_id"`
	CustomerID        string     `json:"customer_id"`
	RentalType        string     `json:"rental_type"`
	CheckInActual     time.Time  `json:"check_in_actual"`
	CheckOutActual    *time.Time `json:"check_out_actual"`
	ExtraAdults       int        `json:"extra_adults"`
	ExtraChildren     int        `json:"extra_children"`
	CustomPrice       *int64     `json:"custom_price"`
	DepositAmount     int64      `json:"deposit_amount"`
	DiscountAmount    int64      `json:"discount_amount"`
	CustomSurcharge   int64      `json:"custom_surcharge"`
	Status            string     `json:"status"`
	BillingAuditTrail string     `json:"billing_audit_trail"`
	Notes             string     `json:"notes"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.RoomID = mod.RoomID
	r.CustomerID = mod.CustomerID
	r.RentalType = mod.RentalType
	r.CheckInActual = mod.CheckInActual
	r.CheckOutActual = mod.CheckOutActual
	r.ExtraAdults = mod.ExtraAdults
	r.ExtraChildren = mod.ExtraChildren
	r.CustomPrice = mod.CustomPrice
	r.DepositAmount = mod.DepositAmount
	r.DiscountAmount = mod.DiscountAmount
	r.CustomSurcharge = mod.CustomSurcharge
	r.Status = mod.Status
	r.BillingAuditTrail = mod.BillingAuditTrail
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
