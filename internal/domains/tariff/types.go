package tariff

import (
	"errors"
	"time"
)

type RentalType string

const (
	RentalHourly    RentalType = "hourly"
	RentalDaily     RentalType = "daily"
	RentalOvernight RentalType = "overnight"
)

type SurchargeMode string

const (
	SurchargeModeAmount  SurchargeMode = "amount"
	SurchargeModePercent SurchargeMode = "percent"
)

type RuleType string

const (
	RuleEarly RuleType = "early"
	RuleLate  RuleType = "late"
)

// OverflowPolicy decides what happens when the elapsed minutes exceed the
// upper bound of every configured window: reuse the last window's percentage,
// or charge nothing.
type OverflowPolicy string

const (
	OverflowClampLast OverflowPolicy = "clamp_last"
	OverflowZero      OverflowPolicy = "zero"
)

var (
	ErrMissingPricing    = errors.New("pricing config is missing or incomplete")
	ErrOvernightDisabled = errors.New("overnight rental is not enabled for this category")
	ErrUnknownRentalType = errors.New("unknown rental type")
)

// Rule is one ordered time-window surcharge tier. The window
// [FromMinute, ToMinute) is half-open; the first matching rule wins and
// replaces, never adds to, earlier tiers.
type Rule struct {
	Type       RuleType
	FromMinute int
	ToMinute   int
	Percentage float64
}

// Pricing is the immutable room-category pricing snapshot taken at
// calculation time.
type Pricing struct {
	PriceHourly           int64
	PriceNextHour         int64
	HourlyUnitMinutes     int
	BaseHourlyLimit       int
	PriceDaily            int64
	PriceOvernight        int64
	OvernightEnabled      bool
	PriceExtraAdult       int64
	PriceExtraChild       int64
	ExtraPersonEnabled    bool
	AutoSurchargeEnabled  bool
	SurchargeMode         SurchargeMode
	HourlySurchargeAmount int64
	OverflowPolicy        OverflowPolicy
	Rules                 []Rule
}

// Schedule is the immutable global settings snapshot taken at calculation
// time. Times are clock strings in "15:04" form.
type Schedule struct {
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

// Input carries every fact the calculator needs. It is passed by value;
// identical inputs produce identical bills.
type Input struct {
	RentalType    RentalType
	CheckIn       time.Time
	CheckOut      time.Time
	ExtraAdults   int
	ExtraChildren int

	// CustomPrice, when set, replaces the whole room-charge computation.
	CustomPrice *int64

	// Staff-entered adjustments applied additively to the subtotal.
	DiscountAmount  int64
	CustomSurcharge int64

	DepositAmount   int64
	CustomerBalance int64

	Pricing  Pricing
	Schedule Schedule
}

// Bill is the computed breakdown for one booking. Ephemeral, never persisted
// as a row; the Explanation trail is stored verbatim on the booking at
// checkout.
type Bill struct {
	RoomCharge             int64
	Surcharge              int64
	SurchargeExplanation   string
	ExtraPerson            int64
	ExtraPersonExplanation string
	DiscountAmount         int64
	CustomSurcharge        int64
	Subtotal               int64
	ServiceFee             int64
	VAT                    int64
	TotalAmount            int64
	DepositAmount          int64
	TotalReceivable        int64
	Explanation            []string
}
