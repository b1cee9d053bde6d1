package tariff_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/internal/domains/tariff"
)

func standardSchedule() tariff.Schedule {
	return tariff.Schedule{
		CheckInTime:       "14:00",
		CheckOutTime:      "12:00",
		EarlyGraceMinutes: 30,
		EarlyGraceEnabled: true,
		LateGraceMinutes:  30,
		LateGraceEnabled:  true,
	}
}

func percentPricing(daily int64, rules ...tariff.Rule) tariff.Pricing {
	return tariff.Pricing{
		PriceDaily:           daily,
		AutoSurchargeEnabled: true,
		SurchargeMode:        tariff.SurchargeModePercent,
		OverflowPolicy:       tariff.OverflowClampLast,
		Rules:                rules,
	}
}

func at(day int, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, time.UTC)
}

func TestCalculate_HourlyNeverSurcharged(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{name: "short stay", checkIn: at(10, 8, 0), checkOut: at(10, 9, 30)},
		{name: "deep into the night", checkIn: at(10, 8, 0), checkOut: at(10, 23, 55)},
		{name: "past standard checkout next day", checkIn: at(10, 8, 0), checkOut: at(11, 15, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill, err := tariff.Calculate(tariff.Input{
				RentalType: tariff.RentalHourly,
				CheckIn:    tt.checkIn,
				CheckOut:   tt.checkOut,
				Pricing: tariff.Pricing{
					PriceHourly:          100000,
					PriceNextHour:        50000,
					HourlyUnitMinutes:    60,
					BaseHourlyLimit:      1,
					AutoSurchargeEnabled: true,
					SurchargeMode:        tariff.SurchargeModePercent,
					OverflowPolicy:       tariff.OverflowClampLast,
					Rules: []tariff.Rule{
						{Type: tariff.RuleLate, FromMinute: 0, ToMinute: 180, Percentage: 30},
					},
				},
				Schedule: standardSchedule(),
			})

			require.NoError(t, err)
			assert.Zero(t, bill.Surcharge)
			assert.Empty(t, bill.SurchargeExplanation)
		})
	}
}

func TestCalculate_HourlyBlocks(t *testing.T) {
	// 1 base hour at 100000, then 95 extra minutes in 30-minute blocks at
	// 30000: ceil(95/30) = 4 blocks.
	bill, err := tariff.Calculate(tariff.Input{
		RentalType: tariff.RentalHourly,
		CheckIn:    at(10, 8, 0),
		CheckOut:   at(10, 10, 35),
		Pricing: tariff.Pricing{
			PriceHourly:       100000,
			PriceNextHour:     30000,
			HourlyUnitMinutes: 30,
			BaseHourlyLimit:   1,
		},
		Schedule: standardSchedule(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100000+4*30000), bill.RoomCharge)
	assert.Equal(t, bill.RoomCharge, bill.TotalAmount)
}

func TestCalculate_LateRuleSingleWindow(t *testing.T) {
	// Late rule [0,180) at 30%, 90 minutes late past grace.
	bill, err := tariff.Calculate(tariff.Input{
		RentalType: tariff.RentalDaily,
		CheckIn:    at(10, 14, 0),
		CheckOut:   at(11, 14, 0), // 12:00 + 30 grace = 12:30, so 90 late
		Pricing: percentPricing(500000,
			tariff.Rule{Type: tariff.RuleLate, FromMinute: 0, ToMinute: 180, Percentage: 30},
		),
		Schedule: standardSchedule(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(500000), bill.RoomCharge)
	assert.Equal(t, int64(150000), bill.Surcharge)
	assert.Contains(t, bill.SurchargeExplanation, "90 minute(s)")
}

func TestCalculate_LateTiersReplaceNotAccumulate(t *testing.T) {
	// 240 minutes late lands in the second tier; the 50% tier replaces the
	// 30% one, it does not add to it.
	bill, err := tariff.Calculate(tariff.Input{
		RentalType: tariff.RentalDaily,
		CheckIn:    at(10, 14, 0),
		CheckOut:   at(11, 16, 30), // 12:30 + 240
		Pricing: percentPricing(500000,
			tariff.Rule{Type: tariff.RuleLate, FromMinute: 0, ToMinute: 180, Percentage: 30},
			tariff.Rule{Type: tariff.RuleLate, FromMinute: 180, ToMinute: 360, Percentage: 50},
		),
		Schedule: standardSchedule(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(250000), bill.Surcharge)
}

func TestCalculate_OverflowPolicy(t *testing.T) {
	rules := []tariff.Rule{
		{Type: tariff.RuleLate, FromMinute: 0, ToMinute: 180, Percentage: 30},
		{Type: tariff.RuleLate, FromMinute: 180, ToMinute: 360, Percentage: 50},
	}

	tests := []struct {
		name   string
		policy tariff.OverflowPolicy
		want   int64
	}{
		{name: "clamp to last tier", policy: tariff.OverflowClampLast, want: 250000},
		{name: "zero past last tier", policy: tariff.OverflowZero, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pricing := percentPricing(500000, rules...)
			pricing.OverflowPolicy = tt.policy

			bill, err := tariff.Calculate(tariff.Input{
				RentalType: tariff.RentalDaily,
				CheckIn:    at(10, 14, 0),
				CheckOut:   at(11, 20, 30), // 480 minutes past grace, beyond every window
				Pricing:    pricing,
				Schedule:   standardSchedule(),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, bill.Surcharge)
		})
	}
}

func TestCalculate_AmountMode(t *testing.T) {
	pricing := tariff.Pricing{
		PriceDaily:            500000,
		AutoSurchargeEnabled:  true,
		SurchargeMode:         tariff.SurchargeModeAmount,
		HourlySurchargeAmount: 40000,
	}

	// 90 minutes late rounds up to 2 hours.
	bill, err := tariff.Calculate(tariff.Input{
		RentalType: tariff.RentalDaily,
		CheckIn:    at(10, 14, 0),
		CheckOut:   at(11, 14, 0),
		Pricing:    pricing,
		Schedule:   standardSchedule(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(80000), bill.Surcharge)
}

func TestCalculate_SurchargeDisabled(t *testing.T) {
	pricing := percentPricing(500000,
		tariff.Rule{Type: tariff.RuleLate, FromMinute: 0, ToMinute: 180, Percentage: 30},
	)
	pricing.AutoSurchargeEnabled = false

	bill, err := tariff.Calculate(tariff.Input{
		RentalType: tariff.RentalDaily,
		CheckIn:    at(10, 14, 0),
		CheckOut:   at(11, 14, 0),
		Pricing:    pricing,
		Schedule:   standardSchedule(),
	})

	require.NoError(t, err)
	assert.Zero(t, bill.Surcharge)
}

func TestCalculate_GraceClampsToZero(t *testing.T) {
	// Checkout 20 minutes past noon, within the 30-minute grace window.
	bill, err := tariff.Calculate(tariff.Input{
		RentalType: tariff.RentalDaily,
		CheckIn:    at(10, 14, 0),
		CheckOut:   at(11, 12, 20),
		Pricing: percentPricing(500000,
			tariff.Rule{Type: tariff.RuleLate, FromMinute: 0, ToMinute: 180, Percentage: 30},
		),
		Schedule: standardSchedule(),
	})

	require.NoError(t, err)
	assert.Zero(t, bill.Surcharge)
}

func TestCalculate_ExtraPerson(t *testing.T) {
	pricing := percentPricing(500000)
	pricing.ExtraPersonEnabled = true
	pricing.PriceExtraAdult = 50000
	pricing.PriceExtraChild = 30000

	bill, err := tariff.Calculate(tariff.Input{
		RentalType:    tariff.RentalDaily,
		CheckIn:       at(10, 14, 0),
		CheckOut:      at(11, 12, 0),
		ExtraAdults:   2,
		ExtraChildren: 1,
		Pricing:       pricing,
		Schedule:      standardSchedule(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(130000), bill.ExtraPerson)
	assert.Contains(t, bill.ExtraPersonExplanation, "2 adult(s)")
}

func TestCalculate_CustomPriceReplacesRoomCharge(t *testing.T) {
	custom := int64(123456)

	bill, err := tariff.Calculate(tariff.Input{
		RentalType:  tariff.RentalDaily,
		CheckIn:     at(10, 14, 0),
		CheckOut:    at(11, 12, 0),
		CustomPrice: &custom,
		Pricing:     tariff.Pricing{}, // daily price deliberately unset
		Schedule:    standardSchedule(),
	})

	require.NoError(t, err)
	assert.Equal(t, custom, bill.RoomCharge)
}

func TestCalculate_ReceivableWorkedExample(t *testing.T) {
	// room 500000 + 50% late tier = 750000 subtotal, 5% service fee, 10% VAT,
	// deposit 100000, customer in debt 200000.
	schedule := standardSchedule()
	schedule.ServiceFeeEnabled = true
	schedule.ServiceFeePercent = 5
	schedule.VATEnabled = true
	schedule.VATPercent = 10

	bill, err := tariff.Calculate(tariff.Input{
		RentalType: tariff.RentalDaily,
		CheckIn:    at(10, 14, 0),
		CheckOut:   at(11, 16, 30), // 240 minutes past grace
		Pricing: percentPricing(500000,
			tariff.Rule{Type: tariff.RuleLate, FromMinute: 0, ToMinute: 180, Percentage: 30},
			tariff.Rule{Type: tariff.RuleLate, FromMinute: 180, ToMinute: 360, Percentage: 50},
		),
		Schedule:        schedule,
		DepositAmount:   100000,
		CustomerBalance: -200000,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(750000), bill.Subtotal)
	assert.Equal(t, int64(37500), bill.ServiceFee)
	assert.Equal(t, int64(78750), bill.VAT)
	assert.Equal(t, int64(866250), bill.TotalAmount)
	assert.Equal(t, int64(966250), bill.TotalReceivable)
}

func TestCalculate_Idempotent(t *testing.T) {
	in := tariff.Input{
		RentalType:    tariff.RentalDaily,
		CheckIn:       at(10, 13, 10),
		CheckOut:      at(11, 14, 45),
		ExtraAdults:   1,
		ExtraChildren: 2,
		Pricing: percentPricing(500000,
			tariff.Rule{Type: tariff.RuleEarly, FromMinute: 0, ToMinute: 120, Percentage: 20},
			tariff.Rule{Type: tariff.RuleLate, FromMinute: 0, ToMinute: 180, Percentage: 30},
		),
		Schedule:        standardSchedule(),
		DepositAmount:   50000,
		CustomerBalance: 25000,
	}
	in.Pricing.ExtraPersonEnabled = true
	in.Pricing.PriceExtraAdult = 50000
	in.Pricing.PriceExtraChild = 30000

	first, err := tariff.Calculate(in)
	require.NoError(t, err)

	second, err := tariff.Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Explanation, second.Explanation)
}

func TestCalculate_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   tariff.Input
		wantErr error
	}{
		{
			name: "daily price missing",
			input: tariff.Input{
				RentalType: tariff.RentalDaily,
				CheckIn:    at(10, 14, 0),
				CheckOut:   at(11, 12, 0),
				Schedule:   standardSchedule(),
			},
			wantErr: tariff.ErrMissingPricing,
		},
		{
			name: "overnight disabled",
			input: tariff.Input{
				RentalType: tariff.RentalOvernight,
				CheckIn:    at(10, 22, 0),
				CheckOut:   at(11, 8, 0),
				Pricing:    tariff.Pricing{PriceOvernight: 300000},
				Schedule:   standardSchedule(),
			},
			wantErr: tariff.ErrOvernightDisabled,
		},
		{
			name: "unknown rental type",
			input: tariff.Input{
				RentalType: tariff.RentalType("weekly"),
				CheckIn:    at(10, 14, 0),
				CheckOut:   at(11, 12, 0),
				Schedule:   standardSchedule(),
			},
			wantErr: tariff.ErrUnknownRentalType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tariff.Calculate(tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
