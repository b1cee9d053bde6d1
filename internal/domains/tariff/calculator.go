// Package tariff implements the deterministic pricing calculator for room
// bookings. Calculate is a pure function: it takes no locks, touches no
// storage, and produces byte-identical output for identical inputs, so it is
// safe to recompute per active booking on every dashboard refresh and once
// more, unchanged, at checkout.
package tariff

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const minutesPerHour = 60

// Calculate produces the bill breakdown for one booking from immutable
// snapshots of the booking facts, category pricing and global settings.
func Calculate(in Input) (Bill, error) {
	bill := Bill{
		DiscountAmount:  in.DiscountAmount,
		CustomSurcharge: in.CustomSurcharge,
		DepositAmount:   in.DepositAmount,
		Explanation:     []string{},
	}

	roomCharge, err := roomCharge(in, &bill)
	if err != nil {
		return Bill{}, err
	}

	bill.RoomCharge = roomCharge

	if err := applySurcharge(in, &bill); err != nil {
		return Bill{}, err
	}

	applyExtraPerson(in, &bill)

	bill.Subtotal = bill.RoomCharge + bill.Surcharge + bill.ExtraPerson

	if in.CustomSurcharge != 0 {
		bill.Subtotal += in.CustomSurcharge
		bill.explain("Additional surcharge: %d", in.CustomSurcharge)
	}

	if in.DiscountAmount != 0 {
		bill.Subtotal -= in.DiscountAmount
		bill.explain("Discount: -%d", in.DiscountAmount)
	}

	bill.explain("Subtotal: %d", bill.Subtotal)

	if in.Schedule.ServiceFeeEnabled {
		bill.ServiceFee = percentOf(bill.Subtotal, in.Schedule.ServiceFeePercent)
		bill.explain("Service fee %s%%: %d", trimFloat(in.Schedule.ServiceFeePercent), bill.ServiceFee)
	}

	if in.Schedule.VATEnabled {
		bill.VAT = percentOf(bill.Subtotal+bill.ServiceFee, in.Schedule.VATPercent)
		bill.explain("VAT %s%%: %d", trimFloat(in.Schedule.VATPercent), bill.VAT)
	}

	bill.TotalAmount = bill.Subtotal + bill.ServiceFee + bill.VAT
	bill.explain("Total amount: %d", bill.TotalAmount)

	if in.DepositAmount != 0 {
		bill.explain("Deposit held: %d", in.DepositAmount)
	}

	// A negative customer balance (debt) increases the receivable, a positive
	// balance (credit) reduces it.
	bill.TotalReceivable = (bill.TotalAmount - in.DepositAmount) - in.CustomerBalance
	if in.CustomerBalance != 0 {
		bill.explain("Customer balance applied: %d", in.CustomerBalance)
	}

	bill.explain("Total receivable: %d", bill.TotalReceivable)

	return bill, nil
}

func roomCharge(in Input, bill *Bill) (int64, error) {
	if in.CustomPrice != nil {
		bill.explain("Room charge (custom price): %d", *in.CustomPrice)

		return *in.CustomPrice, nil
	}

	switch in.RentalType {
	case RentalHourly:
		return hourlyCharge(in, bill)
	case RentalDaily:
		if in.Pricing.PriceDaily <= 0 {
			return 0, fmt.Errorf("price_daily is not set: %w", ErrMissingPricing)
		}

		bill.explain("Room charge (daily): %d", in.Pricing.PriceDaily)

		return in.Pricing.PriceDaily, nil
	case RentalOvernight:
		if !in.Pricing.OvernightEnabled {
			return 0, ErrOvernightDisabled
		}

		if in.Pricing.PriceOvernight <= 0 {
			return 0, fmt.Errorf("price_overnight is not set: %w", ErrMissingPricing)
		}

		bill.explain("Room charge (overnight): %d", in.Pricing.PriceOvernight)

		return in.Pricing.PriceOvernight, nil
	default:
		return 0, fmt.Errorf("%q: %w", in.RentalType, ErrUnknownRentalType)
	}
}

func hourlyCharge(in Input, bill *Bill) (int64, error) {
	pricing := in.Pricing

	if pricing.PriceHourly <= 0 || pricing.BaseHourlyLimit <= 0 {
		return 0, fmt.Errorf("hourly pricing is not set: %w", ErrMissingPricing)
	}

	if pricing.HourlyUnitMinutes <= 0 {
		return 0, fmt.Errorf("hourly_unit is not set: %w", ErrMissingPricing)
	}

	elapsed := elapsedMinutes(in.CheckIn, in.CheckOut)
	baseMinutes := pricing.BaseHourlyLimit * minutesPerHour
	charge := int64(pricing.BaseHourlyLimit) * pricing.PriceHourly

	extraMinutes := elapsed - baseMinutes
	if extraMinutes < 0 {
		extraMinutes = 0
	}

	extraBlocks := ceilDiv(extraMinutes, pricing.HourlyUnitMinutes)
	charge += int64(extraBlocks) * pricing.PriceNextHour

	bill.explain("Room charge (hourly): %d hour(s) base at %d + %d block(s) of %d minute(s) at %d = %d",
		pricing.BaseHourlyLimit, pricing.PriceHourly, extraBlocks, pricing.HourlyUnitMinutes, pricing.PriceNextHour, charge)

	return charge, nil
}

func applySurcharge(in Input, bill *Bill) error {
	// Early/Late surcharges never apply to hourly rentals, independent of the
	// actual occupancy times.
	if in.RentalType == RentalHourly || !in.Pricing.AutoSurchargeEnabled {
		return nil
	}

	minutesLate, err := lateMinutes(in)
	if err != nil {
		return err
	}

	minutesEarly, err := earlyMinutes(in)
	if err != nil {
		return err
	}

	switch in.Pricing.SurchargeMode {
	case SurchargeModeAmount:
		if minutesLate <= 0 {
			return nil
		}

		hours := ceilDiv(minutesLate, minutesPerHour)
		bill.Surcharge = int64(hours) * in.Pricing.HourlySurchargeAmount
		bill.SurchargeExplanation = fmt.Sprintf("Late checkout %d minute(s): %d hour(s) x %d = %d",
			minutesLate, hours, in.Pricing.HourlySurchargeAmount, bill.Surcharge)
		bill.Explanation = append(bill.Explanation, bill.SurchargeExplanation)

		return nil
	case SurchargeModePercent:
		parts := []string{}

		if minutesEarly > 0 {
			if amount, desc, ok := percentSurcharge(in, RuleEarly, minutesEarly, bill.RoomCharge); ok {
				bill.Surcharge += amount
				parts = append(parts, fmt.Sprintf("Early check-in %d minute(s): %s = %d", minutesEarly, desc, amount))
			}
		}

		if minutesLate > 0 {
			if amount, desc, ok := percentSurcharge(in, RuleLate, minutesLate, bill.RoomCharge); ok {
				bill.Surcharge += amount
				parts = append(parts, fmt.Sprintf("Late checkout %d minute(s): %s = %d", minutesLate, desc, amount))
			}
		}

		for i, part := range parts {
			if i > 0 {
				bill.SurchargeExplanation += "; "
			}

			bill.SurchargeExplanation += part
			bill.Explanation = append(bill.Explanation, part)
		}

		return nil
	default:
		return fmt.Errorf("surcharge_mode %q: %w", in.Pricing.SurchargeMode, ErrMissingPricing)
	}
}

// percentSurcharge scans the ordered rule list for the first rule of the
// given type whose half-open window [from, to) contains the elapsed minutes.
// Tiers replace each other, they never accumulate. Past the upper bound of
// the last window the category's OverflowPolicy decides between clamping to
// the last tier and charging nothing.
func percentSurcharge(in Input, ruleType RuleType, elapsed int, base int64) (int64, string, bool) {
	var last *Rule

	for i := range in.Pricing.Rules {
		rule := in.Pricing.Rules[i]
		if rule.Type != ruleType {
			continue
		}

		if elapsed >= rule.FromMinute && elapsed < rule.ToMinute {
			return ruleAmount(rule, base)
		}

		last = &in.Pricing.Rules[i]
	}

	if last != nil && elapsed >= last.ToMinute && in.Pricing.OverflowPolicy == OverflowClampLast {
		return ruleAmount(*last, base)
	}

	return 0, "", false
}

func ruleAmount(rule Rule, base int64) (int64, string, bool) {
	amount := percentOf(base, rule.Percentage)
	desc := fmt.Sprintf("rule [%d,%d) %s%% of %d", rule.FromMinute, rule.ToMinute, trimFloat(rule.Percentage), base)

	return amount, desc, true
}

func applyExtraPerson(in Input, bill *Bill) {
	if !in.Pricing.ExtraPersonEnabled {
		return
	}

	if in.ExtraAdults <= 0 && in.ExtraChildren <= 0 {
		return
	}

	bill.ExtraPerson = int64(in.ExtraAdults)*in.Pricing.PriceExtraAdult +
		int64(in.ExtraChildren)*in.Pricing.PriceExtraChild
	bill.ExtraPersonExplanation = fmt.Sprintf("Extra person: %d adult(s) x %d + %d child(ren) x %d = %d",
		in.ExtraAdults, in.Pricing.PriceExtraAdult, in.ExtraChildren, in.Pricing.PriceExtraChild, bill.ExtraPerson)
	bill.Explanation = append(bill.Explanation, bill.ExtraPersonExplanation)
}

// lateMinutes measures how far the actual checkout ran past the standard
// checkout clock time (anchored to the checkout date) plus the grace period.
// Clamped to zero.
func lateMinutes(in Input) (int, error) {
	std, err := anchorClock(in.CheckOut, in.Schedule.CheckOutTime)
	if err != nil {
		return 0, fmt.Errorf("invalid check_out_time: %w", ErrMissingPricing)
	}

	if in.Schedule.LateGraceEnabled {
		std = std.Add(time.Duration(in.Schedule.LateGraceMinutes) * time.Minute)
	}

	return elapsedMinutes(std, in.CheckOut), nil
}

// earlyMinutes measures how far the actual check-in ran ahead of the standard
// check-in clock time (anchored to the check-in date) minus the grace period.
// Clamped to zero.
func earlyMinutes(in Input) (int, error) {
	std, err := anchorClock(in.CheckIn, in.Schedule.CheckInTime)
	if err != nil {
		return 0, fmt.Errorf("invalid check_in_time: %w", ErrMissingPricing)
	}

	if in.Schedule.EarlyGraceEnabled {
		std = std.Add(-time.Duration(in.Schedule.EarlyGraceMinutes) * time.Minute)
	}

	return elapsedMinutes(in.CheckIn, std), nil
}

// anchorClock places a "15:04" clock string on the calendar day of ref.
func anchorClock(ref time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(ref.Year(), ref.Month(), ref.Day(), parsed.Hour(), parsed.Minute(), 0, 0, ref.Location()), nil
}

// elapsedMinutes returns whole minutes from a to b, rounding partial minutes
// up, clamped to zero.
func elapsedMinutes(a, b time.Time) int {
	d := b.Sub(a)
	if d <= 0 {
		return 0
	}

	minutes := int(d / time.Minute)
	if d%time.Minute != 0 {
		minutes++
	}

	return minutes
}

func ceilDiv(value, unit int) int {
	if value <= 0 {
		return 0
	}

	return (value + unit - 1) / unit
}

// percentOf computes base*percent/100 in decimal and rounds half-up to whole
// currency units.
func percentOf(base int64, percent float64) int64 {
	return decimal.NewFromInt(base).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

func trimFloat(value float64) string {
	return decimal.NewFromFloat(value).String()
}

func (b *Bill) explain(format string, args ...any) {
	b.Explanation = append(b.Explanation, fmt.Sprintf(format, args...))
}
