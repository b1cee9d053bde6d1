package model

import "hotel/shared/model"

const (
	CategoryTableName  = "room_categories"
	CategoryEntityName = "room category"

	FieldCategoryName            = "name"
	FieldPriceHourly             = "price_hourly"
	FieldPriceNextHour           = "price_next_hour"
	FieldHourlyUnitMinutes       = "hourly_unit_minutes"
	FieldBaseHourlyLimit         = "base_hourly_limit"
	FieldPriceDaily              = "price_daily"
	FieldPriceOvernight          = "price_overnight"
	FieldOvernightEnabled        = "overnight_enabled"
	FieldPriceExtraAdult         = "price_extra_adult"
	FieldPriceExtraChild         = "price_extra_child"
	FieldExtraPersonEnabled      = "extra_person_enabled"
	FieldAutoSurchargeEnabled    = "auto_surcharge_enabled"
	FieldSurchargeMode           = "surcharge_mode"
	FieldHourlySurchargeAmount   = "hourly_surcharge_amount"
	FieldSurchargeOverflowPolicy = "surcharge_overflow_policy"

	SurchargeModeAmount  = "amount"
	SurchargeModePercent = "percent"

	OverflowPolicyClampLast = "clamp_last"
	OverflowPolicyZero      = "zero"
)

// Category holds the full pricing config for one room class. The calculator
// always works on an immutable snapshot of these values, never on the live
// row.
type Category struct {
	ID                      string `db:"id"`
	Name                    string `db:"name"`
	PriceHourly             int64  `db:"price_hourly"`
	PriceNextHour           int64  `db:"price_next_hour"`
	HourlyUnitMinutes       int    `db:"hourly_unit_minutes"`
	BaseHourlyLimit         int    `db:"base_hourly_limit"`
	PriceDaily              int64  `db:"price_daily"`
	PriceOvernight          int64  `db:"price_overnight"`
	OvernightEnabled        bool   `db:"overnight_enabled"`
	PriceExtraAdult         int64  `db:"price_extra_adult"`
	PriceExtraChild         int64  `db:"price_extra_child"`
	ExtraPersonEnabled      bool   `db:"extra_person_enabled"`
	AutoSurchargeEnabled    bool   `db:"auto_surcharge_enabled"`
	SurchargeMode           string `db:"surcharge_mode"`
	HourlySurchargeAmount   int64  `db:"hourly_surcharge_amount"`
	SurchargeOverflowPolicy string `db:"surcharge_overflow_policy"`
	model.Metadata
}

const (
	RuleTableName  = "surcharge_rules"
	RuleEntityName = "surcharge rule"

	FieldRuleCategoryID = "category_id"
	FieldRuleType       = "rule_type"
	FieldRuleFromMinute = "from_minute"
	FieldRuleToMinute   = "to_minute"
	FieldRulePercentage = "percentage"
	FieldRulePosition   = "position"
)

// SurchargeRule is one early/late window tier. Rules are evaluated in
// position order; the first window containing the elapsed minutes wins.
type SurchargeRule struct {
	ID         string  `db:"id"`
	CategoryID string  `db:"category_id"`
	RuleType   string  `db:"rule_type"`
	FromMinute int     `db:"from_minute"`
	ToMinute   int     `db:"to_minute"`
	Percentage float64 `db:"percentage"`
	Position   int     `db:"position"`
	model.Metadata
}
