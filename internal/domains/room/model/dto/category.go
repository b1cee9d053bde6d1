package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type SurchargeRuleRequest struct {
	RuleType   string  `json:"rule_type"   validate:"required,oneof=early late"`
	FromMinute int     `json:"from_minute" validate:"min=0"`
	ToMinute   int     `json:"to_minute"   validate:"required,gtfield=FromMinute"`
	Percentage float64 `json:"percentage"  validate:"required,gt=0"`
}

type CreateCategoryRequest struct {
	Name                    string                 `json:"name"                      validate:"required,max=100"`
	PriceHourly             int64                  `json:"price_hourly"              validate:"omitempty,min=0"`
	PriceNextHour           int64                  `json:"price_next_hour"           validate:"omitempty,min=0"`
	HourlyUnitMinutes       int                    `json:"hourly_unit_minutes"       validate:"omitempty,min=1"`
	BaseHourlyLimit         int                    `json:"base_hourly_limit"         validate:"omitempty,min=1"`
	PriceDaily              int64                  `json:"price_daily"               validate:"omitempty,min=0"`
	PriceOvernight          int64                  `json:"price_overnight"           validate:"omitempty,min=0"`
	OvernightEnabled        bool                   `json:"overnight_enabled"`
	PriceExtraAdult         int64                  `json:"price_extra_adult"         validate:"omitempty,min=0"`
	PriceExtraChild         int64                  `json:"price_extra_child"         validate:"omitempty,min=0"`
	ExtraPersonEnabled      bool                   `json:"extra_person_enabled"`
	AutoSurchargeEnabled    bool                   `json:"auto_surcharge_enabled"`
	SurchargeMode           string                 `json:"surcharge_mode"            validate:"omitempty,oneof=amount percent"`
	HourlySurchargeAmount   int64                  `json:"hourly_surcharge_amount"   validate:"omitempty,min=0"`
	SurchargeOverflowPolicy string                 `json:"surcharge_overflow_policy" validate:"omitempty,oneof=clamp_last zero"`
	SurchargeRules          []SurchargeRuleRequest `json:"surcharge_rules"           validate:"omitempty,dive"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	mode := model.SurchargeModeAmount
	if c.SurchargeMode != "" {
		mode = c.SurchargeMode
	}

	policy := model.OverflowPolicyClampLast
	if c.SurchargeOverflowPolicy != "" {
		policy = c.SurchargeOverflowPolicy
	}

	return model.Category{
		ID:                      uuid.NewString(),
		Name:                    c.Name,
		PriceHourly:             c.PriceHourly,
		PriceNextHour:           c.PriceNextHour,
		HourlyUnitMinutes:       c.HourlyUnitMinutes,
		BaseHourlyLimit:         c.BaseHourlyLimit,
		PriceDaily:              c.PriceDaily,
		PriceOvernight:          c.PriceOvernight,
		OvernightEnabled:        c.OvernightEnabled,
		PriceExtraAdult:         c.PriceExtraAdult,
		PriceExtraChild:         c.PriceExtraChild,
		ExtraPersonEnabled:      c.ExtraPersonEnabled,
		AutoSurchargeEnabled:    c.AutoSurchargeEnabled,
		SurchargeMode:           mode,
		HourlySurchargeAmount:   c.HourlySurchargeAmount,
		SurchargeOverflowPolicy: policy,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func (c *CreateCategoryRequest) ToRuleModels(categoryID, user string) []model.SurchargeRule {
	rules := make([]model.SurchargeRule, len(c.SurchargeRules))
	for i, rule := range c.SurchargeRules {
		rules[i] = model.SurchargeRule{
			ID:         uuid.NewString(),
			CategoryID: categoryID,
			RuleType:   rule.RuleType,
			FromMinute: rule.FromMinute,
			ToMinute:   rule.ToMinute,
			Percentage: rule.Percentage,
			Position:   i,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return rules
}

type UpdateCategoryRequest struct {
	Name                    string                 `db:"name"                      json:"name"                      validate:"omitempty,max=100"`
	PriceHourly             *int64                 `db:"price_hourly"              json:"price_hourly"              validate:"omitempty,min=0"`
	PriceNextHour           *int64                 `db:"price_next_hour"           json:"price_next_hour"           validate:"omitempty,min=0"`
	HourlyUnitMinutes       *int                   `db:"hourly_unit_minutes"       json:"hourly_unit_minutes"       validate:"omitempty,min=1"`
	BaseHourlyLimit         *int                   `db:"base_hourly_limit"         json:"base_hourly_limit"         validate:"omitempty,min=1"`
	PriceDaily              *int64                 `db:"price_daily"               json:"price_daily"               validate:"omitempty,min=0"`
	PriceOvernight          *int64                 `db:"price_overnight"           json:"price_overnight"           validate:"omitempty,min=0"`
	OvernightEnabled        *bool                  `db:"overnight_enabled"         json:"overnight_enabled"         validate:"omitempty"`
	PriceExtraAdult         *int64                 `db:"price_extra_adult"         json:"price_extra_adult"         validate:"omitempty,min=0"`
	PriceExtraChild         *int64                 `db:"price_extra_child"         json:"price_extra_child"         validate:"omitempty,min=0"`
	ExtraPersonEnabled      *bool                  `db:"extra_person_enabled"      json:"extra_person_enabled"      validate:"omitempty"`
	AutoSurchargeEnabled    *bool                  `db:"auto_surcharge_enabled"    json:"auto_surcharge_enabled"    validate:"omitempty"`
	SurchargeMode           string                 `db:"surcharge_mode"            json:"surcharge_mode"            validate:"omitempty,oneof=amount percent"`
	HourlySurchargeAmount   *int64                 `db:"hourly_surcharge_amount"   json:"hourly_surcharge_amount"   validate:"omitempty,min=0"`
	SurchargeOverflowPolicy string                 `db:"surcharge_overflow_policy" json:"surcharge_overflow_policy" validate:"omitempty,oneof=clamp_last zero"`
	SurchargeRules          []SurchargeRuleRequest `json:"surcharge_rules"         validate:"omitempty,dive"`
}

type SurchargeRuleResponse struct {
	ID         string  `json:"id"`
	RuleType   string  `json:"rule_type"`
	FromMinute int     `json:"from_minute"`
	ToMinute   int     `json:"to_minute"`
	Percentage float64 `json:"percentage"`
	Position   int     `json:"position"`
}

type CategoryResponse struct {
	ID                      string                  `json:"id"`
	Name                    string                  `json:"name"`
	PriceHourly             int64                   `json:"price_hourly"`
	PriceNextHour           int64                   `json:"price_next_hour"`
	HourlyUnitMinutes       int                     `json:"hourly_unit_minutes"`
	BaseHourlyLimit         int                     `json:"base_hourly_limit"`
	PriceDaily              int64                   `json:"price_daily"`
	PriceOvernight          int64                   `json:"price_overnight"`
	OvernightEnabled        bool                    `json:"overnight_enabled"`
	PriceExtraAdult         int64                   `json:"price_extra_adult"`
	PriceExtraChild         int64                   `json:"price_extra_child"`
	ExtraPersonEnabled      bool                    `json:"extra_person_enabled"`
	AutoSurchargeEnabled    bool                    `json:"auto_surcharge_enabled"`
	SurchargeMode           string                  `json:"surcharge_mode"`
	HourlySurchargeAmount   int64                   `json:"hourly_surcharge_amount"`
	SurchargeOverflowPolicy string                  `json:"surcharge_overflow_policy"`
	SurchargeRules          []SurchargeRuleResponse `json:"surcharge_rules"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(mod model.Category, rules []model.SurchargeRule) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.PriceHourly = mod.PriceHourly
	r.PriceNextHour = mod.PriceNextHour
	r.HourlyUnitMinutes = mod.HourlyUnitMinutes
	r.BaseHourlyLimit = mod.BaseHourlyLimit
	r.PriceDaily = mod.PriceDaily
	r.PriceOvernight = mod.PriceOvernight
	r.OvernightEnabled = mod.OvernightEnabled
	r.PriceExtraAdult = mod.PriceExtraAdult
	r.PriceExtraChild = mod.PriceExtraChild
	r.ExtraPersonEnabled = mod.ExtraPersonEnabled
	r.AutoSurchargeEnabled = mod.AutoSurchargeEnabled
	r.SurchargeMode = mod.SurchargeMode
	r.HourlySurchargeAmount = mod.HourlySurchargeAmount
	r.SurchargeOverflowPolicy = mod.SurchargeOverflowPolicy
	r.Metadata.FromModel(mod.Metadata)

	r.SurchargeRules = make([]SurchargeRuleResponse, len(rules))
	for i, rule := range rules {
		r.SurchargeRules[i] = SurchargeRuleResponse{
			ID:         rule.ID,
			RuleType:   rule.RuleType,
			FromMinute: rule.FromMinute,
			ToMinute:   rule.ToMinute,
			Percentage: rule.Percentage,
			Position:   rule.Position,
		}
	}
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod, nil)
	}
}
