package repository

//go:generate go run go.uber.org/mock/mockgen -source=./category.go -destination=../mocks/category_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Category interface {
	Insert(ctx context.Context, model model.Category) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Category, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Category, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	GetRules(ctx context.Context, categoryID string) ([]model.SurchargeRule, error)
	ReplaceRules(ctx context.Context, categoryID string, rules []model.SurchargeRule) error
}

type categoryImpl struct {
	gRepo.Repository[model.Category]
	ruleRepo gRepo.Repository[model.SurchargeRule]
	db       *postgres.Connection
	otel     otel.Otel
}

func NewCategory(db *postgres.Connection, otel otel.Otel) Category {
	return &categoryImpl{
		Repository: gRepo.NewRepository[model.Category](model.CategoryEntityName, model.CategoryTableName, model.FieldID, db, otel),
		ruleRepo:   gRepo.NewRepository[model.SurchargeRule](model.RuleEntityName, model.RuleTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetRules returns the category's surcharge rules in evaluation order.
func (repo *categoryImpl) GetRules(ctx context.Context, categoryID string) ([]model.SurchargeRule, error) {
	params := gDto.QueryParams{
		SortBy:  model.RuleTableName + "." + model.FieldRulePosition,
		SortDir: gDto.SortDirAsc,
	}

	return repo.ruleRepo.GetAll(ctx, params, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRuleCategoryID,
				Operator: gDto.FilterOperatorEq,
				Value:    categoryID,
				Table:    model.RuleTableName,
			},
		},
	})
}

// ReplaceRules swaps the category's whole rule table in one transaction,
// keeping the ordered list consistent.
func (repo *categoryImpl) ReplaceRules(ctx context.Context, categoryID string, rules []model.SurchargeRule) error {
	tx, err := repo.db.Write.Beginx()
	if err != nil {
		return err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRuleCategoryID,
				Operator: gDto.FilterOperatorEq,
				Value:    categoryID,
				Table:    model.RuleTableName,
			},
		},
	}

	if err := repo.ruleRepo.DeleteTx(ctx, tx, filter); err != nil {
		_ = tx.Rollback()

		return err
	}

	if len(rules) > 0 {
		if err := repo.ruleRepo.InsertBulkTx(ctx, tx, rules); err != nil {
			_ = tx.Rollback()

			return err
		}
	}

	return tx.Commit()
}
