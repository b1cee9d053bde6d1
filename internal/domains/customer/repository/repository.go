package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/customer/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type Customer interface {
	Insert(ctx context.Context, model model.Customer) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Customer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Customer, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error

	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Customer, error)
	UpdateBalanceTx(ctx context.Context, sqltx *sqlx.Tx, id string, balance int64, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Customer]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Customer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Customer](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetForUpdateTx locks the customer row for the rest of the transaction.
// Every balance write goes through this lock so concurrent checkouts and
// manual adjustments serialize instead of clobbering each other.
func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (customer model.Customer, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".customer.GetForUpdateTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 FOR UPDATE", model.TableName, model.FieldID)

	err = sqltx.GetContext(ctx, &customer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, nil
	}

	if err != nil {
		return model.Customer{}, errors.Wrap(err, "failed to lock customer row")
	}

	return customer, nil
}

func (repo *repositoryImpl) UpdateBalanceTx(ctx context.Context, sqltx *sqlx.Tx, id string, balance int64, user string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".customer.UpdateBalanceTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"UPDATE %s SET %s = $1, modified_at = NOW(), modified_by = $2 WHERE %s = $3",
		model.TableName, model.FieldBalance, model.FieldID,
	)

	if _, err = sqltx.ExecContext(ctx, query, balance, user, id); err != nil {
		return errors.Wrap(err, "failed to update customer balance")
	}

	return nil
}
