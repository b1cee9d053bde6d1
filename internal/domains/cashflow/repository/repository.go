package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/cashflow/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type Entry interface {
	Insert(ctx context.Context, model model.CashFlowEntry) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.CashFlowEntry) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.CashFlowEntry, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CashFlowEntry, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error

	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.CashFlowEntry, error)
}

type entryImpl struct {
	gRepo.Repository[model.CashFlowEntry]
	db   *postgres.Connection
	otel otel.Otel
}

func NewEntry(db *postgres.Connection, otel otel.Otel) Entry {
	return &entryImpl{
		Repository: gRepo.NewRepository[model.CashFlowEntry](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetForUpdateTx locks one ledger row so a reversal sees a stable entry while
// it applies the opposite wallet movement.
func (repo *entryImpl) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (entry model.CashFlowEntry, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".cashflow.GetForUpdateTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 FOR UPDATE", model.TableName, model.FieldID)

	err = sqltx.GetContext(ctx, &entry, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CashFlowEntry{}, nil
	}

	if err != nil {
		return model.CashFlowEntry{}, errors.Wrap(err, "failed to lock cash flow entry")
	}

	return entry, nil
}
