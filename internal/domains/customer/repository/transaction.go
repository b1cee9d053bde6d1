package repository

//go:generate go run go.uber.org/mock/mockgen -source=./transaction.go -destination=../mocks/transaction_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/customer/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Transaction persists the append-only customer balance history. There is no
// update or delete on purpose.
type Transaction interface {
	Insert(ctx context.Context, model model.CustomerTransaction) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.CustomerTransaction) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CustomerTransaction, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type transactionImpl struct {
	gRepo.Repository[model.CustomerTransaction]
	db   *postgres.Connection
	otel otel.Otel
}

func NewTransaction(db *postgres.Connection, otel otel.Otel) Transaction {
	return &transactionImpl{
		Repository: gRepo.NewRepository[model.CustomerTransaction](model.TransactionEntityName, model.TransactionTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
