package repository

//go:generate go run go.uber.org/mock/mockgen -source=./wallet.go -destination=../mocks/wallet_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/cashflow/model"
	gRepo "hotel/shared/repository"

	"hotel/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type Wallet interface {
	GetAll(ctx context.Context) ([]model.Wallet, error)
	ApplyDeltaTx(ctx context.Context, sqltx *sqlx.Tx, walletID string, delta int64, user string) error
	SumEntriesAt(ctx context.Context, walletID string, at time.Time) (int64, error)
}

type walletImpl struct {
	gRepo.Repository[model.Wallet]
	db   *postgres.Connection
	otel otel.Otel
}

func NewWallet(db *postgres.Connection, otel otel.Otel) Wallet {
	return &walletImpl{
		Repository: gRepo.NewRepository[model.Wallet](model.WalletEntityName, model.WalletTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *walletImpl) GetAll(ctx context.Context) (wallets []model.Wallet, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".wallet.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s", model.WalletTableName, model.FieldID)

	if err = repo.db.Read.SelectContext(ctx, &wallets, query); err != nil {
		return nil, errors.Wrap(err, "failed to get wallets")
	}

	return wallets, nil
}

// ApplyDeltaTx locks the wallet row and moves its balance by delta inside the
// caller's transaction. The lock plus the same-transaction ledger insert is
// what keeps wallet balance equal to the signed sum of its entries.
func (repo *walletImpl) ApplyDeltaTx(ctx context.Context, sqltx *sqlx.Tx, walletID string, delta int64, user string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".wallet.ApplyDeltaTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	lockQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", model.FieldWalletBalance, model.WalletTableName, model.FieldID)

	var balance int64
	if err = sqltx.GetContext(ctx, &balance, lockQuery, walletID); err != nil {
		return errors.Wrap(err, "failed to lock wallet row")
	}

	updateQuery := fmt.Sprintf(
		"UPDATE %s SET %s = $1, modified_at = NOW(), modified_by = $2 WHERE %s = $3",
		model.WalletTableName, model.FieldWalletBalance, model.FieldID,
	)

	if _, err = sqltx.ExecContext(ctx, updateQuery, balance+delta, user, walletID); err != nil {
		return errors.Wrap(err, "failed to update wallet balance")
	}

	return nil
}

// SumEntriesAt reconstructs a wallet balance at a point in time from the
// ledger alone, for period-opening-balance reporting.
func (repo *walletImpl) SumEntriesAt(ctx context.Context, walletID string, at time.Time) (balance int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".wallet.SumEntriesAt")
	defer scope.End()
	defer scope.TraceIfError(err)

	var methods []string
	switch walletID {
	case model.WalletCash:
		methods = []string{model.PaymentMethodCash}
	case model.WalletBank:
		methods = []string{model.PaymentMethodTransfer, model.PaymentMethodBank, model.PaymentMethodQR}
	default:
		return 0, errors.Errorf("unknown wallet %q", walletID)
	}

	query, args, err := sqlx.In(fmt.Sprintf(
		"SELECT COALESCE(SUM(CASE WHEN %s = '%s' THEN %s ELSE -%s END), 0) FROM %s WHERE %s IN (?) AND %s <= ?",
		model.FieldFlowType, model.FlowTypeIn, model.FieldAmount, model.FieldAmount,
		model.TableName, model.FieldPaymentMethod, model.FieldOccurredAt,
	), methods, at)
	if err != nil {
		return 0, errors.Wrap(err, "failed to build wallet sum query")
	}

	query = repo.db.Read.Rebind(query)
	if err = repo.db.Read.GetContext(ctx, &balance, query, args...); err != nil {
		return 0, errors.Wrap(err, "failed to sum wallet entries")
	}

	return balance, nil
}
