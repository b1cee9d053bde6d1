package service

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/cashflow/model"
	"hotel/internal/domains/cashflow/model/dto"
	"hotel/internal/domains/cashflow/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type CashFlow interface {
	Create(ctx context.Context, req dto.CreateEntryRequest) error
	Append(ctx context.Context, entry model.CashFlowEntry) error
	AppendTx(ctx context.Context, sqltx *sqlx.Tx, entry model.CashFlowEntry) error
	Reverse(ctx context.Context, entryID string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEntriesResponse, error)
	GetWallets(ctx context.Context) (dto.GetWalletsResponse, error)
	GetWalletBalanceAt(ctx context.Context, walletID string, at time.Time) (dto.WalletBalanceAtResponse, error)
}

type serviceImpl struct {
	repo       repository.Entry
	walletRepo repository.Wallet
	txBeginner TxBeginner
	producer   kafka.Client
	cfg        *config.Config
	otel       otel.Otel
}

// TxBeginner is the slice of the write connection the service needs; the
// indirection keeps the transaction boundary mockable.
type TxBeginner interface {
	Beginx() (*sqlx.Tx, error)
}

func New(repo repository.Entry, walletRepo repository.Wallet, txBeginner TxBeginner, producer kafka.Client, cfg *config.Config, otel otel.Otel) CashFlow {
	return &serviceImpl{
		repo:       repo,
		walletRepo: walletRepo,
		txBeginner: txBeginner,
		producer:   producer,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEntryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateEntry")
	defer scope.End()
	defer scope.TraceIfError(err)

	staffID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	staffName, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	entry, err := req.ToModel(staffID, staffName)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid occurred_at: %v", err)) // nolint:wrapcheck
	}

	return s.Append(ctx, entry)
}

// Append inserts the entry and moves the mapped wallet in one transaction.
func (s *serviceImpl) Append(ctx context.Context, entry model.CashFlowEntry) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Append")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := s.txBeginner.Beginx()
	if err != nil {
		log.Error().Err(err).Msg("failed to begin ledger transaction")

		return fmt.Errorf("failed to begin ledger transaction: %w", err)
	}

	if err = s.AppendTx(ctx, tx, entry); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit ledger transaction")

		return fmt.Errorf("failed to commit ledger transaction: %w", err)
	}

	s.publish(ctx, entry, false)

	return nil
}

// AppendTx writes the entry and its wallet effect inside the caller's
// transaction. The caller owns commit, rollback and post-commit publishing.
func (s *serviceImpl) AppendTx(ctx context.Context, sqltx *sqlx.Tx, entry model.CashFlowEntry) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AppendTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.InsertTx(ctx, sqltx, entry); err != nil {
		log.Error().Err(err).Msg("failed to insert cash flow entry")

		return fmt.Errorf("failed to insert cash flow entry: %w", err)
	}

	walletID, ok := model.WalletForPaymentMethod(entry.PaymentMethod)
	if !ok {
		// Credit entries settle against the customer balance; no wallet moves.
		return nil
	}

	if err = s.walletRepo.ApplyDeltaTx(ctx, sqltx, walletID, entry.SignedAmount(), entry.VerifiedByID); err != nil {
		log.Error().Err(err).Msg("failed to apply wallet delta")

		return fmt.Errorf("failed to apply wallet delta: %w", err)
	}

	return nil
}

// Reverse deletes a manual entry and applies the exact opposite wallet
// movement in one transaction. Automatic entries are the immutable trace of
// checkout and cannot be reversed.
func (s *serviceImpl) Reverse(ctx context.Context, entryID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reverse")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	tx, err := s.txBeginner.Beginx()
	if err != nil {
		log.Error().Err(err).Msg("failed to begin ledger transaction")

		return fmt.Errorf("failed to begin ledger transaction: %w", err)
	}

	entry, err := s.repo.GetForUpdateTx(ctx, tx, entryID)
	if err != nil {
		_ = tx.Rollback()

		return err
	}

	if entry.ID == constant.Empty {
		_ = tx.Rollback()

		return failure.NotFound("cash flow entry not found") // nolint:wrapcheck
	}

	if entry.IsAuto {
		_ = tx.Rollback()

		return failure.Forbidden("automatic entries cannot be reversed") // nolint:wrapcheck
	}

	if err = s.repo.DeleteTx(ctx, tx, shared.FilterByID(entryID, model.FieldID, model.TableName)); err != nil {
		_ = tx.Rollback()
		log.Error().Err(err).Msg("failed to delete cash flow entry")

		return fmt.Errorf("failed to delete cash flow entry: %w", err)
	}

	if walletID, ok := model.WalletForPaymentMethod(entry.PaymentMethod); ok {
		if err = s.walletRepo.ApplyDeltaTx(ctx, tx, walletID, -entry.SignedAmount(), user); err != nil {
			_ = tx.Rollback()
			log.Error().Err(err).Msg("failed to revert wallet delta")

			return fmt.Errorf("failed to revert wallet delta: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit ledger transaction")

		return fmt.Errorf("failed to commit ledger transaction: %w", err)
	}

	s.publish(ctx, entry, true)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEntriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllEntries")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cash flow entries")

		return res, fmt.Errorf("failed to count cash flow entries: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cash flow entries")

		return res, fmt.Errorf("failed to get cash flow entries: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) GetWallets(ctx context.Context) (res dto.GetWalletsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetWallets")
	defer scope.End()
	defer scope.TraceIfError(err)

	wallets, err := s.walletRepo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get wallets")

		return res, fmt.Errorf("failed to get wallets: %w", err)
	}

	res.FromModels(wallets)

	return res, nil
}

func (s *serviceImpl) GetWalletBalanceAt(ctx context.Context, walletID string, at time.Time) (res dto.WalletBalanceAtResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetWalletBalanceAt")
	defer scope.End()
	defer scope.TraceIfError(err)

	balance, err := s.walletRepo.SumEntriesAt(ctx, walletID, at)
	if err != nil {
		log.Error().Err(err).Msg("failed to reconstruct wallet balance")

		return res, fmt.Errorf("failed to reconstruct wallet balance: %w", err)
	}

	return dto.WalletBalanceAtResponse{
		WalletID: walletID,
		At:       at,
		Balance:  balance,
	}, nil
}

func (s *serviceImpl) publish(ctx context.Context, entry model.CashFlowEntry, reversed bool) {
	if s.producer == nil {
		return
	}

	walletID, _ := model.WalletForPaymentMethod(entry.PaymentMethod)
	event := dto.EntryEvent{
		EntryID:    entry.ID,
		FlowType:   entry.FlowType,
		Category:   entry.Category,
		Amount:     entry.Amount,
		WalletID:   walletID,
		Reversed:   reversed,
		OccurredAt: entry.OccurredAt,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: entry.ID, Value: event}
		if err := s.producer.SendMessages(c, s.cfg.Kafka.Topic.CashFlow, message); err != nil {
			log.Error().Err(err).Str("entryID", entry.ID).Msg("failed to publish cash flow event")
		}
	}()
}
