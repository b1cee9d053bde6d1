package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	cashflowModel "hotel/internal/domains/cashflow/model"
	cashflowService "hotel/internal/domains/cashflow/service"
	"hotel/internal/domains/customer/model"
	"hotel/internal/domains/customer/model/dto"
	"hotel/internal/domains/customer/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetCustomer    = "customer:get"
	cacheGetAllCustomer = "customer:gets"
	cacheCountCustomer  = "customer:count"
)

// ReconcileParams is the checkout-time balance settlement input.
type ReconcileParams struct {
	CustomerID    string
	BookingID     string
	AmountPaid    int64
	TotalAmount   int64
	DepositAmount int64
	PaymentMethod string
	StaffID       string
	StaffName     string
}

type Customer interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCustomersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CustomerResponse, error)
	Update(ctx context.Context, req dto.UpdateCustomerRequest, id string) error
	GetTransactions(ctx context.Context, customerID string, req gDto.QueryParams) (dto.GetTransactionsResponse, error)

	CheckoutReconcileTx(ctx context.Context, sqltx *sqlx.Tx, p ReconcileParams) (int64, error)
	Adjust(ctx context.Context, customerID string, req dto.AdjustBalanceRequest) (dto.AdjustResult, error)
}

type serviceImpl struct {
	repo       repository.Customer
	txRepo     repository.Transaction
	cashflow   cashflowService.CashFlow
	txBeginner cashflowService.TxBeginner
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Customer,
	txRepo repository.Transaction,
	cashflow cashflowService.CashFlow,
	txBeginner cashflowService.TxBeginner,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Customer {
	return &serviceImpl{
		repo:       repo,
		txRepo:     txRepo,
		cashflow:   cashflow,
		txBeginner: txBeginner,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCustomerRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCustomer)
		shared.InvalidateCaches(c, s.cache, cacheCountCustomer)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllCustomers")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCustomer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customers")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountCustomers")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCustomer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customer count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Balances move on every checkout, so customer reads skip the cache.
	customer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	res.FromModel(customer)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCustomerRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	customer, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check customer existence")

		return err
	}

	if customer.ID == constant.Empty {
		return failure.NotFound("customer not found")
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update customer")

		return fmt.Errorf("failed to update customer: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetCustomer, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllCustomer)
	}()

	return nil
}

func (s *serviceImpl) GetTransactions(ctx context.Context, customerID string, req gDto.QueryParams) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTransactions")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTxCustomerID,
				Operator: gDto.FilterOperatorEq,
				Value:    customerID,
				Table:    model.TransactionTableName,
			},
		},
	}

	total, err := s.txRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customer transactions")

		return res, fmt.Errorf("failed to count customer transactions: %w", err)
	}

	models, err := s.txRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer transactions")

		return res, fmt.Errorf("failed to get customer transactions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// CheckoutReconcileTx settles the customer balance at checkout inside the
// caller's transaction. The customer row lock serializes this against
// concurrent manual adjustments on the same guest.
func (s *serviceImpl) CheckoutReconcileTx(ctx context.Context, sqltx *sqlx.Tx, p ReconcileParams) (newBalance int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckoutReconcileTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	customer, err := s.repo.GetForUpdateTx(ctx, sqltx, p.CustomerID)
	if err != nil {
		return 0, err
	}

	if customer.ID == constant.Empty {
		return 0, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	receivable := p.TotalAmount - p.DepositAmount
	newBalance = customer.Balance + p.AmountPaid - receivable

	if err = s.repo.UpdateBalanceTx(ctx, sqltx, p.CustomerID, newBalance, p.StaffID); err != nil {
		return 0, err
	}

	bookingID := p.BookingID
	tx := model.CustomerTransaction{
		ID:            uuid.NewString(),
		CustomerID:    p.CustomerID,
		BookingID:     &bookingID,
		TxType:        model.TxTypeCheckout,
		Amount:        p.AmountPaid - receivable,
		BalanceBefore: customer.Balance,
		BalanceAfter:  newBalance,
		PaymentMethod: p.PaymentMethod,
		Description:   fmt.Sprintf("Thanh toán trả phòng %d, phải thu %d", p.AmountPaid, receivable),
		StaffID:       p.StaffID,
		StaffName:     p.StaffName,
		OccurredAt:    timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  p.StaffID,
			ModifiedBy: p.StaffID,
		},
	}

	if err = s.txRepo.InsertTx(ctx, sqltx, tx); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// adjustmentPlan resolves the decision table for one manual balance
// operation: balance delta, ledger direction and category, and whether the
// payment method is forced to credit.
func adjustmentPlan(req dto.AdjustBalanceRequest) (delta int64, flowType, category, method, description string, err error) {
	method = req.PaymentMethod
	if method == constant.Empty {
		method = cashflowModel.PaymentMethodCash
	}

	switch req.Type {
	case model.TxTypePayment:
		if req.Amount <= 0 {
			return 0, "", "", "", "", failure.BadRequestFromString("payment amount must be positive")
		}
		delta = req.Amount
		flowType = cashflowModel.FlowTypeIn
		category = cashflowModel.CategoryDebtPaid
		description = "Thu nợ"

	case model.TxTypeCharge:
		if req.Amount <= 0 {
			return 0, "", "", "", "", failure.BadRequestFromString("charge amount must be positive")
		}
		// A charge raises the guest's debt without moving money, so it is
		// forced onto the credit method and touches no wallet.
		delta = -req.Amount
		flowType = cashflowModel.FlowTypeIn
		category = cashflowModel.CategoryExtraFee
		method = cashflowModel.PaymentMethodCredit
		description = "Phụ phí"

	case model.TxTypeRefund:
		if req.Amount <= 0 {
			return 0, "", "", "", "", failure.BadRequestFromString("refund amount must be positive")
		}
		delta = -req.Amount
		flowType = cashflowModel.FlowTypeOut
		category = cashflowModel.CategoryRefund
		description = "Hoàn tiền"

	case model.TxTypeAdjustment:
		if req.Amount == 0 {
			return 0, "", "", "", "", failure.BadRequestFromString("adjustment amount must not be zero")
		}
		delta = req.Amount
		flowType = cashflowModel.FlowTypeIn
		if req.Amount < 0 {
			flowType = cashflowModel.FlowTypeOut
		}
		category = cashflowModel.CategoryAdjustment
		method = cashflowModel.PaymentMethodCredit
		description = "Điều chỉnh"

	default:
		return 0, "", "", "", "", failure.BadRequestFromString("unknown adjustment type")
	}

	if req.Description != constant.Empty {
		description = req.Description
	}

	return delta, flowType, category, method, description, nil
}

// Adjust applies one manual balance operation. Both projections of the event,
// the customer transaction and the ledger entry, are written in the same
// transaction so the two histories can never drift apart.
func (s *serviceImpl) Adjust(ctx context.Context, customerID string, req dto.AdjustBalanceRequest) (res dto.AdjustResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Adjust")
	defer scope.End()
	defer scope.TraceIfError(err)

	staffID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	staffName, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	delta, flowType, category, method, description, err := adjustmentPlan(req)
	if err != nil {
		return res, err
	}

	tx, err := s.txBeginner.Beginx()
	if err != nil {
		log.Error().Err(err).Msg("failed to begin adjustment transaction")

		return res, fmt.Errorf("failed to begin adjustment transaction: %w", err)
	}

	customer, err := s.repo.GetForUpdateTx(ctx, tx, customerID)
	if err != nil {
		_ = tx.Rollback()

		return res, err
	}

	if customer.ID == constant.Empty {
		_ = tx.Rollback()

		return dto.AdjustResult{Success: false, Message: "customer not found"}, nil
	}

	newBalance := customer.Balance + delta

	if err = s.repo.UpdateBalanceTx(ctx, tx, customerID, newBalance, staffID); err != nil {
		_ = tx.Rollback()

		return res, err
	}

	customerTx := model.CustomerTransaction{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		BookingID:     req.BookingID,
		TxType:        req.Type,
		Amount:        delta,
		BalanceBefore: customer.Balance,
		BalanceAfter:  newBalance,
		PaymentMethod: method,
		Description:   description,
		StaffID:       staffID,
		StaffName:     staffName,
		OccurredAt:    timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  staffID,
			ModifiedBy: staffID,
		},
	}

	if err = s.txRepo.InsertTx(ctx, tx, customerTx); err != nil {
		_ = tx.Rollback()

		return res, err
	}

	amount := req.Amount
	if amount < 0 {
		amount = -amount
	}

	entry := cashflowModel.CashFlowEntry{
		ID:            uuid.NewString(),
		FlowType:      flowType,
		Category:      category,
		Amount:        amount,
		PaymentMethod: method,
		RefID:         req.BookingID,
		IsAuto:        false,
		VerifiedByID:  staffID,
		VerifiedBy:    staffName,
		OccurredAt:    timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  staffID,
			ModifiedBy: staffID,
		},
	}

	if err = s.cashflow.AppendTx(ctx, tx, entry); err != nil {
		_ = tx.Rollback()

		return res, err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit adjustment transaction")

		return res, fmt.Errorf("failed to commit adjustment transaction: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetCustomer, customerID))
		shared.InvalidateCaches(c, s.cache, cacheGetAllCustomer)
	}()

	return dto.AdjustResult{Success: true, NewBalance: newBalance, Message: description}, nil
}
