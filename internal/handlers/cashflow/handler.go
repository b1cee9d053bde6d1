package cashflow

import (
	"net/http"
	"time"

	"hotel/infras/otel"
	"hotel/internal/domains/cashflow/model"
	"hotel/internal/domains/cashflow/model/dto"
	"hotel/internal/domains/cashflow/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.CashFlow
	otel    otel.Otel
}

func New(service service.CashFlow, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cashflow", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEntry)
		routerGroup.Get("/", handler.GetEntries)
		routerGroup.Delete("/{id}", handler.ReverseEntry)
	})

	router.Route("/wallets", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetWallets)
		routerGroup.Get("/{id}/balance", handler.GetWalletBalanceAt)
	})
}

// CreateEntry records a manual ledger entry.
// @Summary Record a cash flow entry
// @Description Append a manual ledger entry and move the mapped wallet in the same transaction.
// @Tags CashFlow
// @Accept json
// @Produce json
// @Param request body dto.CreateEntryRequest true "Create Entry Request"
// @Success 201 {object} response.Message "Cash flow entry recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cashflow [post]
// @Security BearerAuth
func (handler *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEntry")
	defer scope.End()

	req := dto.CreateEntryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record cash flow entry")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cash flow entry recorded by user " + user)

	response.WithMessage(w, http.StatusCreated, "Cash flow entry recorded successfully")
}

// GetEntries lists ledger entries.
// @Summary Get cash flow entries
// @Description Retrieve ledger entries filtered by flow type, category or payment method.
// @Tags CashFlow
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param flow_type query string false "Filter by flow type"
// @Param category query string false "Filter by category"
// @Param payment_method query string false "Filter by payment method"
// @Param ref_id query string false "Filter by reference"
// @Success 200 {object} response.Data[dto.EntryResponse] "List of entries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cashflow [get]
func (handler *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEntries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldFlowType,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldFlowType),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCategory,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldCategory),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldPaymentMethod,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldPaymentMethod),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRefID,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldRefID),
				Table:    model.TableName,
			},
		},
	}

	entries, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cash flow entries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cash flow entries retrieved successfully")

	response.WithJSON(w, http.StatusOK, entries)
}

// ReverseEntry reverses a manual ledger entry.
// @Summary Reverse a cash flow entry
// @Description Delete a manual entry and apply the opposite wallet movement. Automatic entries are refused.
// @Tags CashFlow
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Message "Cash flow entry reversed successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cashflow/{id} [delete]
// @Security BearerAuth
func (handler *Handler) ReverseEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReverseEntry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Reverse(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reverse cash flow entry")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cash flow entry reversed by user " + user)

	response.WithMessage(w, http.StatusOK, "Cash flow entry reversed successfully")
}

// GetWallets lists wallet balances.
// @Summary Get wallets
// @Description Retrieve the current projected balance of every wallet.
// @Tags Wallet
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.WalletResponse] "List of wallets"
// @Failure 500 {object} response.Error
// @Router /v1/wallets [get]
func (handler *Handler) GetWallets(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWallets")
	defer scope.End()

	wallets, err := handler.service.GetWallets(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get wallets")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wallets retrieved successfully")

	response.WithJSON(w, http.StatusOK, wallets)
}

// GetWalletBalanceAt reconstructs a wallet balance at a point in time.
// @Summary Get a wallet balance at a timestamp
// @Description Rebuild a wallet balance from the ledger as of the given RFC3339 timestamp.
// @Tags Wallet
// @Accept json
// @Produce json
// @Param id path string true "Wallet ID"
// @Param at query string false "RFC3339 timestamp, defaults to now"
// @Success 200 {object} response.Data[dto.WalletBalanceAtResponse] "Wallet balance"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wallets/{id}/balance [get]
func (handler *Handler) GetWalletBalanceAt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWalletBalanceAt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	at := timezone.Now()
	if raw := r.URL.Query().Get("at"); raw != constant.Empty {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			err = failure.BadRequestFromString("at must be an RFC3339 timestamp")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}
		at = parsed
	}

	balance, err := handler.service.GetWalletBalanceAt(ctx, id, at)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get wallet balance")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wallet balance reconstructed successfully")

	response.WithJSON(w, http.StatusOK, balance)
}
