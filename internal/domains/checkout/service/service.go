package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	auditService "hotel/internal/domains/audit/service"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	cashflowModel "hotel/internal/domains/cashflow/model"
	cashflowService "hotel/internal/domains/cashflow/service"
	"hotel/internal/domains/checkout/model/dto"
	customerModel "hotel/internal/domains/customer/model"
	customerRepo "hotel/internal/domains/customer/repository"
	customerService "hotel/internal/domains/customer/service"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	settingsModel "hotel/internal/domains/settings/model"
	settingsService "hotel/internal/domains/settings/service"
	"hotel/internal/domains/tariff"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Checkout interface {
	CalculateBill(ctx context.Context, bookingID string, nowOverride *time.Time) (dto.BillResponse, error)
	Checkout(ctx context.Context, bookingID string, req dto.CheckoutRequest) (dto.CheckoutResult, error)
}

type serviceImpl struct {
	bookings   bookingRepo.Booking
	rooms      roomRepo.Room
	categories roomRepo.Category
	customers  customerRepo.Customer
	settings   settingsService.Settings
	reconciler customerService.Customer
	cashflow   cashflowService.CashFlow
	audit      auditService.Audit
	txBeginner cashflowService.TxBeginner
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	bookings bookingRepo.Booking,
	rooms roomRepo.Room,
	categories roomRepo.Category,
	customers customerRepo.Customer,
	settings settingsService.Settings,
	reconciler customerService.Customer,
	cashflow cashflowService.CashFlow,
	audit auditService.Audit,
	txBeginner cashflowService.TxBeginner,
	cfg *config.Config,
	otel otel.Otel,
) Checkout {
	return &serviceImpl{
		bookings:   bookings,
		rooms:      rooms,
		categories: categories,
		customers:  customers,
		settings:   settings,
		reconciler: reconciler,
		cashflow:   cashflow,
		audit:      audit,
		txBeginner: txBeginner,
		cfg:        cfg,
		otel:       otel,
	}
}

// billContext is everything loaded once per bill computation.
type billContext struct {
	booking  bookingModel.Booking
	room     roomModel.Room
	customer customerModel.Customer
	input    tariff.Input
}

func pricingSnapshot(category roomModel.Category, rules []roomModel.SurchargeRule) tariff.Pricing {
	p := tariff.Pricing{
		PriceHourly:           category.PriceHourly,
		PriceNextHour:         category.PriceNextHour,
		HourlyUnitMinutes:     category.HourlyUnitMinutes,
		BaseHourlyLimit:       category.BaseHourlyLimit,
		PriceDaily:            category.PriceDaily,
		PriceOvernight:        category.PriceOvernight,
		OvernightEnabled:      category.OvernightEnabled,
		PriceExtraAdult:       category.PriceExtraAdult,
		PriceExtraChild:       category.PriceExtraChild,
		ExtraPersonEnabled:    category.ExtraPersonEnabled,
		AutoSurchargeEnabled:  category.AutoSurchargeEnabled,
		SurchargeMode:         tariff.SurchargeMode(category.SurchargeMode),
		HourlySurchargeAmount: category.HourlySurchargeAmount,
		OverflowPolicy:        tariff.OverflowPolicy(category.SurchargeOverflowPolicy),
	}

	p.Rules = make([]tariff.Rule, len(rules))
	for i, rule := range rules {
		p.Rules[i] = tariff.Rule{
			Type:       tariff.RuleType(rule.RuleType),
			FromMinute: rule.FromMinute,
			ToMinute:   rule.ToMinute,
			Percentage: rule.Percentage,
		}
	}

	return p
}

func scheduleSnapshot(snap settingsModel.Snapshot) tariff.Schedule {
	return tariff.Schedule{
		CheckInTime:       snap.CheckInTime,
		CheckOutTime:      snap.CheckOutTime,
		EarlyGraceMinutes: snap.EarlyGraceMinutes,
		EarlyGraceEnabled: snap.EarlyGraceEnabled,
		LateGraceMinutes:  snap.LateGraceMinutes,
		LateGraceEnabled:  snap.LateGraceEnabled,
		ServiceFeeEnabled: snap.ServiceFeeEnabled,
		ServiceFeePercent: snap.ServiceFeePercent,
		VATEnabled:        snap.VATEnabled,
		VATPercent:        snap.VATPercent,
	}
}

// loadBillContext gathers the booking, its room, pricing and settings
// snapshots and the customer, and assembles the calculator input.
func (s *serviceImpl) loadBillContext(ctx context.Context, bookingID string, checkOut time.Time) (bc billContext, err error) {
	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return bc, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return bc, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	room, err := s.rooms.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return bc, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return bc, failure.NotFound("room not found")
	}

	category, err := s.categories.Get(ctx, shared.FilterByID(room.CategoryID, roomModel.FieldID, roomModel.CategoryTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room category")

		return bc, fmt.Errorf("failed to get room category: %w", err)
	}

	if category.ID == constant.Empty {
		return bc, failure.NotFound("room category not found")
	}

	rules, err := s.categories.GetRules(ctx, category.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get surcharge rules")

		return bc, fmt.Errorf("failed to get surcharge rules: %w", err)
	}

	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return bc, err
	}

	customer, err := s.customers.Get(ctx, shared.FilterByID(booking.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return bc, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return bc, failure.NotFound("customer not found")
	}

	bc = billContext{
		booking:  booking,
		room:     room,
		customer: customer,
		input: tariff.Input{
			RentalType:      tariff.RentalType(booking.RentalType),
			CheckIn:         booking.CheckInActual,
			CheckOut:        checkOut,
			ExtraAdults:     booking.ExtraAdults,
			ExtraChildren:   booking.ExtraChildren,
			CustomPrice:     booking.CustomPrice,
			DiscountAmount:  booking.DiscountAmount,
			CustomSurcharge: booking.CustomSurcharge,
			DepositAmount:   booking.DepositAmount,
			CustomerBalance: customer.Balance,
			Pricing:         pricingSnapshot(category, rules),
			Schedule:        scheduleSnapshot(snap),
		},
	}

	return bc, nil
}

func (s *serviceImpl) buildResponse(bc billContext, bill tariff.Bill, checkOut time.Time) dto.BillResponse {
	var res dto.BillResponse
	res.FromBill(bill, bc.booking.CheckInActual, checkOut)
	res.BookingID = bc.booking.ID
	res.RoomID = bc.room.ID
	res.RoomName = bc.room.Name
	res.CustomerID = bc.customer.ID
	res.CustomerName = bc.customer.FullName
	res.RentalType = bc.booking.RentalType
	res.CustomerBalance = bc.customer.Balance

	return res
}

// CalculateBill is the read-only preview. Dashboards poll it; the identical
// computation runs once more, unchanged, at checkout.
func (s *serviceImpl) CalculateBill(ctx context.Context, bookingID string, nowOverride *time.Time) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CalculateBill")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkOut := timezone.Now()
	if nowOverride != nil {
		checkOut = *nowOverride
	}

	bc, err := s.loadBillContext(ctx, bookingID, checkOut)
	if err != nil {
		return res, err
	}

	if bc.booking.CheckOutActual != nil {
		checkOut = *bc.booking.CheckOutActual
		bc.input.CheckOut = checkOut
	}

	bill, err := tariff.Calculate(bc.input)
	if err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to calculate bill")

		return res, failure.BadRequestFromString(fmt.Sprintf("cannot price booking: %v", err)) // nolint:wrapcheck
	}

	return s.buildResponse(bc, bill, checkOut), nil
}

// Checkout closes the stay. The booking, room and customer-balance writes
// form one transaction; the ledger append runs after commit behind its own
// failure boundary so a ledger outage cannot hold a guest at the desk.
func (s *serviceImpl) Checkout(ctx context.Context, bookingID string, req dto.CheckoutRequest) (res dto.CheckoutResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	staffID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	staffName, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	checkOut := timezone.Now()

	bc, err := s.loadBillContext(ctx, bookingID, checkOut)
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			return dto.CheckoutResult{Success: false, Message: "booking not found"}, nil
		}

		return res, err
	}

	if bc.booking.Status != bookingModel.StatusCheckedIn {
		return dto.CheckoutResult{Success: false, Message: "booking is already closed"}, nil
	}

	if req.Discount != nil {
		bc.input.DiscountAmount = *req.Discount
	}
	if req.Surcharge != nil {
		bc.input.CustomSurcharge = *req.Surcharge
	}

	bill, err := tariff.Calculate(bc.input)
	if err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to calculate bill at checkout")

		return res, failure.BadRequestFromString(fmt.Sprintf("cannot price booking: %v", err)) // nolint:wrapcheck
	}

	auditTrail := strings.Join(bill.Explanation, "\n")

	tx, err := s.txBeginner.Beginx()
	if err != nil {
		log.Error().Err(err).Msg("failed to begin checkout transaction")

		return res, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}

	bookingFields := map[string]any{
		bookingModel.FieldStatus:            bookingModel.StatusCheckedOut,
		bookingModel.FieldCheckOutActual:    checkOut,
		bookingModel.FieldDiscountAmount:    bc.input.DiscountAmount,
		bookingModel.FieldCustomSurcharge:   bc.input.CustomSurcharge,
		bookingModel.FieldBillingAuditTrail: auditTrail,
		"modified_by":                       staffID,
		"modified_at":                       timezone.Now(),
	}
	if req.Notes != constant.Empty {
		bookingFields[bookingModel.FieldNotes] = req.Notes
	}

	if err = s.bookings.UpdateTx(ctx, tx, bookingFields, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		_ = tx.Rollback()
		log.Error().Err(err).Msg("failed to close booking")

		return res, fmt.Errorf("failed to close booking: %w", err)
	}

	roomFields := map[string]any{
		roomModel.FieldStatus: roomModel.StatusCleaning,
		"modified_by":         staffID,
		"modified_at":         timezone.Now(),
	}
	if err = s.rooms.UpdateTx(ctx, tx, roomFields, shared.FilterByID(bc.room.ID, roomModel.FieldID, roomModel.TableName)); err != nil {
		_ = tx.Rollback()
		log.Error().Err(err).Msg("failed to send room to cleaning")

		return res, fmt.Errorf("failed to send room to cleaning: %w", err)
	}

	newBalance, err := s.reconciler.CheckoutReconcileTx(ctx, tx, customerService.ReconcileParams{
		CustomerID:    bc.customer.ID,
		BookingID:     bookingID,
		AmountPaid:    req.AmountPaid,
		TotalAmount:   bill.TotalAmount,
		DepositAmount: bill.DepositAmount,
		PaymentMethod: req.PaymentMethod,
		StaffID:       staffID,
		StaffName:     staffName,
	})
	if err != nil {
		_ = tx.Rollback()

		return res, err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit checkout transaction")

		return res, fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	// The front desk state is committed. From here a ledger failure is
	// recorded, never propagated.
	if req.AmountPaid > 0 {
		refID := bookingID
		entry := cashflowModel.CashFlowEntry{
			ID:            uuid.NewString(),
			FlowType:      cashflowModel.FlowTypeIn,
			Category:      cashflowModel.CategoryRoomCharge,
			Amount:        req.AmountPaid,
			PaymentMethod: req.PaymentMethod,
			RefID:         &refID,
			IsAuto:        true,
			VerifiedByID:  staffID,
			VerifiedBy:    staffName,
			OccurredAt:    checkOut,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  staffID,
				ModifiedBy: staffID,
			},
		}

		if ledgerErr := s.cashflow.Append(ctx, entry); ledgerErr != nil {
			log.Error().Err(ledgerErr).Str("bookingID", bookingID).Msg("ledger append failed during checkout")

			auditErr := s.audit.Record(ctx, auditService.RecordParams{
				BookingID:   bookingID,
				CustomerID:  bc.customer.ID,
				RoomID:      bc.room.ID,
				StaffID:     staffID,
				TotalAmount: bill.TotalAmount,
				Explanation: []string{fmt.Sprintf("ledger append failed: %v", ledgerErr)},
			})
			if auditErr != nil {
				return res, auditErr
			}
		}
	}

	if err = s.audit.Record(ctx, auditService.RecordParams{
		BookingID:   bookingID,
		CustomerID:  bc.customer.ID,
		RoomID:      bc.room.ID,
		StaffID:     staffID,
		TotalAmount: bill.TotalAmount,
		Explanation: bill.Explanation,
	}); err != nil {
		return res, err
	}

	billRes := s.buildResponse(bc, bill, checkOut)

	return dto.CheckoutResult{
		Success:    true,
		Message:    "checkout completed",
		NewBalance: newBalance,
		Bill:       &billRes,
	}, nil
}
