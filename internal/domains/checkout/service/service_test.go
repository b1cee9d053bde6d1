package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	auditService "hotel/internal/domains/audit/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	cashflowModel "hotel/internal/domains/cashflow/model"
	cashflowService "hotel/internal/domains/cashflow/service"
	"hotel/internal/domains/checkout/model/dto"
	"hotel/internal/domains/checkout/service"
	customerMocks "hotel/internal/domains/customer/mocks"
	customerModel "hotel/internal/domains/customer/model"
	customerService "hotel/internal/domains/customer/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	settingsMocks "hotel/internal/domains/settings/mocks"
	settingsModel "hotel/internal/domains/settings/model"
	settingsService "hotel/internal/domains/settings/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
)

type fixture struct {
	bookings   *bookingMocks.MockBooking
	rooms      *roomMocks.MockRoom
	categories *roomMocks.MockCategory
	customers  *customerMocks.MockCustomer
	settings   *settingsMocks.MockSettings
	svc        service.Checkout
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		bookings:   bookingMocks.NewMockBooking(ctrl),
		rooms:      roomMocks.NewMockRoom(ctrl),
		categories: roomMocks.NewMockCategory(ctrl),
		customers:  customerMocks.NewMockCustomer(ctrl),
		settings:   settingsMocks.NewMockSettings(ctrl),
	}

	mockOtel := mocks.NewOtel()
	settings := settingsService.New(f.settings, &config.Config{}, nil, mockOtel)

	f.svc = service.New(
		f.bookings, f.rooms, f.categories, f.customers,
		settings, nil, nil, nil, nil,
		&config.Config{}, mockOtel,
	)

	return f
}

func settingsRow() settingsModel.Settings {
	return settingsModel.Settings{
		ID:           settingsModel.SingletonID,
		CheckInTime:  "14:00",
		CheckOutTime: "12:00",
	}
}

func dailyBooking(checkIn time.Time) bookingModel.Booking {
	return bookingModel.Booking{
		ID:            "booking-1",
		RoomID:        "room-1",
		CustomerID:    "customer-1",
		RentalType:    bookingModel.RentalTypeDaily,
		CheckInActual: checkIn,
		DepositAmount: 200000,
		Status:        bookingModel.StatusCheckedIn,
	}
}

func (f *fixture) expectBillContext(booking bookingModel.Booking) {
	f.bookings.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(booking, nil)
	f.rooms.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(roomModel.Room{ID: "room-1", Name: "101", CategoryID: "category-1", Status: roomModel.StatusOccupied, Active: true}, nil)
	f.categories.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(roomModel.Category{ID: "category-1", Name: "Standard", PriceDaily: 500000}, nil)
	f.categories.EXPECT().
		GetRules(gomock.Any(), "category-1").
		Return([]roomModel.SurchargeRule{}, nil)
	f.settings.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(settingsRow(), nil)
	f.customers.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(customerModel.Customer{ID: "customer-1", FullName: "Nguyễn Văn A", Balance: 100000}, nil)
}

func TestCheckoutService_CalculateBill_Daily(t *testing.T) {
	f := newFixture(t)

	checkIn := time.Date(2026, 1, 30, 14, 0, 0, 0, time.UTC)
	f.expectBillContext(dailyBooking(checkIn))

	at := time.Date(2026, 1, 31, 11, 30, 0, 0, time.UTC)

	res, err := f.svc.CalculateBill(context.Background(), "booking-1", &at)

	assert.NoError(t, err)
	assert.Equal(t, "booking-1", res.BookingID)
	assert.Equal(t, "101", res.RoomName)
	assert.Equal(t, int64(500000), res.RoomCharge)
	assert.Equal(t, int64(0), res.Surcharge)
	assert.Equal(t, int64(500000), res.Subtotal)
	assert.Equal(t, int64(500000), res.TotalAmount)
	assert.Equal(t, int64(200000), res.DepositAmount)
	assert.Equal(t, int64(100000), res.CustomerBalance)
	assert.Equal(t, int64(200000), res.TotalReceivable)
	assert.Equal(t, at, res.CheckOut)
}

func TestCheckoutService_CalculateBill_ClosedBookingKeepsItsCheckout(t *testing.T) {
	f := newFixture(t)

	checkIn := time.Date(2026, 1, 30, 14, 0, 0, 0, time.UTC)
	closedAt := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)

	booking := dailyBooking(checkIn)
	booking.CheckOutActual = &closedAt
	booking.Status = bookingModel.StatusCheckedOut

	f.expectBillContext(booking)

	at := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	res, err := f.svc.CalculateBill(context.Background(), "booking-1", &at)

	assert.NoError(t, err)
	assert.Equal(t, closedAt, res.CheckOut)
}

func TestCheckoutService_CalculateBill_BookingMissing(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(bookingModel.Booking{}, nil)

	_, err := f.svc.CalculateBill(context.Background(), "booking-1", nil)

	assert.Error(t, err)
}

func TestCheckoutService_Checkout_BookingMissing(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(bookingModel.Booking{}, nil)

	res, err := f.svc.Checkout(context.Background(), "booking-1", dto.CheckoutRequest{
		PaymentMethod: "cash",
	})

	assert.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "booking not found", res.Message)
}

func TestCheckoutService_Checkout_AlreadyClosed(t *testing.T) {
	f := newFixture(t)

	checkIn := time.Date(2026, 1, 30, 14, 0, 0, 0, time.UTC)
	booking := dailyBooking(checkIn)
	booking.Status = bookingModel.StatusCheckedOut

	f.expectBillContext(booking)

	res, err := f.svc.Checkout(context.Background(), "booking-1", dto.CheckoutRequest{
		PaymentMethod: "cash",
	})

	assert.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "booking is already closed", res.Message)
}

// sqlmockTxBeginner hands out transactions from a sqlmock-backed connection
// so the commit boundary is observable without a database.
type sqlmockTxBeginner struct{ db *sqlx.DB }

func (b sqlmockTxBeginner) Beginx() (*sqlx.Tx, error) {
	return b.db.Beginx()
}

type stubCashFlow struct {
	cashflowService.CashFlow

	appendErr error
	appended  []cashflowModel.CashFlowEntry
	onAppend  func()
}

func (s *stubCashFlow) Append(_ context.Context, entry cashflowModel.CashFlowEntry) error {
	if s.onAppend != nil {
		s.onAppend()
	}

	s.appended = append(s.appended, entry)

	return s.appendErr
}

type recordingAudit struct {
	auditService.Audit

	records []auditService.RecordParams
}

func (a *recordingAudit) Record(_ context.Context, p auditService.RecordParams) error {
	a.records = append(a.records, p)

	return nil
}

type checkoutFixture struct {
	*fixture

	txRepo  *customerMocks.MockTransaction
	ledger  *stubCashFlow
	audit   *recordingAudit
	sqlMock sqlmock.Sqlmock
}

// newCheckoutFixture wires the full checkout path: real settings and
// reconciler services over mocked repositories, a sqlmock transaction
// boundary, and observable ledger and audit collaborators.
func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	db, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { _ = sqlxDB.Close() })

	f := &checkoutFixture{
		fixture: &fixture{
			bookings:   bookingMocks.NewMockBooking(ctrl),
			rooms:      roomMocks.NewMockRoom(ctrl),
			categories: roomMocks.NewMockCategory(ctrl),
			customers:  customerMocks.NewMockCustomer(ctrl),
			settings:   settingsMocks.NewMockSettings(ctrl),
		},
		txRepo:  customerMocks.NewMockTransaction(ctrl),
		ledger:  &stubCashFlow{},
		audit:   &recordingAudit{},
		sqlMock: sqlMock,
	}

	mockOtel := mocks.NewOtel()
	cfg := &config.Config{}
	settings := settingsService.New(f.settings, cfg, nil, mockOtel)
	reconciler := customerService.New(f.customers, f.txRepo, nil, nil, cfg, nil, mockOtel)

	f.svc = service.New(
		f.bookings, f.rooms, f.categories, f.customers,
		settings, reconciler, f.ledger, f.audit,
		sqlmockTxBeginner{db: sqlxDB}, cfg, mockOtel,
	)

	return f
}

func (f *checkoutFixture) expectCheckoutWrites(t *testing.T) {
	t.Helper()

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	f.bookings.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, bookingModel.StatusCheckedOut, fields[bookingModel.FieldStatus])
			assert.NotEmpty(t, fields[bookingModel.FieldBillingAuditTrail])

			return nil
		})
	f.rooms.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, roomModel.StatusCleaning, fields[roomModel.FieldStatus])

			return nil
		})
	f.customers.EXPECT().
		GetForUpdateTx(gomock.Any(), gomock.Any(), "customer-1").
		Return(customerModel.Customer{ID: "customer-1", Balance: 100000}, nil)
	f.customers.EXPECT().
		UpdateBalanceTx(gomock.Any(), gomock.Any(), "customer-1", gomock.Any(), "staff-1").
		Return(nil)
	f.txRepo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
}

func TestCheckoutService_Checkout_Success(t *testing.T) {
	f := newCheckoutFixture(t)

	f.expectBillContext(dailyBooking(time.Now().Add(-20 * time.Hour)))
	f.expectCheckoutWrites(t)

	// The ledger append must only ever see a committed front-desk state.
	f.ledger.onAppend = func() {
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	}

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

	res, err := f.svc.Checkout(ctx, "booking-1", dto.CheckoutRequest{
		PaymentMethod: "cash",
		AmountPaid:    500000,
	})

	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.NotNil(t, res.Bill)

	if assert.Len(t, f.ledger.appended, 1) {
		entry := f.ledger.appended[0]
		assert.Equal(t, cashflowModel.FlowTypeIn, entry.FlowType)
		assert.Equal(t, cashflowModel.CategoryRoomCharge, entry.Category)
		assert.Equal(t, int64(500000), entry.Amount)
		assert.Equal(t, "cash", entry.PaymentMethod)
		assert.True(t, entry.IsAuto)
		if assert.NotNil(t, entry.RefID) {
			assert.Equal(t, "booking-1", *entry.RefID)
		}
	}

	if assert.Len(t, f.audit.records, 1) {
		assert.Equal(t, "booking-1", f.audit.records[0].BookingID)
		assert.NotEmpty(t, f.audit.records[0].Explanation)
	}

	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestCheckoutService_Checkout_LedgerFailureStillSucceeds(t *testing.T) {
	f := newCheckoutFixture(t)

	f.expectBillContext(dailyBooking(time.Now().Add(-20 * time.Hour)))
	f.expectCheckoutWrites(t)

	f.ledger.appendErr = errors.New("wallet update failed")

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

	res, err := f.svc.Checkout(ctx, "booking-1", dto.CheckoutRequest{
		PaymentMethod: "cash",
		AmountPaid:    500000,
	})

	assert.NoError(t, err)
	assert.True(t, res.Success)

	if assert.Len(t, f.audit.records, 2) {
		assert.Equal(t, []string{"ledger append failed: wallet update failed"}, f.audit.records[0].Explanation)
		assert.Equal(t, "booking-1", f.audit.records[1].BookingID)
		assert.NotEqual(t, f.audit.records[0].Explanation, f.audit.records[1].Explanation)
	}

	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestCheckoutService_Checkout_NoPaymentSkipsLedger(t *testing.T) {
	f := newCheckoutFixture(t)

	f.expectBillContext(dailyBooking(time.Now().Add(-20 * time.Hour)))
	f.expectCheckoutWrites(t)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

	res, err := f.svc.Checkout(ctx, "booking-1", dto.CheckoutRequest{
		PaymentMethod: "credit",
	})

	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, f.ledger.appended)
	assert.Len(t, f.audit.records, 1)
}
