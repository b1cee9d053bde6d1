package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	customerMocks "hotel/internal/domains/customer/mocks"
	"hotel/internal/domains/customer/model"
	"hotel/internal/domains/customer/model/dto"
	"hotel/internal/domains/customer/service"
	cacheMocks "hotel/shared/cache/mocks"
	gDto "hotel/shared/dto"
)

// failingTxBeginner stands in for the write connection when a test never
// expects the transaction to open.
type failingTxBeginner struct{ err error }

func (f failingTxBeginner) Beginx() (*sqlx.Tx, error) {
	return nil, f.err
}

func TestCustomerService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockTxRepo := customerMocks.NewMockTransaction(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTxRepo, nil, nil, &config.Config{}, mockCache, mockOtel)

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, customer model.Customer) error {
			assert.Equal(t, "Nguyễn Văn A", customer.FullName)
			assert.NotEmpty(t, customer.ID)

			return nil
		})
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		FullName: "Nguyễn Văn A",
		Phone:    "0901234567",
	})

	assert.NoError(t, err)
}

func TestCustomerService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mockRepo *customerMocks.MockCustomer)
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mockRepo *customerMocks.MockCustomer) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{ID: "customer-1", FullName: "Nguyễn Văn A", Balance: -150000}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(mockRepo *customerMocks.MockCustomer) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := customerMocks.NewMockCustomer(ctrl)
			mockTxRepo := customerMocks.NewMockTransaction(ctrl)
			mockOtel := mocks.NewOtel()

			svc := service.New(mockRepo, mockTxRepo, nil, nil, &config.Config{}, nil, mockOtel)

			tt.setupMock(mockRepo)

			res, err := svc.Get(context.Background(), "customer-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "customer-1", res.ID)
				assert.Equal(t, int64(-150000), res.Balance)
			}
		})
	}
}

func TestCustomerService_GetTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockTxRepo := customerMocks.NewMockTransaction(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTxRepo, nil, nil, &config.Config{}, nil, mockOtel)

	mockTxRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)
	mockTxRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.CustomerTransaction{
			{ID: "tx-1", CustomerID: "customer-1", TxType: model.TxTypePayment, Amount: 50000},
		}, nil)

	res, err := svc.GetTransactions(context.Background(), "customer-1", gDto.QueryParams{Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Transactions, 1)
	assert.Equal(t, "tx-1", res.Transactions[0].ID)
}

func TestCustomerService_CheckoutReconcileTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockTxRepo := customerMocks.NewMockTransaction(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTxRepo, nil, nil, &config.Config{}, nil, mockOtel)

	// Balance 100000, paid 500000 against 400000 receivable: the guest ends
	// up 200000 in credit.
	mockRepo.EXPECT().
		GetForUpdateTx(gomock.Any(), gomock.Any(), "customer-1").
		Return(model.Customer{ID: "customer-1", Balance: 100000}, nil)
	mockRepo.EXPECT().
		UpdateBalanceTx(gomock.Any(), gomock.Any(), "customer-1", int64(200000), "staff-1").
		Return(nil)
	mockTxRepo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, tx model.CustomerTransaction) error {
			assert.Equal(t, model.TxTypeCheckout, tx.TxType)
			assert.Equal(t, int64(100000), tx.Amount)
			assert.Equal(t, int64(100000), tx.BalanceBefore)
			assert.Equal(t, int64(200000), tx.BalanceAfter)

			return nil
		})

	newBalance, err := svc.CheckoutReconcileTx(context.Background(), nil, service.ReconcileParams{
		CustomerID:    "customer-1",
		BookingID:     "booking-1",
		AmountPaid:    500000,
		TotalAmount:   600000,
		DepositAmount: 200000,
		PaymentMethod: "cash",
		StaffID:       "staff-1",
		StaffName:     "staff@hotel.vn",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(200000), newBalance)
}

func TestCustomerService_CheckoutReconcileTx_CustomerMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockTxRepo := customerMocks.NewMockTransaction(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTxRepo, nil, nil, &config.Config{}, nil, mockOtel)

	mockRepo.EXPECT().
		GetForUpdateTx(gomock.Any(), gomock.Any(), "customer-1").
		Return(model.Customer{}, nil)

	_, err := svc.CheckoutReconcileTx(context.Background(), nil, service.ReconcileParams{
		CustomerID: "customer-1",
	})

	assert.Error(t, err)
}

func TestCustomerService_Adjust_UnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockTxRepo := customerMocks.NewMockTransaction(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTxRepo, nil, nil, &config.Config{}, nil, mockOtel)

	_, err := svc.Adjust(context.Background(), "customer-1", dto.AdjustBalanceRequest{
		Type:   "bonus",
		Amount: 10000,
	})

	assert.Error(t, err)
}

func TestCustomerService_Adjust_BeginFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockTxRepo := customerMocks.NewMockTransaction(ctrl)
	mockOtel := mocks.NewOtel()

	beginner := failingTxBeginner{err: errors.New("connection lost")}
	svc := service.New(mockRepo, mockTxRepo, nil, beginner, &config.Config{}, nil, mockOtel)

	_, err := svc.Adjust(context.Background(), "customer-1", dto.AdjustBalanceRequest{
		Type:   model.TxTypePayment,
		Amount: 50000,
	})

	assert.Error(t, err)
}
