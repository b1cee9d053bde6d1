package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	customerMocks "hotel/internal/domains/customer/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/failure"
)

func TestBookingService_Create(t *testing.T) {
	availableRoom := roomModel.Room{ID: "room-1", CategoryID: "category-1", Status: roomModel.StatusAvailable, Active: true}

	tests := []struct {
		name      string
		setupMock func(mockRepo *bookingMocks.MockBooking, mockRoomRepo *roomMocks.MockRoom, mockCustomerRepo *customerMocks.MockCustomer)
		wantCode  int
	}{
		{
			name: "check-in lands the booking and occupies the room",
			setupMock: func(mockRepo *bookingMocks.MockBooking, mockRoomRepo *roomMocks.MockRoom, mockCustomerRepo *customerMocks.MockCustomer) {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom, nil)
				mockCustomerRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, model.StatusCheckedIn, booking.Status)
						assert.Equal(t, "room-1", booking.RoomID)

						return nil
					})
				mockRoomRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])

						return nil
					})
			},
		},
		{
			name: "unknown room is rejected",
			setupMock: func(_ *bookingMocks.MockBooking, mockRoomRepo *roomMocks.MockRoom, _ *customerMocks.MockCustomer) {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "occupied room conflicts",
			setupMock: func(_ *bookingMocks.MockBooking, mockRoomRepo *roomMocks.MockRoom, _ *customerMocks.MockCustomer) {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", Status: roomModel.StatusOccupied, Active: true}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "inactive room conflicts",
			setupMock: func(_ *bookingMocks.MockBooking, mockRoomRepo *roomMocks.MockRoom, _ *customerMocks.MockCustomer) {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", Status: roomModel.StatusAvailable, Active: false}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown customer is rejected",
			setupMock: func(_ *bookingMocks.MockBooking, mockRoomRepo *roomMocks.MockRoom, mockCustomerRepo *customerMocks.MockCustomer) {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom, nil)
				mockCustomerRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := bookingMocks.NewMockBooking(ctrl)
			mockRoomRepo := roomMocks.NewMockRoom(ctrl)
			mockCustomerRepo := customerMocks.NewMockCustomer(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockOtel := mocks.NewOtel()

			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			svc := service.New(mockRepo, mockRoomRepo, mockCustomerRepo, &config.Config{}, mockCache, mockOtel)

			tt.setupMock(mockRepo, mockRoomRepo, mockCustomerRepo)

			res, err := svc.Create(context.Background(), dto.CreateBookingRequest{
				RoomID:        "room-1",
				CustomerID:    "customer-1",
				RentalType:    model.RentalTypeDaily,
				DepositAmount: 200000,
			})

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusCheckedIn, res.Status)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestBookingService_Create_InvalidCheckIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCustomerRepo := customerMocks.NewMockCustomer(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockRoomRepo, mockCustomerRepo, &config.Config{}, nil, mockOtel)

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(roomModel.Room{ID: "room-1", Status: roomModel.StatusAvailable, Active: true}, nil)
	mockCustomerRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	_, err := svc.Create(context.Background(), dto.CreateBookingRequest{
		RoomID:        "room-1",
		CustomerID:    "customer-1",
		RentalType:    model.RentalTypeDaily,
		CheckInActual: "yesterday afternoon",
	})

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mockRepo *bookingMocks.MockBooking, mockRoomRepo *roomMocks.MockRoom)
		wantCode  int
	}{
		{
			name: "cancelling an open booking releases the room",
			setupMock: func(mockRepo *bookingMocks.MockBooking, mockRoomRepo *roomMocks.MockRoom) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", RoomID: "room-1", Status: model.StatusCheckedIn}, nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

						return nil
					})
				mockRoomRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, roomModel.StatusAvailable, fields[roomModel.FieldStatus])

						return nil
					})
			},
		},
		{
			name: "missing booking",
			setupMock: func(mockRepo *bookingMocks.MockBooking, _ *roomMocks.MockRoom) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "closed booking conflicts",
			setupMock: func(mockRepo *bookingMocks.MockBooking, _ *roomMocks.MockRoom) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", RoomID: "room-1", Status: model.StatusCheckedOut}, nil)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := bookingMocks.NewMockBooking(ctrl)
			mockRoomRepo := roomMocks.NewMockRoom(ctrl)
			mockCustomerRepo := customerMocks.NewMockCustomer(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockOtel := mocks.NewOtel()

			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			svc := service.New(mockRepo, mockRoomRepo, mockCustomerRepo, &config.Config{}, mockCache, mockOtel)

			tt.setupMock(mockRepo, mockRoomRepo)

			err := svc.Cancel(context.Background(), "booking-1")

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
