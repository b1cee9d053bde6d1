package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	settingsMocks "hotel/internal/domains/settings/mocks"
	"hotel/internal/domains/settings/model"
	"hotel/internal/domains/settings/model/dto"
	"hotel/internal/domains/settings/service"
	cacheMocks "hotel/shared/cache/mocks"
)

func defaultRow() model.Settings {
	return model.Settings{
		ID:                model.SingletonID,
		CheckInTime:       "14:00",
		CheckOutTime:      "12:00",
		EarlyGraceMinutes: 60,
		EarlyGraceEnabled: true,
		LateGraceMinutes:  30,
		LateGraceEnabled:  true,
		ServiceFeePercent: 5,
		VATPercent:        8,
	}
}

func TestSettingsService_Get_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := settingsMocks.NewMockSettings(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockCache, mockOtel)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))
	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(defaultRow(), nil)
	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.Get(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "14:00", res.CheckInTime)
	assert.Equal(t, "12:00", res.CheckOutTime)
	assert.Equal(t, 60, res.EarlyGraceMinutes)
}

func TestSettingsService_Get_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := settingsMocks.NewMockSettings(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockCache, mockOtel)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, ok := value.(*dto.SettingsResponse)
			assert.True(t, ok)
			res.CheckInTime = "15:00"

			return nil
		})

	res, err := svc.Get(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "15:00", res.CheckInTime)
}

func TestSettingsService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := settingsMocks.NewMockSettings(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockCache, mockOtel)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))
	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Settings{}, nil)

	_, err := svc.Get(context.Background())

	assert.Error(t, err)
}

func TestSettingsService_Snapshot_BypassesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := settingsMocks.NewMockSettings(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockCache, mockOtel)

	// No cache expectations: the snapshot always reads the row directly.
	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(defaultRow(), nil)

	snap, err := svc.Snapshot(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "14:00", snap.CheckInTime)
	assert.Equal(t, 30, snap.LateGraceMinutes)
	assert.Equal(t, float64(8), snap.VATPercent)
}

func TestSettingsService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := settingsMocks.NewMockSettings(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockCache, mockOtel)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(defaultRow(), nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, "13:00", fields["check_out_time"])

			return nil
		})
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	err := svc.Update(context.Background(), dto.UpdateSettingsRequest{CheckOutTime: "13:00"})

	assert.NoError(t, err)
}
