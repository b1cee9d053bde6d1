package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/failure"
)

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateCategoryRequest
		setupMock func(mockRepo *roomMocks.MockCategory)
		wantCode  int
	}{
		{
			name: "tiered rules are stored alongside the category",
			req: dto.CreateCategoryRequest{
				Name:          "Standard",
				PriceDaily:    500000,
				SurchargeMode: model.SurchargeModePercent,
				SurchargeRules: []dto.SurchargeRuleRequest{
					{RuleType: "late", FromMinute: 0, ToMinute: 60, Percentage: 10},
					{RuleType: "late", FromMinute: 60, ToMinute: 180, Percentage: 30},
					{RuleType: "early", FromMinute: 0, ToMinute: 120, Percentage: 20},
				},
			},
			setupMock: func(mockRepo *roomMocks.MockCategory) {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
				mockRepo.EXPECT().
					ReplaceRules(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, rules []model.SurchargeRule) error {
						assert.Len(t, rules, 3)
						assert.Equal(t, 0, rules[0].Position)
						assert.Equal(t, 2, rules[2].Position)

						return nil
					})
			},
		},
		{
			name: "category without rules skips the rule write",
			req: dto.CreateCategoryRequest{
				Name:       "Budget",
				PriceDaily: 300000,
			},
			setupMock: func(mockRepo *roomMocks.MockCategory) {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "window that ends before it starts is rejected",
			req: dto.CreateCategoryRequest{
				Name: "Standard",
				SurchargeRules: []dto.SurchargeRuleRequest{
					{RuleType: "late", FromMinute: 60, ToMinute: 60, Percentage: 10},
				},
			},
			setupMock: func(_ *roomMocks.MockCategory) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "overlapping windows of the same type are rejected",
			req: dto.CreateCategoryRequest{
				Name: "Standard",
				SurchargeRules: []dto.SurchargeRuleRequest{
					{RuleType: "late", FromMinute: 0, ToMinute: 90, Percentage: 10},
					{RuleType: "late", FromMinute: 60, ToMinute: 180, Percentage: 30},
				},
			},
			setupMock: func(_ *roomMocks.MockCategory) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "early and late windows may share minutes",
			req: dto.CreateCategoryRequest{
				Name: "Standard",
				SurchargeRules: []dto.SurchargeRuleRequest{
					{RuleType: "late", FromMinute: 0, ToMinute: 90, Percentage: 10},
					{RuleType: "early", FromMinute: 0, ToMinute: 90, Percentage: 20},
				},
			},
			setupMock: func(mockRepo *roomMocks.MockCategory) {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
				mockRepo.EXPECT().
					ReplaceRules(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := roomMocks.NewMockCategory(ctrl)
			mockRoomRepo := roomMocks.NewMockRoom(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockOtel := mocks.NewOtel()

			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			svc := service.NewCategory(mockRepo, mockRoomRepo, &config.Config{}, mockCache, mockOtel)

			tt.setupMock(mockRepo)

			err := svc.Create(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mockRepo *roomMocks.MockCategory, mockRoomRepo *roomMocks.MockRoom)
		wantCode  int
	}{
		{
			name: "unused category is removed with its rules",
			setupMock: func(mockRepo *roomMocks.MockCategory, mockRoomRepo *roomMocks.MockRoom) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Category{ID: "category-1"}, nil)
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				mockRepo.EXPECT().
					ReplaceRules(gomock.Any(), "category-1", nil).
					Return(nil)
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "category still assigned to rooms conflicts",
			setupMock: func(mockRepo *roomMocks.MockCategory, mockRoomRepo *roomMocks.MockRoom) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Category{ID: "category-1"}, nil)
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "missing category",
			setupMock: func(mockRepo *roomMocks.MockCategory, _ *roomMocks.MockRoom) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Category{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := roomMocks.NewMockCategory(ctrl)
			mockRoomRepo := roomMocks.NewMockRoom(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockOtel := mocks.NewOtel()

			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			svc := service.NewCategory(mockRepo, mockRoomRepo, &config.Config{}, mockCache, mockOtel)

			tt.setupMock(mockRepo, mockRoomRepo)

			err := svc.Delete(context.Background(), "category-1")

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
