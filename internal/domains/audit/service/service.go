package service

import (
	"context"
	"fmt"
	"strings"

	"hotel/infras/otel"
	"hotel/internal/domains/audit/model"
	"hotel/internal/domains/audit/model/dto"
	"hotel/internal/domains/audit/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RecordParams carries one auditable event.
type RecordParams struct {
	BookingID   string
	CustomerID  string
	RoomID      string
	StaffID     string
	TotalAmount int64
	Explanation []string
}

type Audit interface {
	Record(ctx context.Context, p RecordParams) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAuditLogsResponse, error)
}

type serviceImpl struct {
	repo repository.Audit
	otel otel.Otel
}

func New(repo repository.Audit, otel otel.Otel) Audit {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Record(ctx context.Context, p RecordParams) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordAudit")
	defer scope.End()
	defer scope.TraceIfError(err)

	entry := model.AuditLog{
		ID:          uuid.NewString(),
		BookingID:   p.BookingID,
		CustomerID:  p.CustomerID,
		RoomID:      p.RoomID,
		StaffID:     p.StaffID,
		TotalAmount: p.TotalAmount,
		Explanation: strings.Join(p.Explanation, "\n"),
		OccurredAt:  timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  p.StaffID,
			ModifiedBy: p.StaffID,
		},
	}

	if err = s.repo.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to record audit log")

		return fmt.Errorf("failed to record audit log: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAuditLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllAudit")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count audit logs")

		return res, fmt.Errorf("failed to count audit logs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get audit logs")

		return res, fmt.Errorf("failed to get audit logs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}
