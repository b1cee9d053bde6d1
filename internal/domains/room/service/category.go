package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCategory    = "category:get"
	cacheGetAllCategory = "category:gets"
	cacheCountCategory  = "category:count"
)

type Category interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCategoriesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CategoryResponse, error)
	Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type categoryServiceImpl struct {
	repo     repository.Category
	roomRepo repository.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func NewCategory(repo repository.Category, roomRepo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Category {
	return &categoryServiceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// validateRules rejects rule lists the pricing engine cannot evaluate
// deterministically. Windows of the same type must be ordered and must not
// overlap.
func validateRules(rules []dto.SurchargeRuleRequest) error {
	lastTo := map[string]int{}
	for _, rule := range rules {
		if rule.ToMinute <= rule.FromMinute {
			return failure.BadRequestFromString("surcharge rule window must end after it starts")
		}

		if rule.FromMinute < lastTo[rule.RuleType] {
			return failure.BadRequestFromString("surcharge rule windows must not overlap")
		}

		lastTo[rule.RuleType] = rule.ToMinute
	}

	return nil
}

func (s *categoryServiceImpl) Create(ctx context.Context, req dto.CreateCategoryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = validateRules(req.SurchargeRules); err != nil {
		return err
	}

	category := req.ToModel(user)
	if err = s.repo.Insert(ctx, category); err != nil {
		return err
	}

	if len(req.SurchargeRules) > 0 {
		if err = s.repo.ReplaceRules(ctx, category.ID, req.ToRuleModels(category.ID, user)); err != nil {
			log.Error().Err(err).Msg("failed to save surcharge rules")

			return fmt.Errorf("failed to save surcharge rules: %w", err)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCategory)
		shared.InvalidateCaches(c, s.cache, cacheCountCategory)
	}()

	return nil
}

func (s *categoryServiceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllCategories")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCategory, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room categories")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room categories")

		return res, fmt.Errorf("failed to count room categories: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room categories")

		return res, fmt.Errorf("failed to get room categories: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room categories to cache")
		}
	}()

	return res, nil
}

func (s *categoryServiceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountCategories")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCategory, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room category count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room categories")

		return res, fmt.Errorf("failed to count room categories: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room category count to cache")
		}
	}()

	return res, nil
}

func (s *categoryServiceImpl) Get(ctx context.Context, id string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCategory, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room category")

		return res, nil
	}

	category, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.CategoryTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room category")

		return res, fmt.Errorf("failed to get room category: %w", err)
	}

	if category.ID == constant.Empty {
		return res, failure.NotFound("room category not found") // nolint:wrapcheck
	}

	rules, err := s.repo.GetRules(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get surcharge rules")

		return res, fmt.Errorf("failed to get surcharge rules: %w", err)
	}

	res.FromModel(category, rules)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room category to cache")
		}
	}()

	return res, nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.CategoryTableName)

	current, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room category existence")

		return err
	}

	if current.ID == constant.Empty {
		return failure.NotFound("room category not found")
	}

	if err = validateRules(req.SurchargeRules); err != nil {
		return err
	}

	if fields := shared.TransformFields(req, user); len(fields) > 1 {
		if err := s.repo.Update(ctx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update room category")

			return fmt.Errorf("failed to update room category: %w", err)
		}
	}

	if req.SurchargeRules != nil {
		rules := make([]model.SurchargeRule, 0, len(req.SurchargeRules))
		create := dto.CreateCategoryRequest{SurchargeRules: req.SurchargeRules}
		rules = append(rules, create.ToRuleModels(id, user)...)

		if err := s.repo.ReplaceRules(ctx, id, rules); err != nil {
			log.Error().Err(err).Msg("failed to replace surcharge rules")

			return fmt.Errorf("failed to replace surcharge rules: %w", err)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetCategory, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllCategory)
	}()

	return nil
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.CategoryTableName)

	category, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room category existence")

		return err
	}

	if category.ID == constant.Empty {
		return failure.NotFound("room category not found")
	}

	inUse, err := s.roomRepo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCategoryID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check rooms using category")

		return fmt.Errorf("failed to check rooms using category: %w", err)
	}

	if inUse {
		return failure.Conflict("room category is still assigned to rooms")
	}

	if err := s.repo.ReplaceRules(ctx, id, nil); err != nil {
		log.Error().Err(err).Msg("failed to delete surcharge rules")

		return fmt.Errorf("failed to delete surcharge rules: %w", err)
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room category")

		return fmt.Errorf("failed to delete room category: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetCategory, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllCategory)
		shared.InvalidateCaches(c, s.cache, cacheCountCategory)
	}()

	return nil
}
