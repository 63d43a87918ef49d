package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"wanderwise/config"
	"wanderwise/infras/otel"
	"wanderwise/infras/s3"
	"wanderwise/internal/domains/tour/model"
	"wanderwise/internal/domains/tour/model/dto"
	"wanderwise/internal/domains/tour/repository"
	"wanderwise/shared"
	"wanderwise/shared/cache"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTour    = "tour:get"
	cacheGetAllTour = "tour:gets"
	cacheCountTour  = "tour:count"
)

type Tour interface {
	Create(ctx context.Context, req dto.CreateTourRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetToursResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetBySlug(ctx context.Context, slug string) (dto.TourResponse, error)
	FindByDestinationAndCountry(ctx context.Context, destination, country string) (model.Tour, error)
	Update(ctx context.Context, req dto.UpdateTourRequest, id string) error
	UploadImage(ctx context.Context, id string, file multipart.File, fileHeader *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Tour
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Tour, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Tour {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTourRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	tour := req.ToModel(user)

	exists, err := s.repo.Exist(ctx, s.filterBySlug(tour.Slug))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if tour exists")

		return fmt.Errorf("failed to check if tour exists: %w", err)
	}

	if exists {
		return failure.Conflict("a tour for this destination already exists") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, tour); err != nil {
		log.Error().Err(err).Msg("failed to create tour")

		return fmt.Errorf("failed to create tour: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTour)
		shared.InvalidateCaches(c, s.cache, cacheCountTour)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetToursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == "" {
		req.SortBy = model.FieldDestination
		req.SortDir = gDto.SortDirAsc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTour, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tours")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tours")

		return res, fmt.Errorf("failed to count tours: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tours")

		return res, fmt.Errorf("failed to get tours: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tours to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTour, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tour count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tours")

		return res, fmt.Errorf("failed to count tours: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tour count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.TourResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetTour, slug)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tour")

		return res, nil
	}

	tour, err := s.repo.Get(ctx, s.filterBySlug(slug))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tour")

		return res, fmt.Errorf("failed to get tour: %w", err)
	}

	if tour.ID == "" {
		return res, failure.NotFound("tour not found") // nolint:wrapcheck
	}

	res.FromModel(tour)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tour to cache")
		}
	}()

	return res, nil
}

// FindByDestinationAndCountry matches on destination and country ignoring
// case. A zero-ID tour means no catalog entry exists for the pair.
func (s *serviceImpl) FindByDestinationAndCountry(ctx context.Context, destination, country string) (res model.Tour, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindByDestinationAndCountry")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDestination,
				Operator: gDto.FilterOperatorIEq,
				Value:    destination,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCountry,
				Operator: gDto.FilterOperatorIEq,
				Value:    country,
				Table:    model.TableName,
			},
		},
	}

	res, err = s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to find tour")

		return res, fmt.Errorf("failed to find tour: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTourRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateTourRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	tour, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tour")

		return fmt.Errorf("failed to get tour: %w", err)
	}

	if tour.ID == "" {
		return failure.NotFound("tour not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	// Destination or country changes move the slug with them.
	if req.Destination != nil || req.Country != nil {
		destination := tour.Destination
		if req.Destination != nil {
			destination = *req.Destination
		}

		country := tour.Country
		if req.Country != nil {
			country = *req.Country
		}

		updatedFields[model.FieldSlug] = dto.Slugify(destination, country)
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update tour")

		return fmt.Errorf("failed to update tour: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTour, tour.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete tour from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTour)
		shared.InvalidateCaches(c, s.cache, cacheCountTour)
	}()

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, id string, file multipart.File, fileHeader *multipart.FileHeader) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	tour, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tour")

		return url, fmt.Errorf("failed to get tour: %w", err)
	}

	if tour.ID == "" {
		return url, failure.NotFound("tour not found") // nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName

	url, err = s.s3.UploadFile(ctx, bucketName, model.EntityName, file, fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to S3")

		return url, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := shared.TransformFields(struct {
		ImageURL string `db:"image_url"`
	}{ImageURL: url}, user)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update tour image")

		return url, fmt.Errorf("failed to update tour image: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTour, tour.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete tour from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTour)
	}()

	return url, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	tour, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tour")

		return fmt.Errorf("failed to get tour: %w", err)
	}

	if tour.ID == "" {
		return failure.NotFound("tour not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete tour")

		return fmt.Errorf("failed to delete tour: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if tour.ImageURL != nil {
			bucketName := s.cfg.External.S3.BucketName
			objectName := s.s3.GetObjectNameFromURL(bucketName, *tour.ImageURL)

			if objectName != "" {
				if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
					log.Error().Err(err).Msg("failed to delete tour image from S3")
				}
			}
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTour, tour.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete tour from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTour)
		shared.InvalidateCaches(c, s.cache, cacheCountTour)
	}()

	return nil
}

func (s *serviceImpl) filterBySlug(slug string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSlug,
				Operator: gDto.FilterOperatorEq,
				Value:    slug,
				Table:    model.TableName,
			},
		},
	}
}
