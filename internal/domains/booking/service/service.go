package service

import (
	"context"
	"fmt"
	"wanderwise/config"
	"wanderwise/infras/kafka"
	"wanderwise/infras/otel"
	"wanderwise/internal/domains/booking/model"
	"wanderwise/internal/domains/booking/model/dto"
	"wanderwise/internal/domains/booking/repository"
	notifModel "wanderwise/internal/domains/notification/model"
	userModel "wanderwise/internal/domains/user/model"
	userRepo "wanderwise/internal/domains/user/repository"
	"wanderwise/shared"
	"wanderwise/shared/cache"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/failure"
	"wanderwise/shared/refcode"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Booking
	userRepo userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	kafka    kafka.Client
}

func New(repo repository.Booking, userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// The owner's name and email are read once here and snapshotted onto the
	// booking, so later profile edits never rewrite travel history.
	owner, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if owner.ID == "" {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	code, err := refcode.GenerateUnique(ctx, refcode.PrefixBooking, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.Exist(ctx, s.filterByCode(candidate))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate booking code")

		return res, fmt.Errorf("failed to generate booking code: %w", err)
	}

	booking, err := req.ToModel(owner, code)
	if err != nil {
		log.Error().Err(err).Msg("failed to build booking request")

		return res, failure.InternalError(err) // nolint:wrapcheck
	}

	notification := notifModel.New(
		booking.UserEmail,
		"Booking Request Submitted",
		fmt.Sprintf("Your %s booking request (%s) was sent for admin approval.", booking.Destination, booking.Code),
		notifModel.TypeBooking,
	)

	if err = s.repo.CreateWithEvents(ctx, booking, []notifModel.Notification{notification}); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	s.publishEvent(ctx, dto.NewBookingEvent(dto.EventBookingCreated, booking))

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == "" {
		req.SortBy = model.FieldRequestedAt
		req.SortDir = gDto.SortDirDesc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	// Non-admin callers only ever see their own bookings. The response is
	// indistinguishable from a missing record on purpose.
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if role != constant.RoleAdmin && booking.UserID != userID {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	target := model.Status(req.Status)

	if !target.Valid() {
		return failure.BadRequestFromString(fmt.Sprintf("invalid status: %s", req.Status)) // nolint:wrapcheck
	}

	if !target.AdminAssignable() {
		return failure.BadRequestFromString("status PENDING_PAYMENT is reserved for payment settlement") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := shared.TransformFields(struct {
		Status string  `db:"status"`
		Note   *string `db:"note"`
	}{Status: target.String(), Note: req.Note}, user)

	var notifications []notifModel.Notification

	// Travelers are only told about actual transitions, not admin re-saves.
	if booking.Status != target {
		notifications = append(notifications, statusNotification(booking, target, req.Note))
	}

	if err = s.repo.UpdateWithEvents(ctx, updatedFields, filter, notifications); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = target
	booking.Note = req.Note

	s.publishEvent(ctx, dto.NewBookingEvent(dto.EventBookingStatusChanged, booking))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if role != constant.RoleAdmin && booking.UserID != userID {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.publishEvent(ctx, dto.NewBookingEvent(dto.EventBookingDeleted, booking))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event dto.BookingEvent) {
	topic := s.cfg.External.Kafka.BookingEventTopic
	if topic == "" {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: event.BookingID, Value: event}

		if err := s.kafka.SendMessages(c, topic, message); err != nil {
			log.Error().Err(err).Str("type", event.Type).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) filterByCode(code string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Operator: gDto.FilterOperatorEq,
				Value:    code,
				Table:    model.TableName,
			},
		},
	}
}

func statusNotification(booking model.BookingRequest, target model.Status, note *string) notifModel.Notification {
	var title, body string

	switch target {
	case model.StatusApproved:
		title = "Booking Approved"
		body = fmt.Sprintf("Your %s booking (%s) has been approved.", booking.Destination, booking.Code)
	case model.StatusRejected:
		title = "Booking Rejected"
		body = fmt.Sprintf("Your %s booking (%s) was rejected.", booking.Destination, booking.Code)

		if note != nil && *note != "" {
			body = fmt.Sprintf("%s Note: %s", body, *note)
		}
	default:
		title = "Booking Status Updated"
		body = fmt.Sprintf("Your %s booking (%s) status is now %s.", booking.Destination, booking.Code, target)
	}

	return notifModel.New(booking.UserEmail, title, body, notifModel.TypeBooking)
}
