package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"wanderwise/config"
	"wanderwise/infras/kafka"
	"wanderwise/infras/otel"
	bookingModel "wanderwise/internal/domains/booking/model"
	bookingDto "wanderwise/internal/domains/booking/model/dto"
	bookingRepo "wanderwise/internal/domains/booking/repository"
	notifModel "wanderwise/internal/domains/notification/model"
	"wanderwise/internal/domains/payment/model"
	"wanderwise/internal/domains/payment/model/dto"
	"wanderwise/internal/domains/payment/repository"
	"wanderwise/shared"
	"wanderwise/shared/cache"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/failure"
	gModel "wanderwise/shared/model"
	"wanderwise/shared/refcode"
	"wanderwise/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllPayment = "payment:gets"
	cacheCountPayment  = "payment:count"

	// Settling a payment moves the booking, so its cached reads go stale too.
	cacheBookingPrefix = "booking:"

	cardDigitsMin = 12
	cardDigitsMax = 19
)

type Payment interface {
	Settle(ctx context.Context, req dto.SettlePaymentRequest) (dto.PaymentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetPaymentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	kafka       kafka.Client
}

func New(repo repository.Payment, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		kafka:       kafka,
	}
}

// Settle validates and records a payment against a booking awaiting payment.
// Preconditions are checked in a fixed order: booking existence, ownership,
// booking state, then payment method details.
func (s *serviceImpl) Settle(ctx context.Context, req dto.SettlePaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Settle")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != userID {
		return res, failure.Forbidden("you do not own this booking") // nolint:wrapcheck
	}

	if !booking.Status.Settleable() {
		return res, failure.BadRequestFromString("booking is not awaiting payment") // nolint:wrapcheck
	}

	details, err := validateMethod(req)
	if err != nil {
		return res, err
	}

	code, err := refcode.GenerateUnique(ctx, refcode.PrefixPayment, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.Exist(ctx, s.filterByCode(candidate))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate payment code")

		return res, fmt.Errorf("failed to generate payment code: %w", err)
	}

	now := timezone.Now()

	payment := model.PaymentRecord{
		ID:              uuid.NewString(),
		Code:            code,
		BookingRecordID: booking.ID,
		BookingCode:     booking.Code,
		UserID:          userID,
		TravelerName:    booking.TravelerName,
		TravelerEmail:   booking.TravelerEmail,
		Amount:          booking.TotalAmount,
		Currency:        booking.Currency,
		Method:          req.Method,
		Status:          model.StatusSuccess,
		CardHolderName:  details.cardHolderName,
		CardLast4:       details.cardLast4,
		UpiID:           details.upiID,
		BankReference:   details.bankReference,
		PaidAt:          now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}

	// Receipt first, then the approval hand-off, so the traveler's feed
	// reads in workflow order.
	notifications := []notifModel.Notification{
		notifModel.New(
			booking.UserEmail,
			"Payment Successful",
			fmt.Sprintf("Your payment (%s) of %s %.2f for booking %s was received.", code, payment.Currency, payment.Amount, booking.Code),
			notifModel.TypePayment,
		),
		notifModel.New(
			booking.UserEmail,
			"Booking Submitted for Approval",
			fmt.Sprintf("Your %s booking (%s) was submitted for admin approval.", booking.Destination, booking.Code),
			notifModel.TypeBooking,
		),
	}

	if err = s.repo.Settle(ctx, payment, notifications); err != nil {
		if errors.Is(err, repository.ErrBookingNotSettleable) {
			return res, failure.BadRequestFromString("booking is not awaiting payment") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to settle payment")

		return res, fmt.Errorf("failed to settle payment: %w", err)
	}

	res.FromModel(payment)

	booking.Status = bookingModel.StatusPending
	s.publishEvent(ctx, bookingDto.NewBookingEvent(bookingDto.EventBookingSettled, booking))

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPayment)
		shared.InvalidateCaches(c, s.cache, cacheCountPayment)
		shared.InvalidateCaches(c, s.cache, cacheBookingPrefix)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == "" {
		req.SortBy = model.FieldPaidAt
		req.SortDir = gDto.SortDirDesc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetPaymentsResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()

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

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event bookingDto.BookingEvent) {
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

// methodDetails carries the storable subset of the submitted payment details.
type methodDetails struct {
	cardHolderName *string
	cardLast4      *string
	upiID          *string
	bankReference  *string
}

// validateMethod checks the method-specific details and returns what may be
// stored. Full card numbers never leave this function, only the last four
// digits do.
func validateMethod(req dto.SettlePaymentRequest) (methodDetails, error) {
	switch req.Method {
	case model.MethodCard:
		holder := strings.TrimSpace(req.CardHolderName)
		if holder == "" {
			return methodDetails{}, failure.BadRequestFromString("card holder name is required") // nolint:wrapcheck
		}

		// Only the digits count; separators and any other characters are
		// stripped before the length check.
		digits := strings.Map(func(r rune) rune {
			if r < '0' || r > '9' {
				return -1
			}

			return r
		}, req.CardNumber)

		if len(digits) < cardDigitsMin || len(digits) > cardDigitsMax {
			return methodDetails{}, failure.BadRequestFromString("card number must be 12 to 19 digits") // nolint:wrapcheck
		}

		last4 := digits[len(digits)-4:]

		return methodDetails{cardHolderName: &holder, cardLast4: &last4}, nil
	case model.MethodUpi:
		upi := strings.TrimSpace(req.UpiID)

		at := strings.Index(upi, "@")
		if at <= 0 || at != strings.LastIndex(upi, "@") || at == len(upi)-1 {
			return methodDetails{}, failure.BadRequestFromString("upi id must contain exactly one @ separating handle and provider") // nolint:wrapcheck
		}

		return methodDetails{upiID: &upi}, nil
	case model.MethodBankTransfer:
		details := methodDetails{}

		if ref := strings.TrimSpace(req.BankReference); ref != "" {
			details.bankReference = &ref
		}

		return details, nil
	default:
		return methodDetails{}, failure.BadRequestFromString(fmt.Sprintf("unsupported payment method: %s", req.Method)) // nolint:wrapcheck
	}
}
