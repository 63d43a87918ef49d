package service

import (
	"context"
	"fmt"
	"wanderwise/config"
	"wanderwise/infras/otel"
	"wanderwise/internal/domains/notification/model"
	"wanderwise/internal/domains/notification/model/dto"
	"wanderwise/internal/domains/notification/repository"
	"wanderwise/shared"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/failure"

	"github.com/rs/zerolog/log"
)

type Notification interface {
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetNotificationsResponse, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Notification
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Notification, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	filter := s.filterByEmail(email)

	if req.SortBy == "" {
		req.SortBy = model.FieldCreatedAt
		req.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count notifications")

		return res, fmt.Errorf("failed to count notifications: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) MarkRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	filter := s.filterByIDAndEmail(id, email)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if notification exists")

		return fmt.Errorf("failed to check if notification exists: %w", err)
	}

	if !exist {
		return failure.NotFound("notification not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, map[string]any{model.FieldRead: true}, filter); err != nil {
		log.Error().Err(err).Msg("failed to mark notification as read")

		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	return nil
}

func (s *serviceImpl) MarkAllRead(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkAllRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	filter := s.filterByEmail(email)
	filter.Operator = gDto.FilterGroupOperatorAnd
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldRead,
		Operator: gDto.FilterOperatorEq,
		Value:    false,
		Table:    model.TableName,
	})

	if err = s.repo.Update(ctx, map[string]any{model.FieldRead: true}, filter); err != nil {
		log.Error().Err(err).Msg("failed to mark all notifications as read")

		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	filter := s.filterByIDAndEmail(id, email)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if notification exists")

		return fmt.Errorf("failed to check if notification exists: %w", err)
	}

	if !exist {
		return failure.NotFound("notification not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete notification")

		return fmt.Errorf("failed to delete notification: %w", err)
	}

	return nil
}

func (s *serviceImpl) filterByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserEmail,
				Operator: gDto.FilterOperatorIEq,
				Value:    email,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) filterByIDAndEmail(id, email string) gDto.FilterGroup {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Operator = gDto.FilterGroupOperatorAnd
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldUserEmail,
		Operator: gDto.FilterOperatorIEq,
		Value:    email,
		Table:    model.TableName,
	})

	return filter
}
