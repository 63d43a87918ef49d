package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"wanderwise/infras/otel"
	"wanderwise/infras/postgres"
	"wanderwise/internal/domains/booking/model"
	notifModel "wanderwise/internal/domains/notification/model"
	notifRepo "wanderwise/internal/domains/notification/repository"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/logger"
	gRepo "wanderwise/shared/repository"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingRequest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingRequest, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CreateWithEvents(ctx context.Context, booking model.BookingRequest, notifications []notifModel.Notification) error
	UpdateWithEvents(ctx context.Context, req map[string]any, filter gDto.FilterGroup, notifications []notifModel.Notification) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.BookingRequest]
	db        *postgres.Connection
	otel      otel.Otel
	notifRepo notifRepo.Notification
}

func New(db *postgres.Connection, otel otel.Otel, notifRepo notifRepo.Notification) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BookingRequest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
		notifRepo:  notifRepo,
	}
}

// CreateWithEvents inserts the booking and its notifications in one
// transaction so a failed notification write never leaves an orphan booking.
func (repo *repositoryImpl) CreateWithEvents(ctx context.Context, booking model.BookingRequest, notifications []notifModel.Notification) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateWithEvents")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		return err //nolint:wrapcheck
	}

	if len(notifications) > 0 {
		if err = repo.notifRepo.InsertBulkTx(ctx, tx, notifications); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateWithEvents applies the field changes and inserts the notifications in
// one transaction.
func (repo *repositoryImpl) UpdateWithEvents(ctx context.Context, req map[string]any, filter gDto.FilterGroup, notifications []notifModel.Notification) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateWithEvents")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	if err = repo.UpdateTx(ctx, tx, req, filter); err != nil {
		return err //nolint:wrapcheck
	}

	if len(notifications) > 0 {
		if err = repo.notifRepo.InsertBulkTx(ctx, tx, notifications); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
