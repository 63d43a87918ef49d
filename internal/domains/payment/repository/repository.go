package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"wanderwise/infras/otel"
	"wanderwise/infras/postgres"
	bookingModel "wanderwise/internal/domains/booking/model"
	notifModel "wanderwise/internal/domains/notification/model"
	notifRepo "wanderwise/internal/domains/notification/repository"
	"wanderwise/internal/domains/payment/model"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/logger"
	gRepo "wanderwise/shared/repository"
	"wanderwise/shared/timezone"
)

// ErrBookingNotSettleable is returned when the booking left PENDING_PAYMENT
// between the service's precondition check and the settle transaction.
var ErrBookingNotSettleable = errors.New("booking is not awaiting payment")

type Payment interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PaymentRecord, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PaymentRecord, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Settle(ctx context.Context, payment model.PaymentRecord, notifications []notifModel.Notification) error
}

type repositoryImpl struct {
	gRepo.Repository[model.PaymentRecord]
	db        *postgres.Connection
	otel      otel.Otel
	notifRepo notifRepo.Notification
}

func New(db *postgres.Connection, otel otel.Otel, notifRepo notifRepo.Notification) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PaymentRecord](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
		notifRepo:  notifRepo,
	}
}

// Settle records the payment, flips the booking from PENDING_PAYMENT to
// PENDING, and stores the notifications, all in one transaction. The booking
// update is guarded by its current status so concurrent settles of the same
// booking cannot both succeed.
func (repo *repositoryImpl) Settle(ctx context.Context, payment model.PaymentRecord, notifications []notifModel.Notification) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.Settle")
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

	query := fmt.Sprintf(
		"UPDATE %s SET %s = :next_status, %s = :modified_at, %s = :modified_by WHERE %s = :booking_id AND %s = :current_status",
		bookingModel.TableName,
		bookingModel.FieldStatus,
		constant.FieldModifiedAt,
		constant.FieldModifiedBy,
		bookingModel.FieldID,
		bookingModel.FieldStatus,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, map[string]any{
		"next_status":    bookingModel.StatusPending.String(),
		"current_status": bookingModel.StatusPendingPayment.String(),
		"booking_id":     payment.BookingRecordID,
		"modified_at":    timezone.Now(),
		"modified_by":    payment.UserID,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if rows == 0 {
		return ErrBookingNotSettleable
	}

	if err = repo.InsertTx(ctx, tx, payment); err != nil {
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
