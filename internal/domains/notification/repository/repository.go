package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"wanderwise/infras/otel"
	"wanderwise/infras/postgres"
	"wanderwise/internal/domains/notification/model"
	gDto "wanderwise/shared/dto"
	gRepo "wanderwise/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Notification interface {
	Insert(ctx context.Context, model model.Notification) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Notification) error
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Notification) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Notification, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Notification, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Notification]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Notification {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Notification](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Insert stores the notification if it is deliverable; otherwise it is a
// silent no-op.
func (repo *repositoryImpl) Insert(ctx context.Context, mod model.Notification) error {
	if !mod.Deliverable() {
		return nil
	}

	return repo.Repository.Insert(ctx, mod) // nolint:wrapcheck
}

// InsertBulkTx stores the deliverable notifications within the caller's
// transaction, dropping the rest.
func (repo *repositoryImpl) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Notification) error {
	deliverable := model.FilterDeliverable(models)
	if len(deliverable) == 0 {
		return nil
	}

	return repo.Repository.InsertBulkTx(ctx, sqltx, deliverable) // nolint:wrapcheck
}
