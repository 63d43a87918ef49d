package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"wanderwise/config"
	"wanderwise/infras/otel/mocks"
	userMocks "wanderwise/internal/domains/user/mocks"
	"wanderwise/internal/domains/user/model"
	"wanderwise/internal/domains/user/model/dto"
	"wanderwise/internal/domains/user/service"
	"wanderwise/shared/cache"
	cacheMocks "wanderwise/shared/cache/mocks"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/failure"
	gModel "wanderwise/shared/model"
)

type userFixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newUserFixture(t *testing.T) userFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return userFixture{
		repo:  mockRepo,
		cache: mockCache,
		svc:   service.New(mockRepo, cfg, mockCache, mockOtel),
	}
}

func adminCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func storedUser() model.User {
	return model.User{
		ID:                "user-1",
		Name:              "Asha Travels",
		Email:             "asha@example.com",
		Password:          "hashed",
		Role:              constant.RoleUser,
		Status:            model.StatusActive,
		PreferredCurrency: constant.DefaultCurrency,
		Metadata: gModel.Metadata{
			CreatedBy:  "admin-1",
			ModifiedBy: "admin-1",
		},
	}
}

func TestUserService_Create(t *testing.T) {
	t.Run("successful creation applies defaults", func(t *testing.T) {
		f := newUserFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, "asha@example.com", user.Email)
				assert.Equal(t, constant.RoleUser, user.Role)
				assert.Equal(t, model.StatusActive, user.Status)
				assert.Equal(t, constant.DefaultCurrency, user.PreferredCurrency)
				assert.NotEqual(t, "secret-password", user.Password)

				return nil
			})

		err := f.svc.Create(adminCtx(), dto.CreateUserRequest{
			Name:     "Asha Travels",
			Email:    "Asha@Example.com",
			Password: "secret-password",
		})
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("taken email returns conflict", func(t *testing.T) {
		f := newUserFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := f.svc.Create(adminCtx(), dto.CreateUserRequest{
			Name:     "Asha Travels",
			Email:    "asha@example.com",
			Password: "secret-password",
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache miss falls back to repository", func(t *testing.T) {
		f := newUserFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedUser(), nil)

		res, err := f.svc.Get(adminCtx(), "user-1")
		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.ID)
		assert.Equal(t, "asha@example.com", res.Email)
		assert.Nil(t, res.LastLogin)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		f := newUserFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := f.svc.Get(adminCtx(), "ghost")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	t.Run("empty request is rejected", func(t *testing.T) {
		f := newUserFixture(t)

		err := f.svc.Update(adminCtx(), dto.UpdateUserRequest{}, "user-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("successful update writes changed fields", func(t *testing.T) {
		f := newUserFixture(t)
		status := model.StatusInactive

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				got, ok := fields[model.FieldStatus].(*string)
				assert.True(t, ok)
				assert.Equal(t, model.StatusInactive, *got)

				return nil
			})

		err := f.svc.Update(adminCtx(), dto.UpdateUserRequest{Status: &status}, "user-1")
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		f := newUserFixture(t)
		name := "Renamed"

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Update(adminCtx(), dto.UpdateUserRequest{Name: &name}, "ghost")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		f := newUserFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Delete(adminCtx(), "user-1")
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		f := newUserFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Delete(adminCtx(), "ghost")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
