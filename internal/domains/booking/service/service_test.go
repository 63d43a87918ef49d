package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"wanderwise/config"
	kafkaMocks "wanderwise/infras/kafka/mocks"
	"wanderwise/infras/otel/mocks"
	bookingMocks "wanderwise/internal/domains/booking/mocks"
	"wanderwise/internal/domains/booking/model"
	"wanderwise/internal/domains/booking/model/dto"
	"wanderwise/internal/domains/booking/service"
	notifModel "wanderwise/internal/domains/notification/model"
	userMocks "wanderwise/internal/domains/user/mocks"
	userModel "wanderwise/internal/domains/user/model"
	cacheMocks "wanderwise/shared/cache/mocks"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/failure"
)

type bookingFixture struct {
	repo  *bookingMocks.MockBooking
	users *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	kafka *kafkaMocks.MockClient
	svc   service.Booking
}

func newBookingFixture(t *testing.T) *bookingFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.Kafka.BookingEventTopic = "booking-events"

	f := &bookingFixture{
		repo:  bookingMocks.NewMockBooking(ctrl),
		users: userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		kafka: kafkaMocks.NewMockClient(ctrl),
	}

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.users, cfg, f.cache, mocks.NewOtel(), f.kafka)

	return f
}

func travelerCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "Traveler@Example.com")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "admin@example.com")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func bookingOwner() userModel.User {
	return userModel.User{
		ID:    "user-1",
		Name:  "Asha Rao",
		Email: "Traveler@Example.com",
	}
}

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Destination:       "Bali",
		Country:           "Indonesia",
		TravelDate:        time.Now().AddDate(0, 1, 0).Format(constant.TravelDateFormat),
		Transportation:    "Flight",
		Travelers:         []dto.Traveler{{Name: "Asha Rao", Age: 32, Gender: "F"}, {Name: "Dev Rao", Age: 34, Gender: "M"}},
		AmountPerTraveler: 1500,
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		f := newBookingFixture(t)

		f.users.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingOwner(), nil)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			CreateWithEvents(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.BookingRequest, notifications []notifModel.Notification) error {
				assert.True(t, strings.HasPrefix(booking.Code, "BK-"))
				assert.Len(t, booking.Code, 9)
				assert.Equal(t, model.StatusPendingPayment, booking.Status)
				assert.Equal(t, 2, booking.TravelerCount)
				assert.InDelta(t, 3000, booking.TotalAmount, 0.001)
				assert.Equal(t, constant.DefaultCurrency, booking.Currency)
				assert.Equal(t, "traveler@example.com", booking.UserEmail)
				assert.Equal(t, "Asha Rao", booking.TravelerName)
				assert.Equal(t, "traveler@example.com", booking.TravelerEmail)

				if assert.Len(t, notifications, 1) {
					assert.Equal(t, "Booking Request Submitted", notifications[0].Title)
					assert.Contains(t, notifications[0].Body, booking.Code)
					assert.Equal(t, notifModel.TypeBooking, notifications[0].Type)
				}

				return nil
			})

		res, err := f.svc.Create(travelerCtx(), validCreateRequest())
		assert.NoError(t, err)
		assert.Equal(t, model.StatusPendingPayment.String(), res.Status)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newBookingFixture(t)

		f.users.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := f.svc.Create(travelerCtx(), validCreateRequest())
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("code collision retries", func(t *testing.T) {
		f := newBookingFixture(t)

		f.users.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingOwner(), nil)

		gomock.InOrder(
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
		)

		f.repo.EXPECT().
			CreateWithEvents(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := f.svc.Create(travelerCtx(), validCreateRequest())
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	pending := model.BookingRequest{
		ID:          "b1",
		Code:        "BK-123456",
		UserID:      "user-1",
		UserEmail:   "traveler@example.com",
		Destination: "Bali",
		Status:      model.StatusPending,
	}

	t.Run("approve notifies the traveler", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pending, nil)

		f.repo.EXPECT().
			UpdateWithEvents(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup, notifications []notifModel.Notification) error {
				assert.Equal(t, model.StatusApproved.String(), fields[model.FieldStatus])

				if assert.Len(t, notifications, 1) {
					assert.Equal(t, "Booking Approved", notifications[0].Title)
					assert.Contains(t, notifications[0].Body, "BK-123456")
				}

				return nil
			})

		err := f.svc.UpdateStatus(adminCtx(), dto.UpdateBookingStatusRequest{Status: "APPROVED"}, "b1")
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("reject includes the admin note", func(t *testing.T) {
		f := newBookingFixture(t)

		note := "Dates unavailable"

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pending, nil)

		f.repo.EXPECT().
			UpdateWithEvents(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ map[string]any, _ gDto.FilterGroup, notifications []notifModel.Notification) error {
				if assert.Len(t, notifications, 1) {
					assert.Equal(t, "Booking Rejected", notifications[0].Title)
					assert.Contains(t, notifications[0].Body, "Note: Dates unavailable")
				}

				return nil
			})

		err := f.svc.UpdateStatus(adminCtx(), dto.UpdateBookingStatusRequest{Status: "REJECTED", Note: &note}, "b1")
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("unchanged status skips the notification", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pending, nil)

		f.repo.EXPECT().
			UpdateWithEvents(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ map[string]any, _ gDto.FilterGroup, notifications []notifModel.Notification) error {
				assert.Empty(t, notifications)

				return nil
			})

		err := f.svc.UpdateStatus(adminCtx(), dto.UpdateBookingStatusRequest{Status: "PENDING"}, "b1")
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("pending payment is not admin assignable", func(t *testing.T) {
		f := newBookingFixture(t)

		err := f.svc.UpdateStatus(adminCtx(), dto.UpdateBookingStatusRequest{Status: "PENDING_PAYMENT"}, "b1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newBookingFixture(t)

		err := f.svc.UpdateStatus(adminCtx(), dto.UpdateBookingStatusRequest{Status: "CANCELLED"}, "b1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.BookingRequest{}, nil)

		err := f.svc.UpdateStatus(adminCtx(), dto.UpdateBookingStatusRequest{Status: "APPROVED"}, "missing")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	booking := model.BookingRequest{
		ID:        "b1",
		Code:      "BK-123456",
		UserID:    "user-1",
		UserEmail: "traveler@example.com",
		Status:    model.StatusPending,
		Travelers: `[{"name":"Asha Rao"}]`,
	}

	t.Run("owner sees own booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		res, err := f.svc.Get(travelerCtx(), "b1")
		assert.NoError(t, err)
		assert.Equal(t, "BK-123456", res.Code)

		if assert.Len(t, res.Travelers, 1) {
			assert.Equal(t, "Asha Rao", res.Travelers[0].Name)
		}
	})

	t.Run("other traveler's booking reads as missing", func(t *testing.T) {
		f := newBookingFixture(t)

		other := booking
		other.UserID = "someone-else"

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(other, nil)

		_, err := f.svc.Get(travelerCtx(), "b1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		res, err := f.svc.Get(adminCtx(), "b1")
		assert.NoError(t, err)
		assert.Equal(t, "b1", res.ID)
	})
}

func TestBookingService_GetMine(t *testing.T) {
	f := newBookingFixture(t)

	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError).
		Times(2)

	f.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.BookingRequest, error) {
			assert.Equal(t, model.FieldRequestedAt, params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			if assert.Len(t, filter.Filters, 1) {
				ownFilter, ok := filter.Filters[0].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, "user-1", ownFilter.Value)
			}

			return []model.BookingRequest{{ID: "b1", UserID: "user-1"}}, nil
		})

	res, err := f.svc.GetMine(travelerCtx(), gDto.QueryParams{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 1)

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_Delete(t *testing.T) {
	booking := model.BookingRequest{ID: "b1", UserID: "user-1", Status: model.StatusPendingPayment}

	t.Run("owner deletes own booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, f.svc.Delete(travelerCtx(), "b1"))

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		f := newBookingFixture(t)

		other := booking
		other.UserID = "someone-else"

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(other, nil)

		err := f.svc.Delete(travelerCtx(), "b1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
