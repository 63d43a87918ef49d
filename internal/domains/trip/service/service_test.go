package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"wanderwise/infras/otel/mocks"
	bookingMocks "wanderwise/internal/domains/booking/mocks"
	bookingModel "wanderwise/internal/domains/booking/model"
	tourModel "wanderwise/internal/domains/tour/model"
	tourMocks "wanderwise/internal/domains/tour/service/mocks"
	"wanderwise/internal/domains/trip/service"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/failure"
	"wanderwise/shared/timezone"
)

type tripFixture struct {
	bookings *bookingMocks.MockBooking
	tours    *tourMocks.MockTour
	svc      service.Trip
}

func newTripFixture(t *testing.T) *tripFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &tripFixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		tours:    tourMocks.NewMockTour(ctrl),
	}

	f.svc = service.New(f.bookings, f.tours, mocks.NewOtel())

	return f
}

func tripCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "traveler@example.com")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func visibleBooking(id string, status bookingModel.Status, travelDate time.Time) bookingModel.BookingRequest {
	return bookingModel.BookingRequest{
		ID:          id,
		Code:        "BK-123456",
		UserID:      "user-1",
		UserEmail:   "traveler@example.com",
		Destination: "Bali",
		Country:     "Indonesia",
		TravelDate:  travelDate,
		TotalAmount: 3000,
		Currency:    "INR",
		Status:      status,
	}
}

func TestTripService_GetMine(t *testing.T) {
	t.Run("hides unpaid and rejected bookings", func(t *testing.T) {
		f := newTripFixture(t)

		future := timezone.Now().AddDate(0, 1, 0)

		f.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.BookingRequest{
				visibleBooking("booking-1", bookingModel.StatusApproved, future),
				visibleBooking("booking-2", bookingModel.StatusPendingPayment, future),
				visibleBooking("booking-3", bookingModel.StatusRejected, future),
				visibleBooking("booking-4", bookingModel.StatusPending, future),
			}, nil)

		// Same destination pair, so the catalog is asked once.
		f.tours.EXPECT().
			FindByDestinationAndCountry(gomock.Any(), "Bali", "Indonesia").
			Return(tourModel.Tour{}, nil).
			Times(1)

		res, err := f.svc.GetMine(tripCtx())
		assert.NoError(t, err)

		if assert.Len(t, res.Trips, 2) {
			assert.Equal(t, "booking-1", res.Trips[0].BookingID)
			assert.Equal(t, "booking-4", res.Trips[1].BookingID)
		}
	})

	t.Run("derives end date and timeline status from the matched tour", func(t *testing.T) {
		f := newTripFixture(t)

		past := timezone.Now().AddDate(0, 0, -30)
		future := timezone.Now().AddDate(0, 0, 30)

		completed := visibleBooking("booking-1", bookingModel.StatusApproved, past)
		upcoming := visibleBooking("booking-2", bookingModel.StatusApproved, future)
		upcoming.Destination = "Paris"
		upcoming.Country = "France"

		f.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.BookingRequest{completed, upcoming}, nil)

		imageURL := "https://cdn.example.com/bali.jpg"

		f.tours.EXPECT().
			FindByDestinationAndCountry(gomock.Any(), "Bali", "Indonesia").
			Return(tourModel.Tour{ID: "tour-1", DurationDays: 5, ImageURL: &imageURL}, nil)

		f.tours.EXPECT().
			FindByDestinationAndCountry(gomock.Any(), "Paris", "France").
			Return(tourModel.Tour{}, nil)

		res, err := f.svc.GetMine(tripCtx())
		assert.NoError(t, err)

		if assert.Len(t, res.Trips, 2) {
			assert.Equal(t, "Completed", res.Trips[0].Status)
			assert.Equal(t, 5, res.Trips[0].DurationDays)
			assert.Equal(t, timezone.Format(past.AddDate(0, 0, 4), constant.TravelDateFormat), res.Trips[0].EndDate)
			assert.Equal(t, imageURL, res.Trips[0].ImageURL)

			assert.Equal(t, "Upcoming", res.Trips[1].Status)
			assert.Equal(t, 1, res.Trips[1].DurationDays)
			assert.Equal(t, res.Trips[1].StartDate, res.Trips[1].EndDate)
			assert.NotEmpty(t, res.Trips[1].ImageURL)
		}
	})

	t.Run("a trip ending today is still upcoming", func(t *testing.T) {
		f := newTripFixture(t)

		// Duration 1 puts the end date on the travel date itself.
		endsToday := visibleBooking("booking-1", bookingModel.StatusApproved, timezone.Today())
		endedYesterday := visibleBooking("booking-2", bookingModel.StatusApproved, timezone.Today().AddDate(0, 0, -1))

		f.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.BookingRequest{endsToday, endedYesterday}, nil)

		f.tours.EXPECT().
			FindByDestinationAndCountry(gomock.Any(), "Bali", "Indonesia").
			Return(tourModel.Tour{}, nil).
			Times(1)

		res, err := f.svc.GetMine(tripCtx())
		assert.NoError(t, err)

		if assert.Len(t, res.Trips, 2) {
			assert.Equal(t, "Upcoming", res.Trips[0].Status)
			assert.Equal(t, "Completed", res.Trips[1].Status)
		}
	})

	t.Run("sorts newest first via the repository", func(t *testing.T) {
		f := newTripFixture(t)

		f.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.BookingRequest, error) {
				assert.Equal(t, bookingModel.FieldRequestedAt, req.SortBy)
				assert.Equal(t, gDto.SortDirDesc, req.SortDir)

				if assert.Len(t, filter.Filters, 1) {
					f, ok := filter.Filters[0].(gDto.Filter)
					if assert.True(t, ok) {
						assert.Equal(t, bookingModel.FieldUserID, f.Field)
						assert.Equal(t, "user-1", f.Value)
					}
				}

				return nil, nil
			})

		res, err := f.svc.GetMine(tripCtx())
		assert.NoError(t, err)
		assert.Empty(t, res.Trips)
	})
}

func TestTripService_GetDetail(t *testing.T) {
	t.Run("builds the itinerary from the tour plan", func(t *testing.T) {
		f := newTripFixture(t)

		booking := visibleBooking("booking-1", bookingModel.StatusApproved, timezone.Now().AddDate(0, 0, 10))

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.tours.EXPECT().
			FindByDestinationAndCountry(gomock.Any(), "Bali", "Indonesia").
			Return(tourModel.Tour{
				ID:           "tour-1",
				DurationDays: 2,
				Plan:         pq.StringArray{"Beach day.", "Temple tour."},
			}, nil)

		res, err := f.svc.GetDetail(tripCtx(), "booking-1")
		assert.NoError(t, err)
		assert.Equal(t, bookingModel.StatusApproved.String(), res.BookingStatus)

		if assert.Len(t, res.Itinerary, 2) {
			assert.Equal(t, 1, res.Itinerary[0].Day)
			assert.Equal(t, "Beach day.", res.Itinerary[0].Title)
			assert.Equal(t, 2, res.Itinerary[1].Day)
			assert.Equal(t, "Temple tour.", res.Itinerary[1].Title)
		}
	})

	t.Run("falls back to a placeholder itinerary without a catalog match", func(t *testing.T) {
		f := newTripFixture(t)

		booking := visibleBooking("booking-1", bookingModel.StatusPending, timezone.Now().AddDate(0, 0, 10))

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.tours.EXPECT().
			FindByDestinationAndCountry(gomock.Any(), "Bali", "Indonesia").
			Return(tourModel.Tour{}, nil)

		res, err := f.svc.GetDetail(tripCtx(), "booking-1")
		assert.NoError(t, err)

		if assert.Len(t, res.Itinerary, 3) {
			assert.Equal(t, "Arrival and hotel check-in.", res.Itinerary[0].Title)
			assert.Equal(t, 3, res.Itinerary[2].Day)
		}
	})

	t.Run("someone else's booking reads as missing", func(t *testing.T) {
		f := newTripFixture(t)

		booking := visibleBooking("booking-1", bookingModel.StatusApproved, timezone.Now())
		booking.UserID = "user-2"

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := f.svc.GetDetail(tripCtx(), "booking-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("an unpaid booking reads as missing", func(t *testing.T) {
		f := newTripFixture(t)

		booking := visibleBooking("booking-1", bookingModel.StatusPendingPayment, timezone.Now())

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := f.svc.GetDetail(tripCtx(), "booking-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
