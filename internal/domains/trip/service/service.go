package service

import (
	"context"
	"fmt"
	"strings"
	"wanderwise/infras/otel"
	bookingModel "wanderwise/internal/domains/booking/model"
	bookingRepo "wanderwise/internal/domains/booking/repository"
	tourModel "wanderwise/internal/domains/tour/model"
	tourService "wanderwise/internal/domains/tour/service"
	"wanderwise/internal/domains/trip/model/dto"
	"wanderwise/shared"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/failure"
	"wanderwise/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	timelineUpcoming  = "Upcoming"
	timelineCompleted = "Completed"

	fallbackImageURL = "https://images.unsplash.com/photo-1507525428034-b723cf961d3e"
)

// placeholderItinerary fills the detail view when the destination has no
// catalog entry with a day by day plan.
var placeholderItinerary = []string{
	"Arrival and hotel check-in.",
	"Guided local sightseeing.",
	"Free day for exploration and shopping.",
}

type Trip interface {
	GetMine(ctx context.Context) (dto.GetTripsResponse, error)
	GetDetail(ctx context.Context, bookingID string) (dto.TripDetail, error)
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	tours    tourService.Tour
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, tours tourService.Tour, otel otel.Otel) Trip {
	return &serviceImpl{
		bookings: bookings,
		tours:    tours,
		otel:     otel,
	}
}

// GetMine projects the caller's bookings into trips, newest first. Requests
// still awaiting payment and rejected ones are left out.
func (s *serviceImpl) GetMine(ctx context.Context) (res dto.GetTripsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	params := gDto.QueryParams{
		SortBy:  bookingModel.FieldRequestedAt,
		SortDir: gDto.SortDirDesc,
	}

	bookings, err := s.bookings.GetAll(ctx, params, s.filterByUser(userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for trips")

		return res, fmt.Errorf("failed to get bookings for trips: %w", err)
	}

	// One catalog lookup per distinct destination within the request.
	tours := make(map[string]tourModel.Tour)

	res.Trips = make([]dto.TripSummary, 0, len(bookings))

	for _, booking := range bookings {
		if !booking.Status.VisibleAsTrip() {
			continue
		}

		tour, err := s.tourFor(ctx, tours, booking.Destination, booking.Country)
		if err != nil {
			return res, err
		}

		res.Trips = append(res.Trips, buildSummary(booking, tour))
	}

	return res, nil
}

// GetDetail resolves a single trip with its itinerary. A booking that is not
// the caller's, or that is not visible as a trip, reads as missing.
func (s *serviceImpl) GetDetail(ctx context.Context, bookingID string) (res dto.TripDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDetail")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for trip")

		return res, fmt.Errorf("failed to get booking for trip: %w", err)
	}

	if booking.ID == "" || booking.UserID != userID || !booking.Status.VisibleAsTrip() {
		return res, failure.NotFound("trip not found") // nolint:wrapcheck
	}

	tour, err := s.tourFor(ctx, map[string]tourModel.Tour{}, booking.Destination, booking.Country)
	if err != nil {
		return res, err
	}

	res.TripSummary = buildSummary(booking, tour)
	res.BookingStatus = booking.Status.String()
	res.Itinerary = buildItinerary(tour)

	return res, nil
}

func (s *serviceImpl) tourFor(ctx context.Context, seen map[string]tourModel.Tour, destination, country string) (tourModel.Tour, error) {
	key := strings.ToLower(destination) + "|" + strings.ToLower(country)

	if tour, ok := seen[key]; ok {
		return tour, nil
	}

	tour, err := s.tours.FindByDestinationAndCountry(ctx, destination, country)
	if err != nil {
		log.Error().Err(err).Str("destination", destination).Msg("failed to match tour for trip")

		return tour, fmt.Errorf("failed to match tour for trip: %w", err)
	}

	seen[key] = tour

	return tour, nil
}

func (s *serviceImpl) filterByUser(userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    bookingModel.TableName,
			},
		},
	}
}

func buildSummary(booking bookingModel.BookingRequest, tour tourModel.Tour) dto.TripSummary {
	days := tripDuration(tour)
	endDate := booking.TravelDate.AddDate(0, 0, days-1)

	// Compared at date granularity: a trip ending today is still upcoming.
	status := timelineUpcoming
	if endDate.Before(timezone.Today()) {
		status = timelineCompleted
	}

	imageURL := fallbackImageURL
	if tour.ImageURL != nil && *tour.ImageURL != "" {
		imageURL = *tour.ImageURL
	}

	return dto.TripSummary{
		BookingID:     booking.ID,
		BookingCode:   booking.Code,
		Destination:   booking.Destination,
		Country:       booking.Country,
		StartDate:     timezone.Format(booking.TravelDate, constant.TravelDateFormat),
		EndDate:       timezone.Format(endDate, constant.TravelDateFormat),
		DurationDays:  days,
		TravelerCount: booking.TravelerCount,
		TotalAmount:   booking.TotalAmount,
		Currency:      booking.Currency,
		Status:        status,
		ImageURL:      imageURL,
	}
}

// tripDuration uses the matched tour's duration, or a single day without a
// catalog match.
func tripDuration(tour tourModel.Tour) int {
	if tour.ID != "" && tour.DurationDays > 0 {
		return tour.DurationDays
	}

	return 1
}

func buildItinerary(tour tourModel.Tour) []dto.ItineraryItem {
	plan := placeholderItinerary
	if tour.ID != "" && len(tour.Plan) > 0 {
		plan = tour.Plan
	}

	items := make([]dto.ItineraryItem, len(plan))
	for i, title := range plan {
		items[i] = dto.ItineraryItem{Day: i + 1, Title: title}
	}

	return items
}
