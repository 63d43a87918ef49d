package trip

import (
	"net/http"
	"wanderwise/infras/otel"
	"wanderwise/internal/domains/trip/service"
	"wanderwise/shared/constant"
	"wanderwise/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Trip
	otel    otel.Otel
}

func New(service service.Trip, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/trips", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMyTrips)
		routerGroup.Get("/{id}", handler.GetTripDetail)
	})
}

// GetMyTrips lists the authenticated traveler's trips.
// @Summary Get my trips
// @Description List the caller's paid bookings as trips with computed end dates and timeline status.
// @Tags Trip
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetTripsResponse] "List of trips"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trips [get]
// @Security BearerAuth
func (handler *Handler) GetMyTrips(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyTrips")
	defer scope.End()

	trips, err := handler.service.GetMine(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get trips")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Trips retrieved successfully")

	response.WithJSON(w, http.StatusOK, trips)
}

// GetTripDetail resolves one trip with its day by day itinerary.
// @Summary Get a trip's detail
// @Description Retrieve a single trip with its itinerary. Only the booking's owner can see it.
// @Tags Trip
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.TripDetail] "Trip detail"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trips/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTripDetail(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTripDetail")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	trip, err := handler.service.GetDetail(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get trip detail")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Trip detail retrieved successfully")

	response.WithJSON(w, http.StatusOK, trip)
}
