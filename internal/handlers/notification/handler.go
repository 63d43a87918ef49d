package notification

import (
	"net/http"
	"wanderwise/infras/otel"
	"wanderwise/internal/domains/notification/service"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMyNotifications)
		routerGroup.Patch("/read-all", handler.MarkAllRead)
		routerGroup.Patch("/{id}/read", handler.MarkRead)
		routerGroup.Delete("/{id}", handler.DeleteNotification)
	})
}

// GetMyNotifications retrieves the authenticated traveler's notifications.
// @Summary Get my notifications
// @Description Retrieve the notifications of the currently authenticated traveler, newest first.
// @Tags Notification
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetNotificationsResponse] "List of notifications"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications [get]
// @Security BearerAuth
func (handler *Handler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyNotifications")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	notifications, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Notifications retrieved successfully")

	response.WithJSON(w, http.StatusOK, notifications)
}

// MarkRead marks a single notification as read.
// @Summary Mark a notification as read
// @Description Mark one of the caller's notifications as read.
// @Tags Notification
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Notification marked as read"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkRead")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkRead(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark notification as read")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Notification marked as read")

	response.WithMessage(w, http.StatusOK, "Notification marked as read")
}

// MarkAllRead marks every unread notification of the caller as read.
// @Summary Mark all notifications as read
// @Description Mark all of the caller's unread notifications as read.
// @Tags Notification
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Notifications marked as read"
// @Failure 500 {object} response.Error
// @Router /v1/notifications/read-all [patch]
// @Security BearerAuth
func (handler *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkAllRead")
	defer scope.End()

	if err := handler.service.MarkAllRead(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark notifications as read")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("All notifications marked as read")

	response.WithMessage(w, http.StatusOK, "Notifications marked as read")
}

// DeleteNotification deletes one of the caller's notifications.
// @Summary Delete a notification
// @Description Delete one of the caller's notifications by ID.
// @Tags Notification
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Notification deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteNotification")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete notification")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Notification deleted successfully")

	response.WithMessage(w, http.StatusOK, "Notification deleted successfully")
}
