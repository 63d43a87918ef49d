package tour

import (
	"net/http"
	"wanderwise/infras/otel"
	"wanderwise/internal/domains/tour/model"
	"wanderwise/internal/domains/tour/model/dto"
	"wanderwise/internal/domains/tour/service"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/validator"
	"wanderwise/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Tour
	otel    otel.Otel
}

func New(service service.Tour, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tours", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTour)
		routerGroup.Get("/", handler.GetTours)
		routerGroup.Get("/{slug}", handler.GetTourBySlug)
		routerGroup.Patch("/{id}", handler.UpdateTour)
		routerGroup.Post("/{id}/image", handler.UploadImage)
		routerGroup.Delete("/{id}", handler.DeleteTour)
	})
}

// CreateTour adds a destination to the tour catalog.
// @Summary Create a tour
// @Description Add a new destination to the tour catalog. Admin only.
// @Tags Tour
// @Accept json
// @Produce json
// @Param request body dto.CreateTourRequest true "Create Tour Request"
// @Success 201 {object} response.Message "Tour created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours [post]
// @Security BearerAuth
func (handler *Handler) CreateTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTour")
	defer scope.End()

	req := dto.CreateTourRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tour")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Tour created by user " + user)

	response.WithMessage(w, http.StatusCreated, "Tour created successfully")
}

// GetTours retrieves the tour catalog.
// @Summary Get all tours
// @Description Retrieve the tour catalog with optional destination filtering and pagination.
// @Tags Tour
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param country query string false "Filter by country"
// @Success 200 {object} response.Data[dto.GetToursResponse] "List of tours"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours [get]
func (handler *Handler) GetTours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTours")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	country := r.URL.Query().Get(model.FieldCountry)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if country != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCountry,
			Operator: gDto.FilterOperatorIEq,
			Value:    country,
			Table:    model.TableName,
		})
	}

	tours, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tours retrieved successfully")

	response.WithJSON(w, http.StatusOK, tours)
}

// GetTourBySlug retrieves a tour by its slug.
// @Summary Get a tour by slug
// @Description Retrieve a single tour using its URL slug.
// @Tags Tour
// @Accept json
// @Produce json
// @Param slug path string true "Tour slug"
// @Success 200 {object} response.Data[dto.TourResponse] "Tour details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours/{slug} [get]
func (handler *Handler) GetTourBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTourBySlug")
	defer scope.End()

	slug := chi.URLParam(r, model.FieldSlug)

	tour, err := handler.service.GetBySlug(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tour by slug")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tour retrieved successfully")

	response.WithJSON(w, http.StatusOK, tour)
}

// UpdateTour updates an existing tour by its ID.
// @Summary Update a tour
// @Description Update a tour catalog entry. Admin only.
// @Tags Tour
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Param request body dto.UpdateTourRequest true "Update Tour Request"
// @Success 200 {object} response.Message "Tour updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTour")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTourRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tour")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Tour updated by user " + user)

	response.WithMessage(w, http.StatusOK, "Tour updated successfully")
}

// UploadImage uploads a tour's cover image.
// @Summary Upload a tour image
// @Description Upload a cover image for a tour and store its public URL. Admin only.
// @Tags Tour
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Tour ID"
// @Param file formData file true "Image file to upload"
// @Success 200 {object} response.Data[string] "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours/{id}/image [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	url, err := handler.service.UploadImage(ctx, id, file, fileHeader)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload tour image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tour image uploaded successfully")

	response.WithJSON(w, http.StatusOK, url)
}

// DeleteTour deletes a tour by its ID.
// @Summary Delete a tour
// @Description Remove a tour from the catalog. Admin only.
// @Tags Tour
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} response.Message "Tour deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTour")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete tour")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Tour deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Tour deleted successfully")
}
