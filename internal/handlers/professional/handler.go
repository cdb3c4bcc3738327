package professional

import (
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/professional/model"
	"agenda/internal/domains/professional/model/dto"
	"agenda/internal/domains/professional/service"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Professional
	otel    otel.Otel
}

func New(service service.Professional, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/professionals", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProfessional)
		routerGroup.Get("/", handler.GetProfessionals)
		routerGroup.Get("/{id}", handler.GetProfessionalByID)
		routerGroup.Put("/{id}", handler.UpdateProfessional)
		routerGroup.Delete("/{id}", handler.DeleteProfessional)
	})
}

// CreateProfessional registers a new professional.
// @Summary Create a new professional
// @Description Register a professional with a unique email and a specialty.
// @Tags Professional
// @Accept json
// @Produce json
// @Param request body dto.CreateProfessionalRequest true "Create Professional Request"
// @Success 201 {object} response.Data[dto.ProfessionalResponse] "Created professional"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/professionals [post]
// @Security BearerAuth
func (handler *Handler) CreateProfessional(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProfessional")
	defer scope.End()

	req := dto.CreateProfessionalRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create professional")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Professional created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetProfessionals retrieves all professionals with optional filtering.
// @Summary Get all professionals
// @Description Retrieve professionals with optional specialty filtering and pagination.
// @Tags Professional
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param specialty query string false "Filter by specialty"
// @Success 200 {object} response.Data[dto.GetProfessionalsResponse] "List of professionals"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/professionals [get]
func (handler *Handler) GetProfessionals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfessionals")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	specialty := r.URL.Query().Get(constant.RequestParamSpecialty)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if specialty != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSpecialty,
			Operator: gDto.FilterOperatorEq,
			Value:    specialty,
			Table:    model.TableName,
		})
	}

	professionals, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get professionals")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Professionals retrieved successfully")

	response.WithJSON(w, http.StatusOK, professionals)
}

// GetProfessionalByID retrieves a professional by ID.
// @Summary Get a professional by ID
// @Description Retrieve a single professional by its unique identifier.
// @Tags Professional
// @Accept json
// @Produce json
// @Param id path string true "Professional ID"
// @Success 200 {object} response.Data[dto.ProfessionalResponse] "Professional details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/professionals/{id} [get]
func (handler *Handler) GetProfessionalByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfessionalByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	professional, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get professional by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Professional retrieved successfully")

	response.WithJSON(w, http.StatusOK, professional)
}

// UpdateProfessional updates an existing professional by ID.
// @Summary Update a professional by ID
// @Description Update a professional's email and/or specialty.
// @Tags Professional
// @Accept json
// @Produce json
// @Param id path string true "Professional ID"
// @Param request body dto.UpdateProfessionalRequest true "Update Professional Request"
// @Success 200 {object} response.Message "Professional updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/professionals/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateProfessional(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfessional")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateProfessionalRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update professional")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Professional updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Professional updated successfully")
}

// DeleteProfessional deletes a professional by ID.
// @Summary Delete a professional by ID
// @Description Remove a professional by its unique identifier.
// @Tags Professional
// @Accept json
// @Produce json
// @Param id path string true "Professional ID"
// @Success 200 {object} response.Message "Professional deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/professionals/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProfessional(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProfessional")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete professional")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Professional deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Professional deleted successfully")
}
