package schedule

import (
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/schedule/model/dto"
	"agenda/internal/domains/schedule/service"
	"agenda/shared/constant"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/schedules", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSchedule)
		routerGroup.Get("/", handler.GetSchedules)
		routerGroup.Put("/{id}", handler.UpdateSchedule)
		routerGroup.Delete("/{id}", handler.DeleteSchedule)
	})

	router.Get("/availability", handler.GetAvailability)
	router.Get("/availability/check", handler.CheckAvailability)
	router.Get("/professionals/{id}/availability", handler.GetProfessionalAvailability)
}

// CreateSchedule creates a new slot for a professional.
// @Summary Create a new schedule
// @Description Create a slot for a professional, rejecting overlaps with existing active slots.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Create Schedule Request"
// @Success 201 {object} response.Data[dto.CreateScheduleResponse] "Created schedule"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules [post]
// @Security BearerAuth
func (handler *Handler) CreateSchedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSchedule")
	defer scope.End()

	req := dto.CreateScheduleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create schedule")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Schedule created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetSchedules lists the slots of a professional together with booking status.
// @Summary Get schedules
// @Description Retrieve all slots of a professional, each with its most relevant booking status.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param professionalId query string true "Professional ID"
// @Success 200 {object} response.Data[dto.GetSchedulesResponse] "List of schedules"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules [get]
func (handler *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedules")
	defer scope.End()

	professionalID := r.URL.Query().Get(constant.RequestParamProfessionalID)

	schedules, err := handler.service.GetSchedules(ctx, professionalID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedules")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedules retrieved successfully")

	response.WithJSON(w, http.StatusOK, schedules)
}

// UpdateSchedule updates the interval of an existing slot.
// @Summary Update a schedule by ID
// @Description Update a slot's interval and notify the professional.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "Update Schedule Request"
// @Success 200 {object} response.Data[dto.UpdateScheduleResponse] "Update outcome"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSchedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateScheduleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update schedule")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Schedule updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteSchedule soft deletes a slot and cancels its bookings.
// @Summary Delete a schedule by ID
// @Description Deactivate a slot, cancel every booking on it and notify the affected users.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param requesterRole query string true "Role of the requester"
// @Success 200 {object} response.Data[dto.DeleteScheduleResponse] "Deletion outcome"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSchedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	requesterRole := r.URL.Query().Get(constant.RequestParamRequesterRole)

	res, err := handler.service.Delete(ctx, id, requesterRole)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete schedule")

		response.WithError(w, err)

		return
	}

	if !res.Success {
		status := http.StatusForbidden
		if res.Message == dto.MessageScheduleNotFound {
			status = http.StatusNotFound
		}

		response.WithJSON(w, status, res)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Schedule deleted successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// GetAvailability aggregates active slots per professional.
// @Summary Get availability overview
// @Description List every professional with its active slots and per-slot booking counts.
// @Tags Schedule
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetAvailabilityResponse] "Availability per professional"
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	availability, err := handler.service.GetAvailability(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// CheckAvailability classifies availability across active slots matching the filters.
// @Summary Check availability
// @Description Classify availability as available, busy or unavailable for the given filters.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param professionalId query string false "Filter by professional ID"
// @Param specialty query string false "Filter by specialty"
// @Param startDate query string false "Slots starting at or after this instant (RFC3339)"
// @Param endDate query string false "Slots ending at or before this instant (RFC3339)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability classification"
// @Failure 500 {object} response.Error
// @Router /v1/availability/check [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	query := service.CheckAvailabilityQuery{
		ProfessionalID: r.URL.Query().Get(constant.RequestParamProfessionalID),
		Specialty:      r.URL.Query().Get(constant.RequestParamSpecialty),
		StartDate:      r.URL.Query().Get(constant.RequestParamStartDate),
		EndDate:        r.URL.Query().Get(constant.RequestParamEndDate),
	}

	availability, err := handler.service.CheckAvailability(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability checked successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// GetProfessionalAvailability classifies a professional's availability right now.
// @Summary Get a professional's point-in-time availability
// @Description Classify a professional as available or busy based on slots containing the current instant.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Professional ID"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability classification"
// @Failure 500 {object} response.Error
// @Router /v1/professionals/{id}/availability [get]
func (handler *Handler) GetProfessionalAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfessionalAvailability")
	defer scope.End()

	professionalID := chi.URLParam(r, constant.RequestParamID)

	availability, err := handler.service.GetProfessionalAvailability(ctx, professionalID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get professional availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Professional availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}
