package profile

import (
	"context"
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/profile/model/dto"
	"agenda/internal/domains/profile/service"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Profile
	otel    otel.Otel
}

func New(service service.Profile, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/user/profile", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProfile)
		routerGroup.Get("/", handler.GetMyProfile)
		routerGroup.Get("/{userId}", handler.GetProfile)
		routerGroup.Put("/{userId}", handler.UpdateProfile)
		routerGroup.Delete("/{userId}", handler.DeleteProfile)
	})

	router.Route("/user/favorites", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.ListFavorites)
		routerGroup.Post("/", handler.AddFavorite)
		routerGroup.Delete("/{professionalId}", handler.RemoveFavorite)
	})
}

// CreateProfile creates a profile for an existing user.
// @Summary Create a user profile
// @Description Create a profile for a user, optionally uploading a base64 avatar.
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.CreateProfileRequest true "Create Profile Request"
// @Success 201 {object} response.Data[dto.UserProfileResponse] "Created profile"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/user/profile [post]
// @Security BearerAuth
func (handler *Handler) CreateProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProfile")
	defer scope.End()

	req := dto.CreateProfileRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create profile")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Profile created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMyProfile retrieves the profile of the authenticated user.
// @Summary Get my profile
// @Description Retrieve the current user's profile with booked appointments and favorites.
// @Tags Profile
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.UserProfileResponse] "Profile details"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/user/profile [get]
// @Security BearerAuth
func (handler *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyProfile")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	handler.getProfile(ctx, w, scope, userID)
}

// GetProfile retrieves a user's profile by user ID.
// @Summary Get a profile by user ID
// @Description Retrieve a user's profile with booked appointments and favorites.
// @Tags Profile
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Data[dto.UserProfileResponse] "Profile details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/user/profile/{userId} [get]
// @Security BearerAuth
func (handler *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfile")
	defer scope.End()

	userID := chi.URLParam(r, constant.RequestParamUserID)

	handler.getProfile(ctx, w, scope, userID)
}

func (handler *Handler) getProfile(ctx context.Context, w http.ResponseWriter, scope otel.Scope, userID string) {
	profile, err := handler.service.Get(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Profile retrieved successfully")

	response.WithJSON(w, http.StatusOK, profile)
}

// UpdateProfile updates a user's profile.
// @Summary Update a profile by user ID
// @Description Update a user's email, avatar and favorite professionals.
// @Tags Profile
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body dto.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} response.Data[dto.UpdateProfileResponse] "Updated profile"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/user/profile/{userId} [put]
// @Security BearerAuth
func (handler *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfile")
	defer scope.End()

	userID := chi.URLParam(r, constant.RequestParamUserID)

	req := dto.UpdateProfileRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update profile")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Profile updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteProfile deletes a user together with all dependent data.
// @Summary Delete a profile by user ID
// @Description Remove the user's profile, favorites, bookings, notifications and account.
// @Tags Profile
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Data[dto.DeleteProfileResponse] "Deletion outcome"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/user/profile/{userId} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProfile")
	defer scope.End()

	userID := chi.URLParam(r, constant.RequestParamUserID)

	res, err := handler.service.Delete(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete profile")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Profile deleted successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// ListFavorites lists a user's favorite professionals.
// @Summary List favorite professionals
// @Description Retrieve the favorite professionals of the given user, defaulting to the current user.
// @Tags Profile
// @Accept json
// @Produce json
// @Param userId query string false "User ID (defaults to the authenticated user)"
// @Success 200 {object} response.Data[dto.FavoritesResponse] "List of favorites"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/user/favorites [get]
// @Security BearerAuth
func (handler *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListFavorites")
	defer scope.End()

	userID := r.URL.Query().Get(constant.RequestParamUserID)
	if userID == "" {
		ctxUserID, ok := ctx.Value(constant.ContextKeyUserID).(string)
		if !ok || ctxUserID == "" {
			log.Error().Msg("failed to get user ID from context")
			response.WithError(w, failure.Unauthorized("unauthorized"))

			return
		}

		userID = ctxUserID
	}

	favorites, err := handler.service.ListFavorites(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list favorites")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Favorites retrieved successfully")

	response.WithJSON(w, http.StatusOK, favorites)
}

// AddFavorite links a professional to the current user's favorites.
// @Summary Add a favorite professional
// @Description Add a professional to the current user's favorites; duplicates are a no-op.
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.AddFavoriteRequest true "Add Favorite Request"
// @Success 200 {object} response.Data[dto.FavoritesResponse] "Updated list of favorites"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/user/favorites [post]
// @Security BearerAuth
func (handler *Handler) AddFavorite(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddFavorite")
	defer scope.End()

	req := dto.AddFavoriteRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.AddFavorite(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add favorite")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Favorite added successfully by user " + user)

	response.WithJSON(writer, http.StatusOK, res)
}

// RemoveFavorite unlinks a professional from the current user's favorites.
// @Summary Remove a favorite professional
// @Description Remove a professional from the current user's favorites; missing links yield an empty list.
// @Tags Profile
// @Accept json
// @Produce json
// @Param professionalId path string true "Professional ID"
// @Success 200 {object} response.Data[dto.FavoritesResponse] "Updated list of favorites"
// @Failure 500 {object} response.Error
// @Router /v1/user/favorites/{professionalId} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveFavorite")
	defer scope.End()

	professionalID := chi.URLParam(r, constant.RequestParamProfessionalID)

	res, err := handler.service.RemoveFavorite(ctx, professionalID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove favorite")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Favorite removed successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
