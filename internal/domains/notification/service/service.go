package service

import (
	"context"
	"fmt"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/internal/domains/notification/model"
	"agenda/internal/domains/notification/model/dto"
	"agenda/internal/domains/notification/repository"
	"agenda/permissions"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetNotification    = "notification:get"
	cacheGetAllNotification = "notification:gets"

	actionUpdateStatus = "notification.update_status"
)

type Notification interface {
	Create(ctx context.Context, req dto.CreateNotificationRequest) (dto.CreateNotificationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetNotificationsResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateNotificationStatusRequest, id string) (dto.UpdateNotificationStatusResponse, error)
	Delete(ctx context.Context, id string) (dto.DeleteNotificationResponse, error)
}

type serviceImpl struct {
	repo        repository.Notification
	permissions *permissions.PermissionData
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Notification, permissionData *permissions.PermissionData, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Notification {
	return &serviceImpl{
		repo:        repo,
		permissions: permissionData,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateNotificationRequest) (res dto.CreateNotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	notifications := req.ToModels(user)
	if len(notifications) == 0 {
		res.Success = false
		res.Message = "Failed to create notifications."

		return res, nil
	}

	for _, notification := range notifications {
		if err = s.repo.Insert(ctx, notification); err != nil {
			log.Error().Err(err).Msg("failed to create notification")

			return res, fmt.Errorf("failed to create notification: %w", err)
		}
	}

	res.Success = true
	res.NotificationID = notifications[0].ID
	res.Message = "Notifications created successfully."

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllNotification)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllNotification, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for notifications")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save notifications to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateNotificationStatusRequest, id string) (res dto.UpdateNotificationStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !s.permissions.IsActionAllowed(actionUpdateStatus, req.UpdaterRole) {
		return res, failure.Forbidden("The updater role does not have permission to update the notification status") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	read := req.Read != nil && *req.Read

	affected, err := s.repo.Update(ctx, map[string]any{
		model.FieldRead:          read,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update notification status")

		return res, fmt.Errorf("failed to update notification status: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound("notification not found") // nolint:wrapcheck
	}

	res.ID = id
	res.Read = read

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetNotification, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete notification from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllNotification)
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (res dto.DeleteNotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if notification exists")

		return res, fmt.Errorf("failed to check if notification exists: %w", err)
	}

	if !exist {
		res.Success = false
		res.Message = "Notification not found."

		return res, nil
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete notification")

		return res, fmt.Errorf("failed to delete notification: %w", err)
	}

	res.Success = true
	res.Message = "Notification deleted successfully."

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetNotification, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete notification from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllNotification)
	}()

	return res, nil
}
