package service

import (
	"context"
	"fmt"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/infras/s3"
	bookingModel "agenda/internal/domains/booking/model"
	bookingRepo "agenda/internal/domains/booking/repository"
	notifModel "agenda/internal/domains/notification/model"
	notifRepo "agenda/internal/domains/notification/repository"
	professionalModel "agenda/internal/domains/professional/model"
	professionalRepo "agenda/internal/domains/professional/repository"
	"agenda/internal/domains/profile/model"
	"agenda/internal/domains/profile/model/dto"
	"agenda/internal/domains/profile/repository"
	userModel "agenda/internal/domains/user/model"
	userRepo "agenda/internal/domains/user/repository"
	"agenda/shared"
	"agenda/shared/base64"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetProfile = "profile:get"
)

type Profile interface {
	Create(ctx context.Context, req dto.CreateProfileRequest) (dto.UserProfileResponse, error)
	Get(ctx context.Context, userID string) (dto.UserProfileResponse, error)
	Update(ctx context.Context, req dto.UpdateProfileRequest, userID string) (dto.UpdateProfileResponse, error)
	Delete(ctx context.Context, userID string) (dto.DeleteProfileResponse, error)
	ListFavorites(ctx context.Context, userID string) (dto.FavoritesResponse, error)
	AddFavorite(ctx context.Context, req dto.AddFavoriteRequest) (dto.FavoritesResponse, error)
	RemoveFavorite(ctx context.Context, professionalID string) (dto.FavoritesResponse, error)
}

type serviceImpl struct {
	repo             repository.Profile
	favoriteRepo     repository.Favorite
	userRepo         userRepo.User
	bookingRepo      bookingRepo.Booking
	notificationRepo notifRepo.Notification
	professionalRepo professionalRepo.Professional
	db               postgres.TxRunner
	cfg              *config.Config
	cache            cache.RedisCache
	otel             otel.Otel
	s3               s3.S3
}

func New(
	repo repository.Profile,
	favoriteRepository repository.Favorite,
	userRepository userRepo.User,
	bookingRepository bookingRepo.Booking,
	notificationRepository notifRepo.Notification,
	professionalRepository professionalRepo.Professional,
	db postgres.TxRunner,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Profile {
	return &serviceImpl{
		repo:             repo,
		favoriteRepo:     favoriteRepository,
		userRepo:         userRepository,
		bookingRepo:      bookingRepository,
		notificationRepo: notificationRepository,
		professionalRepo: professionalRepository,
		db:               db,
		cfg:              cfg,
		cache:            cache,
		otel:             otel,
		s3:               s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateProfileRequest) (res dto.UserProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	username, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.userRepo.Get(ctx, shared.FilterByID(req.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	exists, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    req.UserID,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check if profile exists")

		return res, fmt.Errorf("failed to check if profile exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("profile already exists for the given user") // nolint:wrapcheck
	}

	var avatarURL *string

	if req.Avatar != constant.Empty {
		url, err := s.uploadAvatar(ctx, req.UserID, req.Avatar)
		if err != nil {
			return res, err
		}

		avatarURL = &url
	}

	if err = s.repo.Insert(ctx, req.ToModel(username, avatarURL)); err != nil {
		log.Error().Err(err).Msg("failed to create profile")

		return res, fmt.Errorf("failed to create profile: %w", err)
	}

	return s.buildProfileResponse(ctx, req.UserID, req.FirstName+" "+req.LastName, user.Email)
}

func (s *serviceImpl) Get(ctx context.Context, userID string) (res dto.UserProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProfile, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profile")

		return res, nil
	}

	user, profile, err := s.getUserAndProfile(ctx, userID)
	if err != nil {
		return res, err
	}

	res, err = s.buildProfileResponse(ctx, userID, profile.FirstName+" "+profile.LastName, user.Email)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile to cache")
		}
	}()

	return res, nil
}

// Update replaces the user's email, avatar and favorites. The favorites list is
// a full replacement: existing join rows are dropped and the given ones written
// in one transaction.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProfileRequest, userID string) (res dto.UpdateProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	username, _ := ctx.Value(constant.ContextKeyUserID).(string)

	profile, err := s.repo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, failure.NotFound("Profile not found for the given user ID.") // nolint:wrapcheck
	}

	_, err = s.userRepo.Update(ctx, map[string]any{
		userModel.FieldEmail:     req.Email,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update user email")

		return res, fmt.Errorf("failed to update user email: %w", err)
	}

	if req.Avatar != constant.Empty {
		url, err := s.uploadAvatar(ctx, userID, req.Avatar)
		if err != nil {
			return res, err
		}

		_, err = s.repo.Update(ctx, map[string]any{
			model.FieldAvatarURL:     url,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: username,
		}, shared.FilterByID(profile.ID, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to update profile avatar")

			return res, fmt.Errorf("failed to update profile avatar: %w", err)
		}
	}

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.favoriteRepo.DeleteTx(ctx, tx, shared.FilterByID(profile.ID, model.FavoriteFieldProfileID, model.FavoriteTableName)); err != nil {
			return err
		}

		for _, professionalID := range req.Favorites {
			favorite := model.Favorite{
				ID:             uuid.NewString(),
				ProfileID:      profile.ID,
				ProfessionalID: professionalID,
				Metadata: gModel.Metadata{
					CreatedAt:  timezone.Now(),
					ModifiedAt: timezone.Now(),
					CreatedBy:  username,
					ModifiedBy: username,
				},
			}

			if err := s.favoriteRepo.InsertTx(ctx, tx, favorite); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to replace favorites")

		return res, fmt.Errorf("failed to replace favorites: %w", err)
	}

	res.UserID = userID
	res.Email = req.Email
	res.Favorites = req.Favorites

	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheGetProfile, userID)); err != nil {
			log.Error().Err(err).Msg("failed to delete profile from cache")
		}
	}()

	return res, nil
}

// Delete removes the user and everything hanging off them: bookings,
// notifications, favorites, profiles and finally the user row, in one
// transaction. The avatar object is removed from S3 afterwards.
func (s *serviceImpl) Delete(ctx context.Context, userID string) (res dto.DeleteProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	profiles, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get profiles")

		return res, fmt.Errorf("failed to get profiles: %w", err)
	}

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.bookingRepo.DeleteTx(ctx, tx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    bookingModel.FieldUserID,
					Operator: gDto.FilterOperatorEq,
					Value:    userID,
					Table:    bookingModel.TableName,
				},
			},
		}); err != nil {
			return err
		}

		if err := s.notificationRepo.DeleteTx(ctx, tx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    notifModel.FieldUserID,
					Operator: gDto.FilterOperatorEq,
					Value:    userID,
					Table:    notifModel.TableName,
				},
			},
		}); err != nil {
			return err
		}

		for _, profile := range profiles {
			if err := s.favoriteRepo.DeleteTx(ctx, tx, shared.FilterByID(profile.ID, model.FavoriteFieldProfileID, model.FavoriteTableName)); err != nil {
				return err
			}
		}

		if err := s.repo.DeleteTx(ctx, tx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldUserID,
					Operator: gDto.FilterOperatorEq,
					Value:    userID,
					Table:    model.TableName,
				},
			},
		}); err != nil {
			return err
		}

		return s.userRepo.DeleteTx(ctx, tx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete user and related data")

		return res, fmt.Errorf("failed to delete user and related data: %w", err)
	}

	res.Message = "User and all related data have been successfully deleted."

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProfile, userID)); err != nil {
			log.Error().Err(err).Msg("failed to delete profile from cache")
		}

		bucketName := s.cfg.External.S3.BucketName

		for _, profile := range profiles {
			if profile.AvatarURL == nil {
				continue
			}

			objectName := s.s3.GetObjectNameFromURL(bucketName, *profile.AvatarURL)
			if objectName == constant.Empty {
				continue
			}

			if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
				log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete avatar from S3")
			}
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListFavorites(ctx context.Context, userID string) (res dto.FavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListFavorites")
	defer scope.End()
	defer scope.TraceIfError(err)

	rows, err := s.repo.GetFavorites(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get favorites")

		return res, fmt.Errorf("failed to get favorites: %w", err)
	}

	res.FromRows(rows)

	return res, nil
}

// AddFavorite links a professional to the current user's profile. Adding one
// that is already linked is a no-op returning the unchanged list.
func (s *serviceImpl) AddFavorite(ctx context.Context, req dto.AddFavoriteRequest) (res dto.FavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddFavorite")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	profile, err := s.repo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, failure.NotFound("Profile not found for the current user.") // nolint:wrapcheck
	}

	alreadyFavorite, err := s.favoriteRepo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FavoriteFieldProfileID,
				Operator: gDto.FilterOperatorEq,
				Value:    profile.ID,
				Table:    model.FavoriteTableName,
			},
			gDto.Filter{
				Field:    model.FavoriteFieldProfessionalID,
				Operator: gDto.FilterOperatorEq,
				Value:    req.ProfessionalID,
				Table:    model.FavoriteTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check if favorite exists")

		return res, fmt.Errorf("failed to check if favorite exists: %w", err)
	}

	if !alreadyFavorite {
		professionalExists, err := s.professionalRepo.Exist(ctx, shared.FilterByID(req.ProfessionalID, professionalModel.FieldID, professionalModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if professional exists")

			return res, fmt.Errorf("failed to check if professional exists: %w", err)
		}

		if !professionalExists {
			return res, failure.NotFound("Professional with the provided ID does not exist.") // nolint:wrapcheck
		}

		favorite := model.Favorite{
			ID:             uuid.NewString(),
			ProfileID:      profile.ID,
			ProfessionalID: req.ProfessionalID,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  userID,
				ModifiedBy: userID,
			},
		}

		if err = s.favoriteRepo.Insert(ctx, favorite); err != nil {
			log.Error().Err(err).Msg("failed to add favorite")

			return res, fmt.Errorf("failed to add favorite: %w", err)
		}
	}

	return s.ListFavorites(ctx, userID)
}

// RemoveFavorite unlinks a professional from the current user's profile.
// Removing one that is not linked returns an empty list, mirroring the
// "nothing to remove" outcome.
func (s *serviceImpl) RemoveFavorite(ctx context.Context, professionalID string) (res dto.FavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveFavorite")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	profile, err := s.repo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	favoriteFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FavoriteFieldProfileID,
				Operator: gDto.FilterOperatorEq,
				Value:    profile.ID,
				Table:    model.FavoriteTableName,
			},
			gDto.Filter{
				Field:    model.FavoriteFieldProfessionalID,
				Operator: gDto.FilterOperatorEq,
				Value:    professionalID,
				Table:    model.FavoriteTableName,
			},
		},
	}

	exists, err := s.favoriteRepo.Exist(ctx, favoriteFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if favorite exists")

		return res, fmt.Errorf("failed to check if favorite exists: %w", err)
	}

	if profile.ID == constant.Empty || !exists {
		res.Favorites = []dto.FavoriteProfessional{}

		return res, nil
	}

	if err = s.favoriteRepo.Delete(ctx, favoriteFilter); err != nil {
		log.Error().Err(err).Msg("failed to remove favorite")

		return res, fmt.Errorf("failed to remove favorite: %w", err)
	}

	return s.ListFavorites(ctx, userID)
}

func (s *serviceImpl) getUserAndProfile(ctx context.Context, userID string) (userModel.User, model.Profile, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, model.Profile{}, fmt.Errorf("failed to get user: %w", err)
	}

	profile, err := s.repo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return user, profile, fmt.Errorf("failed to get profile: %w", err)
	}

	if user.ID == constant.Empty || profile.ID == constant.Empty {
		return user, profile, failure.NotFound("User or user profile not found!") // nolint:wrapcheck
	}

	return user, profile, nil
}

func (s *serviceImpl) buildProfileResponse(ctx context.Context, userID, name, email string) (res dto.UserProfileResponse, err error) {
	bookings, err := s.repo.GetBookingOverviews(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking overviews")

		return res, fmt.Errorf("failed to get booking overviews: %w", err)
	}

	favorites, err := s.repo.GetFavorites(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get favorites")

		return res, fmt.Errorf("failed to get favorites: %w", err)
	}

	res.FromRows(userID, name, email, bookings, favorites)

	return res, nil
}

func (s *serviceImpl) uploadAvatar(ctx context.Context, userID, avatar string) (string, error) {
	data, err := base64.Decode(avatar)
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("avatar must be a base64 data URI") // nolint:wrapcheck
	}

	contentType := base64.GetContentType(avatar)

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, model.EntityName, userID, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload avatar to S3")

		return constant.Empty, fmt.Errorf("failed to upload avatar to S3: %w", err)
	}

	return url, nil
}
