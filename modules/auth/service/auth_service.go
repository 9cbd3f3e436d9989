package service

import (
	"context"
	"strings"
	"trainhub-api/core/cache"
	"trainhub-api/core/constants"
	"trainhub-api/core/errors"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"
	"trainhub-api/core/utils"
	"trainhub-api/modules/auth/dto"
	"trainhub-api/modules/auth/entity"
	"trainhub-api/modules/auth/mapper"

	"github.com/google/uuid"
)

type UserStore interface {
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	List(ctx context.Context, filter entity.UserFilter, params params.QueryParams) (*entity.PaginatedUsers, error)
	GetCenterAssociation(ctx context.Context, centerID uuid.UUID) (*uuid.UUID, error)
	GetGroupCenter(ctx context.Context, groupID uuid.UUID) (*uuid.UUID, error)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.TokenResponse, *errors.AppError)
	RefreshToken(ctx context.Context, token string) (*dto.TokenResponse, *errors.AppError)
	Logout(ctx context.Context, accessToken, refreshToken string) *errors.AppError
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
}

type AuthService struct {
	repo  UserStore
	cache cache.Cache
}

func NewAuthService(repo UserStore, cache cache.Cache) *AuthService {
	return &AuthService{repo: repo, cache: cache}
}

// Login authenticates a user by email or phone number and password. After
// constants.MaxLoginAttempts failures the identifier is blocked for
// constants.BlockDuration.
func (service *AuthService) Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.TokenResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	loginKey := constants.RedisKeyLoginAttempt + strings.ToLower(strings.TrimSpace(requestData.Identifier))

	blocked, err := service.cache.IsLoginBlocked(ctx, loginKey)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get login attempt", err)
	}
	if blocked {
		if errExpire := service.cache.Expire(ctx, loginKey, constants.BlockDuration); errExpire != nil {
			logger.Error("AuthService:Login:Expire:Error:", errExpire)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to expire login attempt", errExpire)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "too many failed attempts, try again later", nil)
	}

	user, err := service.repo.GetByIdentifier(ctx, strings.TrimSpace(requestData.Identifier))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user by identifier", err)
	}

	if user == nil || !user.IsActive || !utils.ComparePassword(user.Password, requestData.Password) {
		if errIncrement := service.cache.IncrementLoginAttempt(ctx, loginKey); errIncrement != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt:Error:", errIncrement)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to increment login attempt", errIncrement)
		}
		if user != nil && !user.IsActive {
			return nil, errors.NewAppError(errors.ErrUnauthorized, "user not active", nil)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	tokens, appErr := issueTokens(user)
	if appErr != nil {
		return nil, appErr
	}

	if errDel := service.cache.Del(ctx, loginKey); errDel != nil {
		logger.Error("AuthService:Login:Del:Error:", errDel)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to reset login attempt", errDel)
	}
	return tokens, nil
}

// RefreshToken exchanges a refresh token for a new pair. The used refresh
// token is revoked.
func (service *AuthService) RefreshToken(ctx context.Context, token string) (*dto.TokenResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	isBlacklisted, err := service.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Error("AuthService:RefreshToken:IsTokenBlacklisted:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check token", err)
	}
	if isBlacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token is blacklisted", nil)
	}

	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		if err == utils.ErrTokenExpired {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", nil)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "failed to parse token", nil)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "refresh token required", nil)
	}

	user, err := service.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil || !user.IsActive {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user not active", nil)
	}

	tokens, appErr := issueTokens(user)
	if appErr != nil {
		return nil, appErr
	}

	if errAdd := service.cache.AddToTokenBlacklist(ctx, token); errAdd != nil {
		logger.Error("AuthService:RefreshToken:AddToBlacklist:Error:", errAdd)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to add refresh token to blacklist", errAdd)
	}
	return tokens, nil
}

func (service *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) *errors.AppError {
	for _, token := range []string{accessToken, refreshToken} {
		if token == "" {
			continue
		}
		if err := service.cache.AddToTokenBlacklist(ctx, token); err != nil {
			logger.Error("AuthService:Logout:AddToBlacklist:Error:", err)
			return errors.NewAppError(errors.ErrInternalServer, "failed to add token to blacklist", err)
		}
	}
	return nil
}

func (service *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	user, err := service.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	result := mapper.ToUserResponse(user)
	return &result, nil
}

func issueTokens(user *entity.User) (*dto.TokenResponse, *errors.AppError) {
	accessToken, err := utils.GenerateToken(user.Subject(), constants.ScopeTokenAccess)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}
	refreshToken, err := utils.GenerateToken(user.Subject(), constants.ScopeTokenRefresh)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate refresh token", err)
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, nil
}
