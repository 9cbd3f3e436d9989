package auth

import (
	"context"
	"trainhub-api/core/cache"
	"trainhub-api/core/config"
	"trainhub-api/core/constants"
	"trainhub-api/core/database"
	"trainhub-api/core/logger"
	"trainhub-api/core/middleware"
	"trainhub-api/modules/auth/controller"
	"trainhub-api/modules/auth/repository"
	"trainhub-api/modules/auth/router"
	"trainhub-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, cache cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewUserRepository(db.SQLx())
	authService := service.NewAuthService(repo, cache)
	userService := service.NewUserService(repo)
	ctrl := controller.NewAuthController(authService, userService)

	seedAdmin(userService)

	router.NewAuthRouter(ctrl).Register(e, mw)
}

func seedAdmin(users *service.UserService) {
	cfg, ok := config.GetSafe()
	if !ok {
		logger.Warn("Auth:SeedAdmin:ConfigNotInitialized")
		return
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Info("Auth:SeedAdmin:Skipped", "reason", "admin credentials not configured in env")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	if err := users.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Error("Auth:SeedAdmin:Error", "error", err)
	}
}
