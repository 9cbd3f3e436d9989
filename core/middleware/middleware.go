package middleware

import (
	"context"
	"time"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/controller"
	"trainhub-api/core/errors"
	"trainhub-api/core/logger"
	"trainhub-api/core/utils"

	"github.com/labstack/echo/v4"
)

// TokenBlacklist is the part of the cache the middleware depends on.
type TokenBlacklist interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type Middleware struct {
	controller.BaseController
	blacklist TokenBlacklist
	policy    authz.Policy
}

func NewMiddleware(blacklist TokenBlacklist) *Middleware {
	return &Middleware{
		BaseController: controller.NewBaseController(),
		blacklist:      blacklist,
		policy:         authz.DefaultPolicy,
	}
}

// AuthMiddleware validates the bearer access token and stores its claims
// under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if err != nil {
				return m.Unauthorized(errors.ErrMissingAuthorizationHeader, err.Error())
			}

			blacklisted, err := m.blacklist.IsTokenBlacklisted(c.Request().Context(), token)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", err)
				return m.InternalServerError(errors.ErrInternalServer, "failed to check token")
			}
			if blacklisted {
				return m.Unauthorized(errors.ErrUnauthorized, "token has been revoked")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				if err == utils.ErrTokenExpired {
					return m.Unauthorized(errors.ErrTokenExpired, "token expired")
				}
				return m.Unauthorized(errors.ErrInvalidTokenFormat, "invalid token")
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return m.Unauthorized(errors.ErrInvalidTokenFormat, "access token required")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// Require rejects identities whose role the policy table does not allow to
// perform action. It must run after AuthMiddleware.
func (m *Middleware) Require(action authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := Identity(c)
			if !ok {
				return m.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
			}
			if !m.policy.Allows(id.Role, action) {
				return m.Forbidden(errors.ErrForbidden, "role "+string(id.Role)+" may not "+string(action))
			}
			return next(c)
		}
	}
}

// Identity returns the acting identity set by AuthMiddleware.
func Identity(c echo.Context) (authz.Identity, bool) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return authz.Identity{}, false
	}
	return claims.Identity(), true
}

// RequestLogger logs one line per request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			kv := []any{
				"method", req.Method,
				"path", c.Path(),
				"uri", req.RequestURI,
				"status", res.Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
			}
			if id, ok := Identity(c); ok {
				kv = append(kv, "user_id", id.UserID.String(), "role", string(id.Role))
			}
			if res.Status >= 500 {
				logger.Error("HTTP request", kv...)
			} else {
				logger.Info("HTTP request", kv...)
			}
			return nil
		}
	}
}
