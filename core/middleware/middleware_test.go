package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"trainhub-api/core/authz"
	"trainhub-api/core/config"
	"trainhub-api/core/constants"
	"trainhub-api/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlacklist map[string]bool

func (f fakeBlacklist) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	return f[token], nil
}

func issue(t *testing.T, role authz.Role, scope string) string {
	t.Helper()
	token, err := utils.GenerateToken(utils.TokenSubject{UserID: uuid.New(), Role: role}, scope)
	require.NoError(t, err)
	return token
}

func TestAuthAndRequire(t *testing.T) {
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "secret", AccessTTL: time.Minute, RefreshTTL: time.Hour}})

	teacherToken := issue(t, authz.RoleTeacher, constants.ScopeTokenAccess)
	staffToken := issue(t, authz.RoleCenterStaff, constants.ScopeTokenAccess)
	refreshToken := issue(t, authz.RoleCenterStaff, constants.ScopeTokenRefresh)
	revoked := issue(t, authz.RoleAdmin, constants.ScopeTokenAccess)

	mw := NewMiddleware(fakeBlacklist{revoked: true})
	e := echo.New()
	e.POST("/schedules", func(c echo.Context) error {
		id, ok := Identity(c)
		require.True(t, ok)
		return c.String(http.StatusOK, string(id.Role))
	}, mw.AuthMiddleware(), mw.Require(authz.ManageSchedule))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refreshToken, http.StatusUnauthorized},
		{"revoked token", "Bearer " + revoked, http.StatusUnauthorized},
		{"teacher forbidden", "Bearer " + teacherToken, http.StatusForbidden},
		{"center staff allowed", "Bearer " + staffToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/schedules", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
