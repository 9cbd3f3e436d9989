package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"trainhub-api/core/authz"
	"trainhub-api/core/config"
	"trainhub-api/core/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TokenClaims struct {
	UserID        uuid.UUID  `json:"user_id"`
	Email         string     `json:"email"`
	Role          authz.Role `json:"role"`
	CenterID      *uuid.UUID `json:"center_id,omitempty"`
	AssociationID *uuid.UUID `json:"association_id,omitempty"`
	GroupID       *uuid.UUID `json:"group_id,omitempty"`
	Scope         string     `json:"scope"`
	jwt.RegisteredClaims
}

// Identity converts the claims of an access token into the acting identity.
func (c *TokenClaims) Identity() authz.Identity {
	return authz.Identity{
		UserID:        c.UserID,
		Role:          c.Role,
		CenterID:      c.CenterID,
		AssociationID: c.AssociationID,
		GroupID:       c.GroupID,
	}
}

// TokenSubject is what a token is issued for.
type TokenSubject struct {
	UserID        uuid.UUID
	Email         string
	Role          authz.Role
	CenterID      *uuid.UUID
	AssociationID *uuid.UUID
	GroupID       *uuid.UUID
}

func jwtSettings() (secret []byte, accessTTL, refreshTTL time.Duration) {
	cfg := config.Get()
	accessTTL, refreshTTL = cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return []byte(cfg.JWT.Secret), accessTTL, refreshTTL
}

func GenerateToken(sub TokenSubject, scope string) (string, error) {
	secret, accessTTL, refreshTTL := jwtSettings()
	ttl := accessTTL
	if scope == constants.ScopeTokenRefresh {
		ttl = refreshTTL
	}

	now := time.Now()
	claims := TokenClaims{
		UserID:        sub.UserID,
		Email:         sub.Email,
		Role:          sub.Role,
		CenterID:      sub.CenterID,
		AssociationID: sub.AssociationID,
		GroupID:       sub.GroupID,
		Scope:         scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sub.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

var ErrTokenExpired = errors.New("token expired")

func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	secret, _, _ := jwtSettings()

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("invalid role %q", claims.Role)
	}
	return claims, nil
}

func GetTokenFromHeader(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}
