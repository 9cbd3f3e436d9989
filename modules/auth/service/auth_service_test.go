package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"trainhub-api/core/authz"
	"trainhub-api/core/cache"
	"trainhub-api/core/config"
	"trainhub-api/core/constants"
	coreEntity "trainhub-api/core/entity"
	"trainhub-api/core/errors"
	"trainhub-api/core/params"
	"trainhub-api/core/utils"
	"trainhub-api/modules/auth/dto"
	"trainhub-api/modules/auth/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	users       map[uuid.UUID]*entity.User
	centerAssoc map[uuid.UUID]uuid.UUID
	groupCenter map[uuid.UUID]uuid.UUID
}

func newMemUsers() *memUsers {
	return &memUsers{
		users:       map[uuid.UUID]*entity.User{},
		centerAssoc: map[uuid.UUID]uuid.UUID{},
		groupCenter: map[uuid.UUID]uuid.UUID{},
	}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return &pq.Error{Code: "23505", Constraint: "users_email_key"}
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uuid.UUID, hashed string) error {
	m.users[id].Password = hashed
	return nil
}

func (m *memUsers) Deactivate(_ context.Context, id uuid.UUID) error {
	m.users[id].IsActive = false
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (m *memUsers) GetByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, identifier) || (u.PhoneNumber != nil && *u.PhoneNumber == identifier) {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memUsers) List(_ context.Context, filter entity.UserFilter, p params.QueryParams) (*entity.PaginatedUsers, error) {
	var items []entity.User
	for _, u := range m.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		items = append(items, *u)
	}
	return coreEntity.NewPagination(items, len(items), p.PageNumber, p.PageSize), nil
}

func (m *memUsers) GetCenterAssociation(_ context.Context, centerID uuid.UUID) (*uuid.UUID, error) {
	if a, ok := m.centerAssoc[centerID]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *memUsers) GetGroupCenter(_ context.Context, groupID uuid.UUID) (*uuid.UUID, error) {
	if c, ok := m.groupCenter[groupID]; ok {
		return &c, nil
	}
	return nil, nil
}

func setupConfig() {
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "test-secret", AccessTTL: time.Minute, RefreshTTL: time.Hour}})
}

func seedUser(t *testing.T, repo *memUsers, email, password string, role authz.Role, active bool) *entity.User {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := &entity.User{Email: email, Password: hashed, FirstName: "Test", Role: role, IsActive: active}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	setupConfig()
	ctx := context.Background()

	t.Run("issues tokens carrying the role", func(t *testing.T) {
		repo := newMemUsers()
		center := uuid.New()
		u := seedUser(t, repo, "teacher@example.com", "secret123", authz.RoleTeacher, true)
		repo.users[u.ID].CenterID = &center

		svc := NewAuthService(repo, cache.NewMemoryCache())
		tokens, appErr := svc.Login(ctx, &dto.LoginRequest{Identifier: "Teacher@Example.com", Password: "secret123"})
		require.Nil(t, appErr)
		assert.Equal(t, "Bearer", tokens.TokenType)

		claims, err := utils.ValidateAndParseToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, authz.RoleTeacher, claims.Role)
		assert.Equal(t, &center, claims.CenterID)
		assert.Equal(t, constants.ScopeTokenAccess, claims.Scope)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		repo := newMemUsers()
		seedUser(t, repo, "a@example.com", "secret123", authz.RoleStudent, true)
		svc := NewAuthService(repo, cache.NewMemoryCache())

		_, appErr := svc.Login(ctx, &dto.LoginRequest{Identifier: "a@example.com", Password: "nope"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
		assert.Equal(t, "invalid credentials", appErr.Message)

		_, appErr = svc.Login(ctx, &dto.LoginRequest{Identifier: "ghost@example.com", Password: "nope"})
		require.NotNil(t, appErr)
		assert.Equal(t, "invalid credentials", appErr.Message)
	})

	t.Run("inactive user is rejected", func(t *testing.T) {
		repo := newMemUsers()
		seedUser(t, repo, "gone@example.com", "secret123", authz.RoleStudent, false)
		svc := NewAuthService(repo, cache.NewMemoryCache())

		_, appErr := svc.Login(ctx, &dto.LoginRequest{Identifier: "gone@example.com", Password: "secret123"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
	})

	t.Run("blocks after too many failures", func(t *testing.T) {
		repo := newMemUsers()
		seedUser(t, repo, "b@example.com", "secret123", authz.RoleStudent, true)
		svc := NewAuthService(repo, cache.NewMemoryCache())

		for i := 0; i < constants.MaxLoginAttempts; i++ {
			_, appErr := svc.Login(ctx, &dto.LoginRequest{Identifier: "b@example.com", Password: "wrong"})
			require.NotNil(t, appErr)
		}
		_, appErr := svc.Login(ctx, &dto.LoginRequest{Identifier: "b@example.com", Password: "secret123"})
		require.NotNil(t, appErr)
		assert.Contains(t, appErr.Message, "too many failed attempts")
	})

	t.Run("success resets the failure count", func(t *testing.T) {
		repo := newMemUsers()
		seedUser(t, repo, "c@example.com", "secret123", authz.RoleStudent, true)
		svc := NewAuthService(repo, cache.NewMemoryCache())

		for i := 0; i < constants.MaxLoginAttempts-1; i++ {
			_, _ = svc.Login(ctx, &dto.LoginRequest{Identifier: "c@example.com", Password: "wrong"})
		}
		_, appErr := svc.Login(ctx, &dto.LoginRequest{Identifier: "c@example.com", Password: "secret123"})
		require.Nil(t, appErr)
		_, appErr = svc.Login(ctx, &dto.LoginRequest{Identifier: "c@example.com", Password: "wrong"})
		require.NotNil(t, appErr)
		assert.Equal(t, "invalid credentials", appErr.Message)
	})
}

func TestRefreshToken(t *testing.T) {
	setupConfig()
	ctx := context.Background()
	repo := newMemUsers()
	seedUser(t, repo, "r@example.com", "secret123", authz.RoleStudent, true)
	svc := NewAuthService(repo, cache.NewMemoryCache())

	tokens, appErr := svc.Login(ctx, &dto.LoginRequest{Identifier: "r@example.com", Password: "secret123"})
	require.Nil(t, appErr)

	_, appErr = svc.RefreshToken(ctx, tokens.AccessToken)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidTokenFormat, appErr.Code)

	renewed, appErr := svc.RefreshToken(ctx, tokens.RefreshToken)
	require.Nil(t, appErr)
	assert.NotEmpty(t, renewed.AccessToken)

	_, appErr = svc.RefreshToken(ctx, tokens.RefreshToken)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	blacklist := cache.NewMemoryCache()
	svc := NewAuthService(newMemUsers(), blacklist)

	require.Nil(t, svc.Logout(ctx, "access", "refresh"))
	for _, token := range []string{"access", "refresh"} {
		revoked, err := blacklist.IsTokenBlacklisted(ctx, token)
		require.NoError(t, err)
		assert.True(t, revoked, token)
	}
	require.Nil(t, svc.Logout(ctx, "other", ""))
}

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()
	repo := newMemUsers()
	association, center, otherCenter, group := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	repo.centerAssoc[center] = association
	repo.centerAssoc[otherCenter] = association
	repo.groupCenter[group] = otherCenter
	svc := NewUserService(repo)

	base := func(email, role string) *dto.CreateUserRequest {
		return &dto.CreateUserRequest{Email: email, Password: "secret123", FirstName: "Ann", Role: role}
	}

	t.Run("teacher requires a center", func(t *testing.T) {
		_, appErr := svc.Create(ctx, base("t1@example.com", "teacher"))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("center users get the association of their center", func(t *testing.T) {
		req := base("t2@example.com", "teacher")
		req.CenterID = center.String()
		user, appErr := svc.Create(ctx, req)
		require.Nil(t, appErr)
		assert.Equal(t, &association, user.AssociationID)
		assert.True(t, user.IsActive)

		stored := repo.users[user.ID]
		assert.True(t, utils.ComparePassword(stored.Password, "secret123"))
	})

	t.Run("unknown center", func(t *testing.T) {
		req := base("t3@example.com", "center_staff")
		req.CenterID = uuid.NewString()
		_, appErr := svc.Create(ctx, req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrNotFound, appErr.Code)
	})

	t.Run("student group must be in the student's center", func(t *testing.T) {
		req := base("s1@example.com", "student")
		req.CenterID = center.String()
		req.GroupID = group.String()
		_, appErr := svc.Create(ctx, req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

		req.CenterID = otherCenter.String()
		user, appErr := svc.Create(ctx, req)
		require.Nil(t, appErr)
		assert.Equal(t, &group, user.GroupID)
	})

	t.Run("admin has no org scope", func(t *testing.T) {
		req := base("admin2@example.com", "admin")
		req.CenterID = center.String()
		user, appErr := svc.Create(ctx, req)
		require.Nil(t, appErr)
		assert.Nil(t, user.CenterID)
		assert.Nil(t, user.AssociationID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := base("t2@example.com", "teacher")
		req.CenterID = center.String()
		_, appErr := svc.Create(ctx, req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
	})
}

func TestUserServiceDeactivate(t *testing.T) {
	ctx := context.Background()
	repo := newMemUsers()
	admin := seedUser(t, repo, "admin@example.com", "secret123", authz.RoleAdmin, true)
	other := seedUser(t, repo, "x@example.com", "secret123", authz.RoleStudent, true)
	svc := NewUserService(repo)
	actor := authz.Identity{UserID: admin.ID, Role: authz.RoleAdmin}

	appErr := svc.Deactivate(ctx, actor, admin.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	require.Nil(t, svc.Deactivate(ctx, actor, other.ID))
	assert.False(t, repo.users[other.ID].IsActive)

	appErr = svc.Deactivate(ctx, actor, uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newMemUsers()
	svc := NewUserService(repo)

	require.NoError(t, svc.SeedAdmin(ctx, "", "ignored"))
	assert.Empty(t, repo.users)

	require.NoError(t, svc.SeedAdmin(ctx, "Root@Example.com", "secret123"))
	require.NoError(t, svc.SeedAdmin(ctx, "root@example.com", "secret123"))
	require.Len(t, repo.users, 1)
	for _, u := range repo.users {
		assert.Equal(t, "root@example.com", u.Email)
		assert.Equal(t, authz.RoleAdmin, u.Role)
	}
}
