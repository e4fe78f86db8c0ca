package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cinecritic/internal/apperr"
	"github.com/user/cinecritic/internal/model"
	"github.com/user/cinecritic/internal/service"
	"github.com/user/cinecritic/internal/service/servicetest"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates USER with hashed password", func(t *testing.T) {
		env := servicetest.NewEnv()
		svc := env.Services()

		user, err := svc.User.Register(ctx, service.RegisterRequest{
			Username: "alice",
			Email:    "Alice@Example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, model.RoleUser, user.Role)
		assert.Equal(t, env.Clock.Now(), user.CreatedAt)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.True(t, env.Deps.Hasher.Verify("password123", user.PasswordHash))
	})

	t.Run("registered user can log in", func(t *testing.T) {
		env := servicetest.NewEnv()
		svc := env.Services()

		_, err := svc.User.Register(ctx, service.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = svc.Auth.Login(ctx, "alice@example.com", "password123")
		assert.NoError(t, err)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		env := servicetest.NewEnv()
		env.SeedUser("alice", "alice@example.com", "password123", model.RoleUser)

		_, err := env.Services().User.Register(ctx, service.RegisterRequest{Username: "other", Email: "alice@example.com", Password: "password123"})
		assert.True(t, apperr.Is(err, apperr.KindConflict))
	})

	cases := []struct {
		name string
		req  service.RegisterRequest
		msg  string
	}{
		{"short password", service.RegisterRequest{Username: "alice", Email: "a@example.com", Password: "12345678"}, "Password must be longer than 8 characters"},
		{"missing password", service.RegisterRequest{Username: "alice", Email: "a@example.com"}, "Password must be longer than 8 characters"},
		{"password over bcrypt limit", service.RegisterRequest{Username: "alice", Email: "a@example.com", Password: strings.Repeat("x", 73)}, "Password too long"},
		{"multibyte password over bcrypt limit", service.RegisterRequest{Username: "alice", Email: "a@example.com", Password: strings.Repeat("密", 30)}, "Password too long"},
		{"bad email", service.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "password123"}, "Invalid email"},
		{"missing username", service.RegisterRequest{Email: "a@example.com", Password: "password123"}, "Username must be between 3 and 50 characters"},
		{"blank username", service.RegisterRequest{Username: "   ", Email: "a@example.com", Password: "password123"}, "Username must be between 3 and 50 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := servicetest.NewEnv()
			_, err := env.Services().User.Register(ctx, tc.req)
			require.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
			assert.Equal(t, tc.msg, apperr.MessageOf(err))
			assert.Equal(t, 0, env.Store.WriteCount())
		})
	}
}

func TestUserService_ChangeRole(t *testing.T) {
	ctx := context.Background()

	t.Run("admin promotes user and other fields are preserved", func(t *testing.T) {
		env := servicetest.NewEnv()
		admin := env.SeedUser("root", "root@example.com", "password123", model.RoleAdmin)
		alice := env.SeedUser("alice", "alice@example.com", "password123", model.RoleUser)
		svc := env.Services()

		updated, err := svc.User.ChangeRole(ctx, admin.ID, alice.ID, "SUPER_REVIEWER")
		require.NoError(t, err)

		assert.Equal(t, model.RoleSuperReviewer, updated.Role)
		assert.Equal(t, alice.ID, updated.ID)
		assert.Equal(t, alice.Username, updated.Username)
		assert.Equal(t, alice.Email, updated.Email)
		assert.Equal(t, alice.PasswordHash, updated.PasswordHash)
		assert.Equal(t, alice.CreatedAt, updated.CreatedAt)

		stored, err := svc.User.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RoleSuperReviewer, stored.Role)
	})

	t.Run("any transition is allowed", func(t *testing.T) {
		env := servicetest.NewEnv()
		admin := env.SeedUser("root", "root@example.com", "password123", model.RoleAdmin)
		alice := env.SeedUser("alice", "alice@example.com", "password123", model.RoleUser)
		svc := env.Services()

		for _, role := range []string{"ADMIN", "SUPER_REVIEWER", "USER", "ADMIN", "USER"} {
			updated, err := svc.User.ChangeRole(ctx, admin.ID, alice.ID, role)
			require.NoError(t, err)
			assert.Equal(t, model.Role(role), updated.Role)
		}
	})

	t.Run("non admin caller is forbidden", func(t *testing.T) {
		env := servicetest.NewEnv()
		critic := env.SeedUser("critic", "critic@example.com", "password123", model.RoleSuperReviewer)
		alice := env.SeedUser("alice", "alice@example.com", "password123", model.RoleUser)

		_, err := env.Services().User.ChangeRole(ctx, critic.ID, alice.ID, "ADMIN")
		assert.True(t, apperr.Is(err, apperr.KindForbidden))
	})

	t.Run("unknown caller is unauthorized", func(t *testing.T) {
		env := servicetest.NewEnv()
		alice := env.SeedUser("alice", "alice@example.com", "password123", model.RoleUser)

		_, err := env.Services().User.ChangeRole(ctx, uuid.New(), alice.ID, "ADMIN")
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	})

	t.Run("unknown role is a validation error", func(t *testing.T) {
		env := servicetest.NewEnv()
		admin := env.SeedUser("root", "root@example.com", "password123", model.RoleAdmin)
		alice := env.SeedUser("alice", "alice@example.com", "password123", model.RoleUser)

		for _, role := range []string{"MODERATOR", "admin", ""} {
			_, err := env.Services().User.ChangeRole(ctx, admin.ID, alice.ID, role)
			assert.True(t, apperr.Is(err, apperr.KindValidation), "role %q", role)
		}
	})

	t.Run("missing target is not found", func(t *testing.T) {
		env := servicetest.NewEnv()
		admin := env.SeedUser("root", "root@example.com", "password123", model.RoleAdmin)

		_, err := env.Services().User.ChangeRole(ctx, admin.ID, uuid.New(), "ADMIN")
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	env := servicetest.NewEnv()
	admin := env.SeedUser("root", "root@example.com", "password123", model.RoleAdmin)
	alice := env.SeedUser("alice", "alice@example.com", "password123", model.RoleUser)
	svc := env.Services()

	users, err := svc.User.List(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.User.List(ctx, alice.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestUserService_FindByID(t *testing.T) {
	ctx := context.Background()
	env := servicetest.NewEnv()
	alice := env.SeedUser("alice", "alice@example.com", "password123", model.RoleUser)
	svc := env.Services()

	got, err := svc.User.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	_, err = svc.User.FindByID(ctx, uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUserService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates admin when missing", func(t *testing.T) {
		env := servicetest.NewEnv()
		svc := env.Services()

		admin, err := svc.User.EnsureAdmin(ctx, "root", "root@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, admin.Role)

		again, err := svc.User.EnsureAdmin(ctx, "root", "root@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, again.ID)
	})

	t.Run("promotes existing account", func(t *testing.T) {
		env := servicetest.NewEnv()
		alice := env.SeedUser("alice", "alice@example.com", "password123", model.RoleUser)

		admin, err := env.Services().User.EnsureAdmin(ctx, "ignored", "alice@example.com", "ignored-password")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, admin.ID)
		assert.True(t, admin.IsAdmin())
	})
}
