package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/asset-manager/internal/models"
	"github.com/campushub/asset-manager/internal/token"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:   newTestRepo(t),
		Tokens: &token.Service{Secret: []byte("test-jwt-secret"), TTL: time.Hour},
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "secret", "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NotEqual(t, "secret", user.PasswordHash)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret", "STUDENT")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other", "STUDENT")
	assert.ErrorIs(t, err, ErrConflict)

	// Exactly one row survives the second attempt.
	users, err := svc.Repo.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		role     string
	}{
		{name: "empty username", username: "", password: "secret", role: "STUDENT"},
		{name: "empty password", username: "bob", password: "", role: "STUDENT"},
		{name: "unknown role", username: "bob", password: "secret", role: "SUPERUSER"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password, tt.role)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_DefaultsToStudent(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	user, err := svc.Register(context.Background(), "carol", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "secret", "ADMIN")
	require.NoError(t, err)

	tok, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	claims, err := svc.Tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_Login_FailuresAreUniform(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret", "STUDENT")
	require.NoError(t, err)

	// Wrong password and unknown user come back as the same error.
	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
