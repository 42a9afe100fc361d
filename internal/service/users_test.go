package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/asset-manager/internal/models"
)

func TestUserService_DeleteUser_BlockedByRequests(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	users := &UserService{Repo: r}
	requests := &RequestService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice", models.RoleStudent)
	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	req, err := requests.CreateRequest(ctx, user.ID, asset.ID, "")
	require.NoError(t, err)

	err = users.DeleteUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Still there.
	_, err = users.User(ctx, user.ID)
	require.NoError(t, err)

	// Once the request is gone the delete goes through.
	require.NoError(t, requests.DeleteRequest(ctx, req.ID))
	require.NoError(t, users.DeleteUser(ctx, user.ID))

	_, err = users.User(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	t.Parallel()

	users := &UserService{Repo: newTestRepo(t)}
	err := users.DeleteUser(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_Lookups(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	users := &UserService{Repo: r}
	ctx := context.Background()

	seedUser(t, r, "alice", models.RoleAdmin)

	byName, err := users.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, byName.Role)

	// Username lookup is exact and case-sensitive.
	_, err = users.UserByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := users.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
