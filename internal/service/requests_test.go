package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/asset-manager/internal/models"
)

func TestRequestService_Create(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &RequestService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice", models.RoleStudent)
	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	req, err := svc.CreateRequest(ctx, user.ID, asset.ID, "for the lecture hall")
	require.NoError(t, err)

	assert.Equal(t, models.RequestPending, req.Status)
	assert.WithinDuration(t, time.Now(), req.RequestDate, 2*time.Second)
	assert.Equal(t, user.ID, req.UserID)
	assert.Equal(t, asset.ID, req.AssetID)
	assert.Equal(t, "alice", req.User.Username)
	assert.Equal(t, "projector", req.Asset.Name)
}

func TestRequestService_Create_MissingIDs(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &RequestService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice", models.RoleStudent)
	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	_, err := svc.CreateRequest(ctx, 0, asset.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateRequest(ctx, user.ID, 0, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequestService_Create_UnknownReferences(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &RequestService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice", models.RoleStudent)
	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	_, err := svc.CreateRequest(ctx, user.ID+99, asset.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateRequest(ctx, user.ID, asset.ID+99, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestService_ApproveReservesAsset(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &RequestService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice", models.RoleStudent)
	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	req, err := svc.CreateRequest(ctx, user.ID, asset.ID, "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, req.ID, "APPROVED", nil)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", updated.Status)

	got, err := r.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetReserved, got.Status)

	// Moving off APPROVED releases the asset again.
	updated, err = svc.UpdateStatus(ctx, req.ID, "REJECTED", nil)
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", updated.Status)

	got, err = r.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetAvailable, got.Status)
}

func TestRequestService_ApproveIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &RequestService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice", models.RoleStudent)
	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	req, err := svc.CreateRequest(ctx, user.ID, asset.ID, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, req.ID, "approved", nil)
	require.NoError(t, err)

	got, err := r.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetReserved, got.Status)
}

// The workflow does not enforce single-claimant exclusivity: releasing one of
// two approved requests frees the asset even though the other still holds it.
// This documents the behavior rather than fixing it.
func TestRequestService_NonExclusiveApprovalGap(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &RequestService{Repo: r}
	ctx := context.Background()

	alice := seedUser(t, r, "alice", models.RoleStudent)
	bob := seedUser(t, r, "bob", models.RoleStudent)
	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	r1, err := svc.CreateRequest(ctx, alice.ID, asset.ID, "")
	require.NoError(t, err)
	r2, err := svc.CreateRequest(ctx, bob.ID, asset.ID, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, r1.ID, "APPROVED", nil)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, r2.ID, "APPROVED", nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, r1.ID, "REJECTED", nil)
	require.NoError(t, err)

	got, err := r.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetAvailable, got.Status)

	stillApproved, err := svc.Request(ctx, r2.ID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", stillApproved.Status)
}

// Deleting an approved request leaves the asset RESERVED; the release fires
// only on a status transition away from APPROVED.
func TestRequestService_DeleteDoesNotReleaseAsset(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &RequestService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice", models.RoleStudent)
	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	req, err := svc.CreateRequest(ctx, user.ID, asset.ID, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, req.ID, "APPROVED", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRequest(ctx, req.ID))

	got, err := r.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetReserved, got.Status)

	_, err = svc.Request(ctx, req.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestService_UpdateStatus_Comments(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &RequestService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice", models.RoleStudent)
	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	req, err := svc.CreateRequest(ctx, user.ID, asset.ID, "original comment")
	require.NoError(t, err)

	// A nil comments pointer leaves the stored comments untouched.
	updated, err := svc.UpdateStatus(ctx, req.ID, "APPROVED", nil)
	require.NoError(t, err)
	assert.Equal(t, "original comment", updated.Comments)

	newComment := "picked up at the front desk"
	updated, err = svc.UpdateStatus(ctx, req.ID, "APPROVED", &newComment)
	require.NoError(t, err)
	assert.Equal(t, newComment, updated.Comments)
}

func TestRequestService_UpdateStatus_NotFound(t *testing.T) {
	t.Parallel()

	svc := &RequestService{Repo: newTestRepo(t)}
	_, err := svc.UpdateStatus(context.Background(), 12345, "APPROVED", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestService_QueriesByStatusAndUser(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &RequestService{Repo: r}
	ctx := context.Background()

	alice := seedUser(t, r, "alice", models.RoleStudent)
	bob := seedUser(t, r, "bob", models.RoleStudent)
	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	r1, err := svc.CreateRequest(ctx, alice.ID, asset.ID, "")
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, bob.ID, asset.ID, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, r1.ID, "APPROVED", nil)
	require.NoError(t, err)

	// Status filter is case-insensitive.
	lower, err := svc.RequestsByStatus(ctx, "approved")
	require.NoError(t, err)
	upper, err := svc.RequestsByStatus(ctx, "APPROVED")
	require.NoError(t, err)
	require.Len(t, lower, 1)
	assert.Equal(t, upper, lower)
	assert.Equal(t, r1.ID, lower[0].ID)

	mine, err := svc.RequestsByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].UserID)
}
