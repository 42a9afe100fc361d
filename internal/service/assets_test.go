package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/asset-manager/internal/models"
)

func TestAssetService_UpdateCopiesOnlyPayloadFields(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AssetService{Repo: r}
	ctx := context.Background()

	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	updated, err := svc.UpdateAsset(ctx, asset.ID, AssetUpdate{
		Name:     "projector-4k",
		Type:     "av",
		Quantity: 3,
		Status:   models.AssetReserved,
	})
	require.NoError(t, err)

	// The id is never taken from the payload.
	assert.Equal(t, asset.ID, updated.ID)
	assert.Equal(t, "projector-4k", updated.Name)
	assert.Equal(t, "av", updated.Type)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, models.AssetReserved, updated.Status)
}

func TestAssetService_UpdateNotFound(t *testing.T) {
	t.Parallel()

	svc := &AssetService{Repo: newTestRepo(t)}
	_, err := svc.UpdateAsset(context.Background(), 404, AssetUpdate{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssetService_ByStatusCaseInsensitive(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AssetService{Repo: r}
	ctx := context.Background()

	seedAsset(t, r, "projector", "AVAILABLE")
	seedAsset(t, r, "microscope", "available")
	seedAsset(t, r, "van", models.AssetReserved)

	lower, err := svc.AssetsByStatus(ctx, "available")
	require.NoError(t, err)
	upper, err := svc.AssetsByStatus(ctx, "AVAILABLE")
	require.NoError(t, err)

	assert.Len(t, lower, 2)
	assert.Equal(t, upper, lower)
}

func TestAssetService_Delete(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AssetService{Repo: r}
	ctx := context.Background()

	asset := seedAsset(t, r, "projector", models.AssetAvailable)

	require.NoError(t, svc.DeleteAsset(ctx, asset.ID))
	assert.ErrorIs(t, svc.DeleteAsset(ctx, asset.ID), ErrNotFound)
}
