package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campushub/asset-manager/internal/models"
	"github.com/campushub/asset-manager/internal/repo"
)

type AssetService struct {
	Repo *repo.GormRepo
}

// AssetUpdate carries the only fields a PUT is allowed to overwrite. The id
// and any relations stay untouched whatever the payload says.
type AssetUpdate struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

func (s *AssetService) Assets(ctx context.Context) ([]models.Asset, error) {
	return s.Repo.GetAssets(ctx)
}

func (s *AssetService) Asset(ctx context.Context, id uint) (*models.Asset, error) {
	asset, err := s.Repo.GetAsset(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: asset %d", ErrNotFound, id)
		}
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) AssetsByStatus(ctx context.Context, status string) ([]models.Asset, error) {
	return s.Repo.GetAssetsByStatus(ctx, status)
}

func (s *AssetService) CreateAsset(ctx context.Context, asset *models.Asset) error {
	return s.Repo.CreateAsset(ctx, asset)
}

func (s *AssetService) UpdateAsset(ctx context.Context, id uint, upd AssetUpdate) (*models.Asset, error) {
	asset, err := s.Repo.GetAsset(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: asset %d", ErrNotFound, id)
		}
		return nil, err
	}

	asset.Name = upd.Name
	asset.Type = upd.Type
	asset.Quantity = upd.Quantity
	asset.Status = upd.Status

	if err := s.Repo.SaveAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) DeleteAsset(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteAsset(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: asset %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
