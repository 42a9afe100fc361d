package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/campushub/asset-manager/internal/models"
)

func (r *GormRepo) CreateAsset(ctx context.Context, a *models.Asset) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) GetAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *GormRepo) GetAsset(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := r.DB.WithContext(ctx).First(&asset, id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetAssetsByStatus filters case-insensitively; UPPER() behaves the same on
// postgres and the sqlite used in tests.
func (r *GormRepo) GetAssetsByStatus(ctx context.Context, status string) ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.DB.WithContext(ctx).
		Where("UPPER(status) = UPPER(?)", status).
		Order("id ASC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *GormRepo) SaveAsset(ctx context.Context, a *models.Asset) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *GormRepo) DeleteAsset(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Asset{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
