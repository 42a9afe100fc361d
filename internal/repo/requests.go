package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campushub/asset-manager/internal/models"
)

// Writes omit the User/Asset associations: requests only hold foreign keys and
// must never cascade into the referenced rows.
func (r *GormRepo) CreateRequest(ctx context.Context, req *models.Request) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(req).Error
}

func (r *GormRepo) GetRequests(ctx context.Context) ([]models.Request, error) {
	var reqs []models.Request
	if err := r.DB.WithContext(ctx).
		Preload("User").Preload("Asset").
		Order("id ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *GormRepo) GetRequest(ctx context.Context, id uint) (*models.Request, error) {
	var req models.Request
	if err := r.DB.WithContext(ctx).
		Preload("User").Preload("Asset").
		First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *GormRepo) GetRequestsByStatus(ctx context.Context, status string) ([]models.Request, error) {
	var reqs []models.Request
	if err := r.DB.WithContext(ctx).
		Preload("User").Preload("Asset").
		Where("UPPER(status) = UPPER(?)", status).
		Order("id ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *GormRepo) GetRequestsByUserID(ctx context.Context, userID uint) ([]models.Request, error) {
	var reqs []models.Request
	if err := r.DB.WithContext(ctx).
		Preload("User").Preload("Asset").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *GormRepo) CountRequestsByUserID(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Request{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *GormRepo) SaveRequest(ctx context.Context, req *models.Request) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(req).Error
}

func (r *GormRepo) DeleteRequest(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Request{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
