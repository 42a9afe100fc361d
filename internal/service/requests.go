package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campushub/asset-manager/internal/logging"
	"github.com/campushub/asset-manager/internal/models"
	"github.com/campushub/asset-manager/internal/repo"
)

// RequestService is the reservation workflow: the state machine that couples
// request status transitions to asset availability.
//
// Two gaps of the original design are kept on purpose and covered by tests:
// approving several requests for the same asset is allowed, and releasing any
// one of them marks the asset AVAILABLE even if another is still APPROVED;
// deleting an APPROVED request does not free its asset. The request/asset
// writes are also not wrapped in a cross-row transaction.
type RequestService struct {
	Repo *repo.GormRepo
}

func (s *RequestService) Requests(ctx context.Context) ([]models.Request, error) {
	return s.Repo.GetRequests(ctx)
}

func (s *RequestService) Request(ctx context.Context, id uint) (*models.Request, error) {
	req, err := s.Repo.GetRequest(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: request %d", ErrNotFound, id)
		}
		return nil, err
	}
	return req, nil
}

func (s *RequestService) RequestsByStatus(ctx context.Context, status string) ([]models.Request, error) {
	return s.Repo.GetRequestsByStatus(ctx, status)
}

func (s *RequestService) RequestsByUser(ctx context.Context, userID uint) ([]models.Request, error) {
	return s.Repo.GetRequestsByUserID(ctx, userID)
}

// CreateRequest starts a request in PENDING with the date stamped server-side.
// Both referenced rows must exist; the ids alone being present is not enough.
func (s *RequestService) CreateRequest(ctx context.Context, userID, assetID uint, comments string) (*models.Request, error) {
	l := logging.FromContext(ctx).With("svc", "requests.create")

	if userID == 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if assetID == 0 {
		return nil, fmt.Errorf("%w: asset id is required", ErrValidation)
	}

	if _, err := s.Repo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	if _, err := s.Repo.GetAsset(ctx, assetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: asset %d", ErrNotFound, assetID)
		}
		return nil, err
	}

	req := models.Request{
		UserID:      userID,
		AssetID:     assetID,
		Status:      models.RequestPending,
		Comments:    comments,
		RequestDate: time.Now(),
	}
	if err := s.Repo.CreateRequest(ctx, &req); err != nil {
		l.Error("create_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("request_created", "request_id", req.ID, "user_id", userID, "asset_id", assetID)
	return s.Request(ctx, req.ID)
}

// UpdateStatus applies a transition. Moving to APPROVED reserves the asset;
// moving off APPROVED (judged by the previous status only) releases it. A nil
// comments pointer leaves the stored comments alone.
func (s *RequestService) UpdateStatus(ctx context.Context, id uint, status string, comments *string) (*models.Request, error) {
	l := logging.FromContext(ctx).With("svc", "requests.update_status", "request_id", id)

	req, err := s.Repo.GetRequest(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: request %d", ErrNotFound, id)
		}
		return nil, err
	}

	previous := req.Status
	req.Status = status
	if comments != nil {
		req.Comments = *comments
	}

	approvedNow := strings.EqualFold(status, models.RequestApproved)
	approvedBefore := strings.EqualFold(previous, models.RequestApproved)

	if approvedNow {
		if err := s.setAssetStatus(ctx, req.AssetID, models.AssetReserved); err != nil {
			return nil, err
		}
	}
	if approvedBefore && !approvedNow {
		if err := s.setAssetStatus(ctx, req.AssetID, models.AssetAvailable); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.SaveRequest(ctx, req); err != nil {
		l.Error("update_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("status_updated", "from", previous, "to", status)
	return s.Request(ctx, id)
}

// DeleteRequest removes the request only. Any RESERVED state it caused stays
// on the asset.
func (s *RequestService) DeleteRequest(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteRequest(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: request %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *RequestService) setAssetStatus(ctx context.Context, assetID uint, status string) error {
	asset, err := s.Repo.GetAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: asset %d", ErrNotFound, assetID)
		}
		return err
	}
	asset.Status = status
	return s.Repo.SaveAsset(ctx, asset)
}
