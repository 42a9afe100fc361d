package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campushub/asset-manager/internal/logging"
	"github.com/campushub/asset-manager/internal/models"
	"github.com/campushub/asset-manager/internal/repo"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) Users(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetUsers(ctx)
}

func (s *UserService) User(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser refuses to remove a user that is still referenced by requests,
// so the weak Request→User reference never dangles.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "users.delete", "user_id", id)

	n, err := s.Repo.CountRequestsByUserID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		l.Warn("delete_blocked", "status", 409, "requests", n)
		return fmt.Errorf("%w: cannot delete user %d: %d request(s) still reference this user, delete or reassign them first", ErrConflict, id, n)
	}

	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return err
	}

	l.Info("user_deleted")
	return nil
}
