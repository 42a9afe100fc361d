package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campushub/asset-manager/internal/hash"
	"github.com/campushub/asset-manager/internal/logging"
	"github.com/campushub/asset-manager/internal/models"
	"github.com/campushub/asset-manager/internal/repo"
	"github.com/campushub/asset-manager/internal/token"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *token.Service
}

// Register creates a new user. The username must not already exist (exact,
// case-sensitive match) and the role must parse against the closed role set.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	parsedRole := models.RoleStudent
	if role != "" {
		var err error
		parsedRole, err = models.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	if _, err := s.Repo.GetUserByUsername(ctx, username); err == nil {
		l.Warn("register_failed", "status", 409, "reason", "username taken", "username", username)
		return nil, fmt.Errorf("%w: username already exists: %s", ErrConflict, username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         parsedRole,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		l.Error("register_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("register_successful", "user_id", user.ID)
	return &user, nil
}

// Login collapses every authentication failure into ErrInvalidCredentials so
// the caller cannot tell a missing user from a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401)
		return "", ErrInvalidCredentials
	}

	tok, err := s.Tokens.Issue(user.Username, user.Role, user.ID)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return "", err
	}

	l.Info("login_successful", "user_id", user.ID)
	return tok, nil
}
