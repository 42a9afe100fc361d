package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campushub/asset-manager/internal/hash"
	"github.com/campushub/asset-manager/internal/models"
	"github.com/campushub/asset-manager/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Asset{}, &models.Request{}))
	return &repo.GormRepo{DB: db}
}

func seedUser(t *testing.T, r *repo.GormRepo, username string, role models.Role) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword("secret")
	require.NoError(t, err)

	user := &models.User{Username: username, PasswordHash: pwHash, Role: role}
	require.NoError(t, r.CreateUser(context.Background(), user))
	return user
}

func seedAsset(t *testing.T, r *repo.GormRepo, name, status string) *models.Asset {
	t.Helper()

	asset := &models.Asset{Name: name, Type: "equipment", Quantity: 1, Status: status}
	require.NoError(t, r.CreateAsset(context.Background(), asset))
	return asset
}
