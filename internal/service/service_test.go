package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	return repo.New(db)
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:          newTestRepo(t),
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func createProduct(t *testing.T, r *repo.GormRepo, name string, priceCents int64) *models.Product {
	t.Helper()
	p := models.Product{Name: name, Description: name, PriceCents: priceCents, Count: 100}
	require.NoError(t, r.CreateProduct(context.Background(), &p))
	return &p
}

func createUser(t *testing.T, r *repo.GormRepo, username string) *models.User {
	t.Helper()
	u := models.User{
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: "irrelevant",
		FirstName:    "Test",
		LastName:     "User",
		Role:         "user",
	}
	require.NoError(t, r.CreateUser(context.Background(), &u))
	return &u
}
