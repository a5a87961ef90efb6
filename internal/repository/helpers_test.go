package repository

import (
	"context"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"petstat/internal/database"
	"petstat/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// same DSN shape as the default DATABASE_URL
	db, err := database.Connect(filepath.Join(t.TempDir(), "petstat.db"))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	closeOnCleanup(t, db)
	return db
}

// setupPostgresDB migrates and empties the database at TEST_DATABASE_URL.
func setupPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, database.RunMigrations(dbURL))

	db, err := database.Connect(dbURL)
	require.NoError(t, err)
	require.NoError(t, db.Exec("TRUNCATE user_tokens, oauth_accounts, pets, users RESTART IDENTITY CASCADE").Error)

	closeOnCleanup(t, db)
	return db
}

func closeOnCleanup(t *testing.T, db *gorm.DB) {
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
}

func fingerprint(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:]
}

func createUser(t *testing.T, users *UserRepository, subject string) *domain.User {
	t.Helper()
	email := subject + "@example.com"
	u, err := users.CreateFederated(context.Background(), CreateFederatedParams{
		Email:          &email,
		Provider:       domain.ProviderGoogle,
		ProviderUserID: subject,
	})
	require.NoError(t, err)
	return u
}

func (r *UserTokenRepository) getByFingerprint(ctx context.Context, fp []byte) (*domain.UserToken, error) {
	var t domain.UserToken
	if err := r.db.WithContext(ctx).Where("refresh_token = ?", fp).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *UserRepository) getOAuthAccount(ctx context.Context, provider domain.ProviderType, subject string) (*domain.OAuthAccount, error) {
	var a domain.OAuthAccount
	err := r.db.WithContext(ctx).
		Where("provider_type = ? AND provider_user_id = ?", provider, subject).
		First(&a).Error
	return &a, err
}
