package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"petstat/internal/config"
	"petstat/internal/database"
	"petstat/internal/domain"
	"petstat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_IsRepeatable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "seed.db")
	db, err := database.Connect(dsn)
	require.NoError(t, err)

	cfg := &config.Config{
		DatabaseURL:          dsn,
		JWTSignSecret:        "sign-secret",
		RefreshKeyHashSecret: "hash-secret",
		JWTAccessTTL:         time.Minute,
		RefreshTTL:           time.Hour,
	}
	ctx := context.Background()

	require.NoError(t, seed(ctx, db, cfg))
	require.NoError(t, seed(ctx, db, cfg))

	user, err := repository.NewUserRepository(db).GetByProviderUserID(ctx, domain.ProviderGoogle, demoSubject)
	require.NoError(t, err)

	n, err := repository.NewPetRepository(db).CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	live, err := repository.NewUserTokenRepository(db, time.Hour).CountLive(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), live)
}
