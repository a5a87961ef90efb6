package repository

import (
	"context"
	"testing"

	"petstat/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCreateFederated_CreatesUserAndLink(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	email := "  Owner@Example.com "
	token := "raw-id-token"
	u, err := users.CreateFederated(ctx, CreateFederatedParams{
		Email:          &email,
		Provider:       domain.ProviderGoogle,
		ProviderUserID: "google-sub-1",
		IDToken:        &token,
		ExtraData:      datatypes.JSON(`{"name":"Owner"}`),
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, domain.LoginTypeOauth, u.LoginType)
	require.NotNil(t, u.Email)
	assert.Equal(t, "owner@example.com", *u.Email)

	found, err := users.GetByProviderUserID(ctx, domain.ProviderGoogle, "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	link, err := users.getOAuthAccount(ctx, domain.ProviderGoogle, "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, link.UserID)
	assert.JSONEq(t, `{"name":"Owner"}`, string(link.ExtraData))
}

func TestCreateFederated_DuplicateLinkRollsBackUser(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	createUser(t, users, "google-sub-1")

	_, err := users.CreateFederated(ctx, CreateFederatedParams{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: "google-sub-1",
	})
	assert.ErrorIs(t, err, ErrIdentityAlreadyLinked)

	var userCount, linkCount int64
	require.NoError(t, db.Table("users").Count(&userCount).Error)
	require.NoError(t, db.Table("oauth_accounts").Count(&linkCount).Error)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(1), linkCount)
}

func TestCreateFederated_SameSubjectDifferentProvider(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	a, err := users.CreateFederated(ctx, CreateFederatedParams{Provider: domain.ProviderGoogle, ProviderUserID: "shared"})
	require.NoError(t, err)
	b, err := users.CreateFederated(ctx, CreateFederatedParams{Provider: domain.ProviderApple, ProviderUserID: "shared"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Nil(t, a.Email)
}

func TestGetByID_NotFound(t *testing.T) {
	users := NewUserRepository(setupTestDB(t))

	_, err := users.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = users.GetByProviderUserID(context.Background(), domain.ProviderGoogle, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateFederated_CanceledContext(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := users.CreateFederated(ctx, CreateFederatedParams{Provider: domain.ProviderGoogle, ProviderUserID: "late"})
	assert.Error(t, err)

	var n int64
	require.NoError(t, db.Table("users").Count(&n).Error)
	assert.Zero(t, n)
}
