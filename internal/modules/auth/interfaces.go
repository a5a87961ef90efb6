package auth

import (
	"context"

	"petstat/internal/domain"
	"petstat/internal/pkg/jwt"
	"petstat/internal/repository"
)

// UserStore covers the user lookups and creation sign-in needs.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByProviderUserID(ctx context.Context, provider domain.ProviderType, providerUserID string) (*domain.User, error)
	CreateFederated(ctx context.Context, p repository.CreateFederatedParams) (*domain.User, error)
}

// TokenStore is the transactional refresh session storage.
type TokenStore interface {
	Store(ctx context.Context, userID int64, fingerprint []byte) (*domain.UserToken, error)
	FindAndRevoke(ctx context.Context, fingerprint []byte) (*domain.UserToken, error)
	Rotate(ctx context.Context, oldFingerprint, newFingerprint []byte) (*domain.UserToken, error)
}

type AccessTokens interface {
	GenerateToken(userID int64, email string) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

type Metrics interface {
	RecordSignIn(outcome string)
	RecordRotate(outcome string)
	RecordSignOut(outcome string)
}

type noopMetrics struct{}

func (noopMetrics) RecordSignIn(string)  {}
func (noopMetrics) RecordRotate(string)  {}
func (noopMetrics) RecordSignOut(string) {}
