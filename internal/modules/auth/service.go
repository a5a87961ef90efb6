package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"petstat/internal/domain"
	"petstat/internal/pkg/oauth"
	"petstat/internal/pkg/refreshtoken"
	"petstat/internal/repository"

	"gorm.io/datatypes"
)

// Service composes the token codec, refresh primitive, identity verifiers and
// session store into the sign-in, sign-out and rotate flows.
type Service struct {
	users      UserStore
	tokens     TokenStore
	access     AccessTokens
	providers  map[domain.ProviderType]oauth.Provider
	refreshKey []byte
	metrics    Metrics
	newPair    func(key []byte) (refreshtoken.Pair, error)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func NewService(
	users UserStore,
	tokens TokenStore,
	access AccessTokens,
	providers map[domain.ProviderType]oauth.Provider,
	refreshHashSecret string,
	metrics Metrics,
) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		users:      users,
		tokens:     tokens,
		access:     access,
		providers:  providers,
		refreshKey: []byte(refreshHashSecret),
		metrics:    metrics,
		newPair:    refreshtoken.NewPair,
	}
}

func (s *Service) SignIn(ctx context.Context, idToken string, provider domain.ProviderType) (pair *TokenPair, err error) {
	defer func() { s.metrics.RecordSignIn(outcome(err)) }()

	verifier, ok := s.providers[provider]
	if !ok {
		return nil, ErrUnsupportedProvider
	}

	identity, err := verifier.VerifyToken(ctx, idToken)
	if err != nil {
		mapped := mapSignInError(err)
		if errors.Is(mapped, ErrProviderUnavailable) {
			slog.Error("identity provider key fetch failed",
				slog.String("provider", string(provider)),
				slog.String("error", err.Error()),
			)
		}
		return nil, mapped
	}

	user, err := s.findOrCreateUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	pair, err = s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	slog.Info("user signed in",
		slog.Int64("user_id", user.ID),
		slog.String("provider", string(provider)),
	)
	return pair, nil
}

// SignOut revokes refreshToken. accessToken may be expired but must carry our signature.
func (s *Service) SignOut(ctx context.Context, accessToken, refreshToken string) (err error) {
	defer func() { s.metrics.RecordSignOut(outcome(err)) }()

	_, verr := s.access.ValidateToken(accessToken)
	if err := mapSignOutTokenError(verr); err != nil {
		return err
	}

	fp := refreshtoken.Fingerprint(refreshToken, s.refreshKey)
	revoked, rerr := s.tokens.FindAndRevoke(ctx, fp)
	if err := mapSignOutRevokeError(rerr); err != nil {
		return err
	}

	if revoked != nil {
		slog.Info("refresh token revoked", slog.Int64("user_id", revoked.UserID))
	} else {
		slog.Info("sign-out with inactive refresh token", slog.String("reason", rerr.Error()))
	}
	return nil
}

// Rotate exchanges a live refresh token for a new access and refresh token.
// No access token is minted unless the old refresh token was consumed.
func (s *Service) Rotate(ctx context.Context, refreshToken string) (pair *TokenPair, err error) {
	defer func() { s.metrics.RecordRotate(outcome(err)) }()

	next, err := s.newPair(s.refreshKey)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	old := refreshtoken.Fingerprint(refreshToken, s.refreshKey)
	stored, err := s.tokens.Rotate(ctx, old, next.Fingerprint)
	if err != nil {
		if errors.Is(err, repository.ErrFingerprintCollision) {
			slog.Error("refresh fingerprint collision on rotate")
		}
		return nil, mapRotateError(err)
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	access, err := s.access.GenerateToken(user.ID, user.EmailOrEmpty())
	if err != nil {
		return nil, err
	}

	slog.Info("refresh token rotated", slog.Int64("user_id", user.ID))
	return &TokenPair{AccessToken: access, RefreshToken: next.Secret}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) findOrCreateUser(ctx context.Context, identity *oauth.Identity) (*domain.User, error) {
	user, err := s.users.GetByProviderUserID(ctx, identity.Provider, identity.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	user, err = s.users.CreateFederated(ctx, repository.CreateFederatedParams{
		Email:          identity.Email,
		Provider:       identity.Provider,
		ProviderUserID: identity.Subject,
		ExtraData:      extraData(identity),
	})
	if errors.Is(err, repository.ErrIdentityAlreadyLinked) {
		// a concurrent first sign-in created the link
		return s.users.GetByProviderUserID(ctx, identity.Provider, identity.Subject)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("federated user created",
		slog.Int64("user_id", user.ID),
		slog.String("provider", string(identity.Provider)),
	)
	return user, nil
}

func (s *Service) issue(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, err := s.access.GenerateToken(user.ID, user.EmailOrEmpty())
	if err != nil {
		return nil, err
	}

	refresh, err := s.newPair(s.refreshKey)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if _, err := s.tokens.Store(ctx, user.ID, refresh.Fingerprint); err != nil {
		if errors.Is(err, repository.ErrFingerprintCollision) {
			slog.Error("refresh fingerprint collision on sign-in", slog.Int64("user_id", user.ID))
		}
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh.Secret}, nil
}

func extraData(identity *oauth.Identity) datatypes.JSON {
	fields := map[string]any{}
	if identity.Name != nil {
		fields["name"] = *identity.Name
	}
	if identity.EmailVerified != nil {
		fields["email_verified"] = *identity.EmailVerified
	}
	if len(fields) == 0 {
		return nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
