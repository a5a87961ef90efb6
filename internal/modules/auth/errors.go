package auth

import (
	"errors"
	"fmt"

	"petstat/internal/pkg/jwt"
	"petstat/internal/pkg/oauth"
	"petstat/internal/repository"
)

var (
	ErrUnsupportedProvider  = errors.New("unsupported identity provider")
	ErrInvalidIdentityToken = errors.New("invalid identity token")
	ErrProviderUnavailable  = errors.New("identity provider unavailable")
	ErrInvalidAccessToken   = errors.New("invalid access token")
	// ErrInvalidSession tells the client to authenticate again.
	ErrInvalidSession = errors.New("invalid session")
)

// Lower layers keep their distinctions; these functions are the only place
// they are collapsed into flow outcomes.

func mapSignInError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, oauth.ErrInvalidToken):
		return ErrInvalidIdentityToken
	case oauth.IsNetworkError(err):
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	default:
		return err
	}
}

// An expired access token still identifies the caller well enough to sign out.
func mapSignOutTokenError(err error) error {
	switch {
	case err == nil, errors.Is(err, jwt.ErrTokenExpired):
		return nil
	default:
		return ErrInvalidAccessToken
	}
}

// Signing out an already revoked, unknown or expired session succeeds.
func mapSignOutRevokeError(err error) error {
	switch {
	case err == nil,
		errors.Is(err, repository.ErrTokenNotFound),
		errors.Is(err, repository.ErrTokenExpired):
		return nil
	default:
		return err
	}
}

func mapRotateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrTokenNotFound), errors.Is(err, repository.ErrTokenExpired):
		return ErrInvalidSession
	default:
		return err
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrUnsupportedProvider):
		return "unsupported_provider"
	case errors.Is(err, ErrInvalidIdentityToken):
		return "invalid_identity_token"
	case errors.Is(err, ErrProviderUnavailable):
		return "provider_unavailable"
	case errors.Is(err, ErrInvalidAccessToken):
		return "invalid_access_token"
	case errors.Is(err, ErrInvalidSession):
		return "invalid_session"
	default:
		return "error"
	}
}
