// Package oauth verifies identity tokens issued by external providers.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"petstat/internal/domain"

	jose "gopkg.in/square/go-jose.v2"
)

// ErrInvalidToken is returned for every signature, claim or key-resolution
// failure. Callers must not learn which check failed.
var ErrInvalidToken = errors.New("invalid identity token")

// NetworkError wraps a failure to reach the provider's key endpoint.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("identity provider unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// Identity is the verified content of an identity token.
type Identity struct {
	Provider      domain.ProviderType
	Subject       string
	Email         *string
	EmailVerified *bool
	Name          *string
	RawToken      string
}

// Provider verifies identity tokens for one external provider.
type Provider interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
	FetchPublicKey(ctx context.Context, keyID string) (*jose.JSONWebKey, error)
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
