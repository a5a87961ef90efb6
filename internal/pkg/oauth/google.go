package oauth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"petstat/internal/domain"

	jwtlib "github.com/golang-jwt/jwt/v5"
	jose "gopkg.in/square/go-jose.v2"
)

const (
	DefaultGoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

	maxJWKSBodySize = 1 << 20
)

var GoogleIssuers = []string{"https://accounts.google.com", "accounts.google.com"}

type GoogleConfig struct {
	ClientID string
	// JWKSURL can be overridden in tests.
	JWKSURL string
	Issuers []string
}

// GoogleVerifier checks Google ID tokens against the published key set.
// Keys are fetched on every verification.
type GoogleVerifier struct {
	config GoogleConfig
	client HTTPDoer
	now    func() time.Time
}

func NewGoogleVerifier(config GoogleConfig, client HTTPDoer) *GoogleVerifier {
	if config.JWKSURL == "" {
		config.JWKSURL = DefaultGoogleJWKSURL
	}
	if len(config.Issuers) == 0 {
		config.Issuers = GoogleIssuers
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &GoogleVerifier{config: config, client: client, now: time.Now}
}

type googleClaims struct {
	Email         *string `json:"email,omitempty"`
	EmailVerified *bool   `json:"email_verified,omitempty"`
	Name          *string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}

func (v *GoogleVerifier) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	unverified, _, err := jwtlib.NewParser().ParseUnverified(token, &googleClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, fmt.Errorf("%w: missing kid", ErrInvalidToken)
	}

	jwk, err := v.FetchPublicKey(ctx, kid)
	if err != nil {
		return nil, err
	}
	key, ok := jwk.Key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported key type %T", ErrInvalidToken, jwk.Key)
	}
	alg := jwk.Algorithm
	if alg == "" {
		alg = jwtlib.SigningMethodRS256.Alg()
	}

	claims := &googleClaims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, func(*jwtlib.Token) (any, error) {
		return key, nil
	},
		jwtlib.WithValidMethods([]string{alg}),
		jwtlib.WithAudience(v.config.ClientID),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(v.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !slices.Contains(v.config.Issuers, claims.Issuer) {
		return nil, fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Identity{
		Provider:      domain.ProviderGoogle,
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		RawToken:      token,
	}, nil
}

// FetchPublicKey downloads the key set and returns the key with the given id.
func (v *GoogleVerifier) FetchPublicKey(ctx context.Context, keyID string) (*jose.JSONWebKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.config.JWKSURL, nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Err: fmt.Errorf("key endpoint returned status %d", resp.StatusCode)}
	}

	var set jose.JSONWebKeySet
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJWKSBodySize)).Decode(&set); err != nil {
		return nil, fmt.Errorf("%w: decode key set: %v", ErrInvalidToken, err)
	}

	keys := set.Key(keyID)
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: unknown kid", ErrInvalidToken)
	}
	return &keys[0], nil
}
