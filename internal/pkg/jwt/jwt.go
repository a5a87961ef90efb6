package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired means the signature checked out but exp is in the past.
	ErrTokenExpired = errors.New("access token expired")
	// ErrTokenInvalid covers every other verification failure.
	ErrTokenInvalid = errors.New("invalid access token")
)

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Claims struct {
	Email string `json:"email,omitempty"`
	jwtlib.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Service) GenerateToken(userID int64, email string) (string, error) {
	return s.generate(userID, email, s.ttl)
}

func (s *Service) generate(userID int64, email string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken returns the claims of a valid token, ErrTokenExpired when only
// the expiry check failed, and ErrTokenInvalid otherwise.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithIssuedAt(),
		jwtlib.WithTimeFunc(s.now),
	)
	if err != nil {
		// the library checks the signature before claims, so an expiry error
		// implies the token was signed with our secret. Any other failed claim
		// makes the token invalid even if it is also expired.
		switch {
		case errors.Is(err, jwtlib.ErrTokenSignatureInvalid),
			errors.Is(err, jwtlib.ErrTokenUsedBeforeIssued),
			errors.Is(err, jwtlib.ErrTokenNotValidYet):
			return nil, ErrTokenInvalid
		case errors.Is(err, jwtlib.ErrTokenExpired):
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
