package jwt

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_RoundTrip(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	token, err := svc.GenerateToken(42, "owner@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.IssuedAt.Before(claims.ExpiresAt.Time))
}

func TestGenerate_EmptyEmailIsOmitted(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	token, err := svc.GenerateToken(7, "")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Email)
	assert.Equal(t, "7", claims.Subject)
}

func TestValidate_ExpiredIsDistinct(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	token, err := svc.generate(42, "a@b.c", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_ExpiredByClock(t *testing.T) {
	svc := New("test-secret-123", time.Minute)

	token, err := svc.GenerateToken(42, "")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := New("secret-a", time.Hour)
	verifier := New("secret-b", time.Hour)

	token, err := issuer.GenerateToken(42, "")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_ExpiredWithWrongSecretIsInvalid(t *testing.T) {
	issuer := New("secret-a", time.Hour)
	verifier := New("secret-b", time.Hour)

	token, err := issuer.generate(42, "", -time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_TamperedPayload(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	token, err := svc.GenerateToken(42, "a@b.c")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[5] == 'A' {
		payload[5] = 'B'
	} else {
		payload[5] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = svc.ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Malformed(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c", "invalid-jwt-here"} {
		_, err := svc.ValidateToken(raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, raw)
	}
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	claims := Claims{RegisteredClaims: jwtlib.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwtlib.NewNumericDate(time.Now()),
	}}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte("test-secret-123"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_NonNumericSubject(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	claims := Claims{RegisteredClaims: jwtlib.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwtlib.NewNumericDate(time.Now()),
	}}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret-123"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_MissingExpiry(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	claims := Claims{RegisteredClaims: jwtlib.RegisteredClaims{Subject: "42"}}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret-123"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_ExpiredButIssuedInFutureIsInvalid(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	now := time.Now()
	claims := Claims{RegisteredClaims: jwtlib.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwtlib.NewNumericDate(now.Add(-time.Hour)),
		IssuedAt:  jwtlib.NewNumericDate(now.Add(time.Hour)),
	}}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret-123"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_ExpiredAndNotYetValidIsInvalid(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	now := time.Now()
	claims := Claims{RegisteredClaims: jwtlib.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwtlib.NewNumericDate(now.Add(-time.Hour)),
		NotBefore: jwtlib.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwtlib.NewNumericDate(now.Add(-2 * time.Hour)),
	}}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret-123"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
