package auth

import (
	"errors"
	"testing"

	"petstat/internal/pkg/jwt"
	"petstat/internal/pkg/oauth"
	"petstat/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestMapSignInError(t *testing.T) {
	other := errors.New("boom")

	assert.NoError(t, mapSignInError(nil))
	assert.ErrorIs(t, mapSignInError(oauth.ErrInvalidToken), ErrInvalidIdentityToken)
	assert.ErrorIs(t, mapSignInError(&oauth.NetworkError{Err: other}), ErrProviderUnavailable)
	assert.Equal(t, other, mapSignInError(other))
}

func TestMapSignOutTokenError(t *testing.T) {
	assert.NoError(t, mapSignOutTokenError(nil))
	assert.NoError(t, mapSignOutTokenError(jwt.ErrTokenExpired))
	assert.ErrorIs(t, mapSignOutTokenError(jwt.ErrTokenInvalid), ErrInvalidAccessToken)
	assert.ErrorIs(t, mapSignOutTokenError(errors.New("anything else")), ErrInvalidAccessToken)
}

func TestMapSignOutRevokeError(t *testing.T) {
	other := errors.New("boom")

	assert.NoError(t, mapSignOutRevokeError(nil))
	assert.NoError(t, mapSignOutRevokeError(repository.ErrTokenNotFound))
	assert.NoError(t, mapSignOutRevokeError(repository.ErrTokenExpired))
	assert.Equal(t, other, mapSignOutRevokeError(other))
	assert.ErrorIs(t, mapSignOutRevokeError(repository.ErrFingerprintCollision), repository.ErrFingerprintCollision)
}

func TestMapRotateError(t *testing.T) {
	other := errors.New("boom")

	assert.NoError(t, mapRotateError(nil))
	assert.ErrorIs(t, mapRotateError(repository.ErrTokenNotFound), ErrInvalidSession)
	assert.ErrorIs(t, mapRotateError(repository.ErrTokenExpired), ErrInvalidSession)
	assert.Equal(t, other, mapRotateError(other))
}
