package domain

import "time"

type LoginType string

const (
	LoginTypeOauth LoginType = "Oauth"
	LoginTypeLocal LoginType = "Local"
)

type ProviderType string

const (
	ProviderGoogle ProviderType = "Google"
	ProviderApple  ProviderType = "Apple"
	ProviderMeta   ProviderType = "Meta"
)

func (p ProviderType) Valid() bool {
	switch p {
	case ProviderGoogle, ProviderApple, ProviderMeta:
		return true
	}
	return false
}

type User struct {
	ID        int64     `json:"id"`
	Email     *string   `json:"email,omitempty"`
	LoginType LoginType `json:"login_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmailOrEmpty is used when building access-token claims.
func (u *User) EmailOrEmpty() string {
	if u == nil || u.Email == nil {
		return ""
	}
	return *u.Email
}
