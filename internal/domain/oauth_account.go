package domain

import (
	"time"

	"gorm.io/datatypes"
)

// OAuthAccount links a user to one identity at an external provider.
// (provider_type, provider_user_id) is unique and is the lookup key on repeat sign-ins.
type OAuthAccount struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID int64 `json:"user_id" gorm:"index;not null"`

	ProviderType   ProviderType `json:"provider_type" gorm:"size:16;not null;uniqueIndex:idx_oauth_accounts_provider_subject"`
	ProviderUserID string       `json:"provider_user_id" gorm:"size:255;not null;uniqueIndex:idx_oauth_accounts_provider_subject"`

	IDToken   *string        `json:"-" gorm:"type:text"`
	ExtraData datatypes.JSON `json:"extra_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OAuthAccount) TableName() string { return "oauth_accounts" }
