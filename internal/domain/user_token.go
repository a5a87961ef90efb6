package domain

import "time"

// UserToken is one issued refresh session.
//
// Only the keyed fingerprint of the refresh secret is stored. Rows are
// revoked by flipping Revoked and are never deleted by the session flows.
type UserToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID   int64   `json:"user_id" gorm:"index;not null"`
	DeviceID *string `json:"device_id,omitempty" gorm:"size:255"`

	RefreshToken []byte `json:"-" gorm:"size:32;uniqueIndex;not null"`

	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserToken) TableName() string { return "user_tokens" }

func (t *UserToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
