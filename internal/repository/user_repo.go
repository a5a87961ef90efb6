package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"petstat/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Email        *string   `gorm:"column:email;size:255"`
	LoginType    string    `gorm:"column:login_type;size:16;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		LoginType: domain.LoginType(m.LoginType),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*email))
	if v == "" {
		return nil
	}
	return &v
}

// CreateFederatedParams describes a first sign-in through an external provider.
type CreateFederatedParams struct {
	Email          *string
	Provider       domain.ProviderType
	ProviderUserID string
	IDToken        *string
	ExtraData      datatypes.JSON
}

// CreateFederated inserts the user and its provider link in one transaction.
// If the link already exists the user insert is rolled back and
// ErrIdentityAlreadyLinked is returned.
func (r *UserRepository) CreateFederated(ctx context.Context, p CreateFederatedParams) (*domain.User, error) {
	var created *domain.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := userModel{
			Email:     normalizeEmail(p.Email),
			LoginType: string(domain.LoginTypeOauth),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		link := domain.OAuthAccount{
			UserID:         m.ID,
			ProviderType:   p.Provider,
			ProviderUserID: p.ProviderUserID,
			IDToken:        p.IDToken,
			ExtraData:      p.ExtraData,
		}
		if err := tx.Create(&link).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrIdentityAlreadyLinked
			}
			return err
		}

		created = toDomainUser(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByProviderUserID(ctx context.Context, provider domain.ProviderType, providerUserID string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Joins("JOIN oauth_accounts ON oauth_accounts.user_id = users.id").
		Where("oauth_accounts.provider_type = ? AND oauth_accounts.provider_user_id = ?", provider, providerUserID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(m), nil
}
