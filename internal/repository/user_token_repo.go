package repository

import (
	"context"
	"errors"
	"time"

	"petstat/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserTokenRepository owns the refresh-session lifecycle. Request paths run in
// a transaction and only ever revoke rows; PurgeStale is the offline cleanup.
type UserTokenRepository struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewUserTokenRepository(db *gorm.DB, refreshTTL time.Duration) *UserTokenRepository {
	return &UserTokenRepository{db: db, ttl: refreshTTL, now: time.Now}
}

// Store inserts a live record expiring refreshTTL from now. Existing records
// for the same user are left alone.
func (r *UserTokenRepository) Store(ctx context.Context, userID int64, fingerprint []byte) (*domain.UserToken, error) {
	var stored *domain.UserToken
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := r.storeTx(tx, userID, fingerprint)
		stored = t
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// FindAndRevoke locks the live record matching fingerprint and revokes it.
// It returns the record as it was before revocation.
func (r *UserTokenRepository) FindAndRevoke(ctx context.Context, fingerprint []byte) (*domain.UserToken, error) {
	var revoked *domain.UserToken
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := r.findAndRevokeTx(tx, fingerprint)
		revoked = t
		return err
	})
	if err != nil {
		return nil, err
	}
	return revoked, nil
}

// Rotate revokes oldFingerprint and stores newFingerprint for the same user.
// Both happen or neither does.
func (r *UserTokenRepository) Rotate(ctx context.Context, oldFingerprint, newFingerprint []byte) (*domain.UserToken, error) {
	var next *domain.UserToken
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		old, err := r.findAndRevokeTx(tx, oldFingerprint)
		if err != nil {
			return err
		}
		next, err = r.storeTx(tx, old.UserID, newFingerprint)
		return err
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (r *UserTokenRepository) findAndRevokeTx(tx *gorm.DB, fingerprint []byte) (*domain.UserToken, error) {
	var t domain.UserToken
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("refresh_token = ? AND revoked = ?", fingerprint, false).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	now := r.now()
	if t.IsExpired(now) {
		return nil, ErrTokenExpired
	}

	res := tx.Model(&domain.UserToken{}).
		Where("id = ? AND revoked = ?", t.ID, false).
		Updates(map[string]any{"revoked": true, "updated_at": now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrTokenNotFound
	}
	return &t, nil
}

func (r *UserTokenRepository) storeTx(tx *gorm.DB, userID int64, fingerprint []byte) (*domain.UserToken, error) {
	t := domain.UserToken{
		UserID:       userID,
		RefreshToken: fingerprint,
		ExpiresAt:    r.now().Add(r.ttl),
	}
	if err := tx.Create(&t).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrFingerprintCollision
		}
		return nil, err
	}
	return &t, nil
}

func (r *UserTokenRepository) CountLive(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.UserToken{}).
		Where("user_id = ? AND revoked = ? AND expires_at > ?", userID, false, r.now()).
		Count(&n).Error
	return n, err
}

// PurgeStale deletes sessions that expired or were revoked more than
// retention ago. Live sessions are never touched.
func (r *UserTokenRepository) PurgeStale(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := r.now().Add(-retention)
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR (revoked = ? AND updated_at < ?)", cutoff, true, cutoff).
		Delete(&domain.UserToken{})
	return res.RowsAffected, res.Error
}
