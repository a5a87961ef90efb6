package repository

import (
	"context"
	"errors"
	"time"

	"petstat/internal/domain"

	"gorm.io/gorm"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, p *domain.Pet) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GetForUser scopes the lookup to the owner; another user's pet is reported as missing.
func (r *PetRepository) GetForUser(ctx context.Context, userID, petID int64) (*domain.Pet, error) {
	var p domain.Pet
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", petID, userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PetRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Pet, error) {
	var pets []domain.Pet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&pets).Error
	return pets, err
}

func (r *PetRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Pet{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *PetRepository) Update(ctx context.Context, p *domain.Pet) error {
	p.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&domain.Pet{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Select("name", "sex", "species", "birthday", "birthday_precision", "feed_count", "feed_count_per", "weight", "is_disabled", "updated_at").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPetNotFound
	}
	return nil
}

// Delete reports whether a row owned by userID was removed.
func (r *PetRepository) Delete(ctx context.Context, userID, petID int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", petID, userID).Delete(&domain.Pet{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
