package pet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"petstat/internal/domain"
	"petstat/internal/pkg/validator"
)

type PetStore interface {
	Create(ctx context.Context, p *domain.Pet) error
	GetForUser(ctx context.Context, userID, petID int64) (*domain.Pet, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Pet, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	Update(ctx context.Context, p *domain.Pet) error
	Delete(ctx context.Context, userID, petID int64) (bool, error)
}

// Service implements owner-scoped pet management.
type Service struct {
	pets PetStore
}

func NewService(pets PetStore) *Service {
	return &Service{pets: pets}
}

func (s *Service) Add(ctx context.Context, userID int64, req CreatePetRequest) (*domain.Pet, error) {
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}

	p := &domain.Pet{
		UserID:            userID,
		Name:              req.Name,
		Sex:               req.Sex,
		Species:           req.Species,
		Birthday:          birthday,
		BirthdayPrecision: req.BirthdayPrecision,
		FeedCount:         1,
		FeedCountPer:      domain.FeedPerDay,
		Weight:            req.Weight,
	}
	if req.FeedCount != nil {
		p.FeedCount = *req.FeedCount
	}
	if req.FeedCountPer != nil {
		p.FeedCountPer = *req.FeedCountPer
	}

	if err := s.pets.Create(ctx, p); err != nil {
		return nil, err
	}
	slog.Info("pet added", slog.Int64("user_id", userID), slog.Int64("pet_id", p.ID))
	return p, nil
}

func (s *Service) Get(ctx context.Context, userID, petID int64) (*domain.Pet, error) {
	return s.pets.GetForUser(ctx, userID, petID)
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Pet, error) {
	return s.pets.ListByUser(ctx, userID)
}

func (s *Service) Count(ctx context.Context, userID int64) (int64, error) {
	return s.pets.CountByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, petID int64, req UpdatePetRequest) (*domain.Pet, error) {
	p, err := s.pets.GetForUser(ctx, userID, petID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Sex != nil {
		p.Sex = *req.Sex
	}
	if req.Species != nil {
		p.Species = *req.Species
	}
	if req.Birthday != nil {
		if p.Birthday, err = parseBirthday(*req.Birthday); err != nil {
			return nil, err
		}
	}
	if req.BirthdayPrecision != nil {
		p.BirthdayPrecision = *req.BirthdayPrecision
	}
	if req.FeedCount != nil {
		p.FeedCount = *req.FeedCount
	}
	if req.FeedCountPer != nil {
		p.FeedCountPer = *req.FeedCountPer
	}
	if req.Weight != nil {
		p.Weight = req.Weight
	}
	if req.IsDisabled != nil {
		p.IsDisabled = *req.IsDisabled
	}

	if err := s.pets.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Remove reports whether the pet existed and belonged to userID.
func (s *Service) Remove(ctx context.Context, userID, petID int64) (bool, error) {
	deleted, err := s.pets.Delete(ctx, userID, petID)
	if err != nil {
		return false, err
	}
	if deleted {
		slog.Info("pet removed", slog.Int64("user_id", userID), slog.Int64("pet_id", petID))
	}
	return deleted, nil
}

func parseBirthday(s string) (time.Time, error) {
	d, err := time.Parse(validator.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birthday must be YYYY-MM-DD", ErrInvalidInput)
	}
	return d, nil
}
