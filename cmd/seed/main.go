package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"petstat/internal/config"
	"petstat/internal/database"
	"petstat/internal/domain"
	"petstat/internal/logger"
	jwtsvc "petstat/internal/pkg/jwt"
	"petstat/internal/pkg/refreshtoken"
	"petstat/internal/repository"

	"gorm.io/gorm"
)

const (
	demoSubject = "demo-google-subject"
	demoEmail   = "demo@petstat.local"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.SetupDefault(os.Stdout, cfg.LogLevel)

	if cfg.IsProd() {
		slog.Error("refusing to seed a production database")
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("db connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := seed(context.Background(), db, cfg); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func seed(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	if database.IsPostgres(cfg.DatabaseURL) {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return err
		}
	} else if err := repository.AutoMigrate(db); err != nil {
		return err
	}

	users := repository.NewUserRepository(db)
	pets := repository.NewPetRepository(db)
	tokens := repository.NewUserTokenRepository(db, cfg.RefreshTTL)

	user, err := users.GetByProviderUserID(ctx, domain.ProviderGoogle, demoSubject)
	if errors.Is(err, repository.ErrUserNotFound) {
		email := demoEmail
		user, err = users.CreateFederated(ctx, repository.CreateFederatedParams{
			Email:          &email,
			Provider:       domain.ProviderGoogle,
			ProviderUserID: demoSubject,
		})
		if err != nil {
			return err
		}

		if err := seedPets(ctx, pets, user.ID); err != nil {
			return err
		}
		slog.Info("demo user created", slog.Int64("user_id", user.ID))
	} else if err != nil {
		return err
	}

	pair, err := refreshtoken.NewPair([]byte(cfg.RefreshKeyHashSecret))
	if err != nil {
		return err
	}
	if _, err := tokens.Store(ctx, user.ID, pair.Fingerprint); err != nil {
		return err
	}
	access, err := jwtsvc.New(cfg.JWTSignSecret, cfg.JWTAccessTTL).GenerateToken(user.ID, user.EmailOrEmpty())
	if err != nil {
		return err
	}

	// dev-only credentials for manual API testing
	slog.Info("demo session issued",
		slog.Int64("user_id", user.ID),
		slog.String("access_token", access),
		slog.String("refresh_token", pair.Secret),
	)
	return nil
}

func seedPets(ctx context.Context, pets *repository.PetRepository, userID int64) error {
	weight := 4.2
	demo := []domain.Pet{
		{
			Name:              "Miso",
			Sex:               domain.PetSexFemale,
			Species:           domain.SpeciesCat,
			Birthday:          time.Date(2020, time.May, 14, 0, 0, 0, 0, time.UTC),
			BirthdayPrecision: domain.PrecisionFullDate,
			FeedCount:         2,
			FeedCountPer:      domain.FeedPerDay,
			Weight:            &weight,
		},
		{
			Name:              "Rex",
			Sex:               domain.PetSexMale,
			Species:           domain.SpeciesDog,
			Birthday:          time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC),
			BirthdayPrecision: domain.PrecisionYear,
			FeedCount:         3,
			FeedCountPer:      domain.FeedPerDay,
		},
		{
			Name:              "Shelly",
			Sex:               domain.PetSexOther,
			Species:           domain.SpeciesTurtle,
			Birthday:          time.Date(2015, time.August, 1, 0, 0, 0, 0, time.UTC),
			BirthdayPrecision: domain.PrecisionMonth,
			FeedCount:         3,
			FeedCountPer:      domain.FeedPerWeek,
		},
	}

	for i := range demo {
		demo[i].UserID = userID
		if err := pets.Create(ctx, &demo[i]); err != nil {
			return err
		}
	}
	return nil
}
