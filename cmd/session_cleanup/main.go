package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"petstat/internal/config"
	"petstat/internal/database"
	"petstat/internal/logger"
	"petstat/internal/repository"
)

func main() {
	retention := flag.Duration("retention", 30*24*time.Hour, "keep expired and revoked sessions this long")
	flag.Parse()

	config.LoadDotEnv()
	logger.SetupDefault(os.Stdout, os.Getenv("LOG_LEVEL"))

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		slog.Error("db connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// refresh TTL is irrelevant for purging
	tokens := repository.NewUserTokenRepository(db, 0)
	n, err := tokens.PurgeStale(ctx, *retention)
	if err != nil {
		slog.Error("session cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("session cleanup completed",
		slog.Int64("user_tokens", n),
		slog.Duration("retention", *retention),
	)
}
