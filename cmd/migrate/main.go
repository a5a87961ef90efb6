package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"petstat/internal/config"
	"petstat/internal/database"
	"petstat/internal/logger"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [up|down N|version]")
	}
	flag.Parse()

	config.LoadDotEnv()
	logger.SetupDefault(os.Stderr, os.Getenv("LOG_LEVEL"))

	dsn := os.Getenv("DATABASE_URL")
	if !database.IsPostgres(dsn) {
		slog.Error("DATABASE_URL must be a postgres:// URL")
		os.Exit(1)
	}

	if err := run(dsn, flag.Args()); err != nil {
		slog.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(dsn string, args []string) error {
	cmd := "up"
	if len(args) > 0 {
		cmd = args[0]
	}

	m, err := database.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		if len(args) < 2 {
			return errors.New("down needs a step count")
		}
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil || n <= 0 {
			return fmt.Errorf("invalid step count %q", args[1])
		}
		err = m.Steps(-n)
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			slog.Info("no migrations applied")
			return nil
		}
		if verr != nil {
			return verr
		}
		slog.Info("schema version", slog.Uint64("version", uint64(v)), slog.Bool("dirty", dirty))
		return nil
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("schema already up to date")
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("migrations applied", slog.String("command", cmd))
	return nil
}
