package database

import (
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	if IsPostgres(dsn) {
		slog.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	slog.Info("using SQLite for local development", slog.String("dsn", dsn))

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        SQLiteDSN(dsn),
		}),
		cfg,
	)
}

// SQLite ignores FOR UPDATE, so writers take the lock at BEGIN and wait for it.
var sqliteDefaults = []struct{ key, param string }{
	{"_txlock", "_txlock=immediate"},
	{"busy_timeout", "_pragma=busy_timeout(10000)"},
	{"foreign_keys", "_pragma=foreign_keys(1)"},
}

// SQLiteDSN adds the locking defaults the session store relies on. Parameters
// already present in dsn are kept.
func SQLiteDSN(dsn string) string {
	var params []string
	for _, d := range sqliteDefaults {
		if !strings.Contains(dsn, d.key) {
			params = append(params, d.param)
		}
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
