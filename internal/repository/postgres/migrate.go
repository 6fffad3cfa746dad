package postgres

import (
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// Migrate applies (up) or rolls back (down) the embedded schema migrations.
// max limits how many migrations run; 0 means all.
func Migrate(db *sqlx.DB, direction string, max int) (int, error) {
	dir := migrate.Up
	switch direction {
	case "up", "":
	case "down":
		dir = migrate.Down
	default:
		return 0, fmt.Errorf("unknown migration direction %q", direction)
	}

	n, err := migrate.ExecMax(db.DB, "postgres", migrationSource(), dir, max)
	if err != nil {
		return n, fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info().Int("count", n).Str("direction", direction).Msg("migrations applied")
	return n, nil
}
