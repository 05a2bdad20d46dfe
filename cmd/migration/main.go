// Command migration manages the provider_payloads archive schema.
package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
)

const (
	defaultMigrationsTable = "provider_payloads_schema_migrations"
	migrationsTableParam   = "x-migrations-table"
)

var migrationsDirCandidates = []string{"./db/migrations", "/app/db/migrations"}

var errUsage = errors.New("usage")

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

var logger = logging.New(logging.Options{
	Level:       logging.LevelInfo,
	ServiceName: "sportsbet-api-migration",
})

func fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	_ = logger.Sync()
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		fatal("DB_URL is required")
	}
	dbURL, err := withMigrationsTable(dbURL, os.Getenv("MIGRATIONS_TABLE"))
	if err != nil {
		fatal("invalid DB_URL", "error", err)
	}

	dir, err := findMigrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		fatal("locate migrations failed", "error", err)
	}

	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, dbURL)
	if err != nil {
		fatal("open migrator failed", "source", source, "error", err)
	}

	runErr := run(m, os.Args[1:], os.Stdout)
	srcErr, dbErr := m.Close()
	if srcErr != nil || dbErr != nil {
		logger.Warn("close migrator failed", "source_error", srcErr, "db_error", dbErr)
	}
	if errors.Is(runErr, errUsage) {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if runErr != nil {
		fatal("migration command failed", "command", os.Args[1], "source", source, "error", runErr)
	}
}

// run executes one command against m. A migrate.ErrNoChange result counts as success.
func run(m migrator, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := strings.ToLower(strings.TrimSpace(args[0])), args[1:]

	switch cmd {
	case "up":
		if err := ignoreNoChange(m.Up()); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("provider_payloads schema up to date")
	case "down":
		steps, err := parseSteps(rest)
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Steps(-steps)); err != nil {
			return fmt.Errorf("roll back %d step(s): %w", steps, err)
		}
		logger.Info("provider_payloads schema rolled back", "steps", steps)
	case "version":
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			_, _ = fmt.Fprintln(out, "version=none dirty=false")
		case err != nil:
			return fmt.Errorf("read version: %w", err)
		default:
			_, _ = fmt.Fprintf(out, "version=%d dirty=%t\n", version, dirty)
		}
	case "force":
		if len(rest) == 0 {
			return fmt.Errorf("force needs a version: %w", errUsage)
		}
		version, err := parseVersion(rest[0])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("provider_payloads schema version forced", "version", version)
	case "goto":
		if len(rest) == 0 {
			return fmt.Errorf("goto needs a version: %w", errUsage)
		}
		version, err := parseVersion(rest[0])
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Migrate(uint(version))); err != nil {
			return fmt.Errorf("migrate to version %d: %w", version, err)
		}
		logger.Info("provider_payloads schema moved", "version", version)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0, got %d", steps)
	}
	return steps, nil
}

// parseVersion accepts the unix-timestamp versions used by db/migrations.
func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0, got %d", value)
	}
	return int(value), nil
}

// withMigrationsTable points the postgres driver at the archive's own version table unless
// the URL already names one.
func withMigrationsTable(rawURL, table string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse db url: %w", err)
	}
	query := parsed.Query()
	if query.Get(migrationsTableParam) != "" {
		return rawURL, nil
	}
	table = strings.TrimSpace(table)
	if table == "" {
		table = defaultMigrationsTable
	}
	query.Set(migrationsTableParam, table)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func findMigrationsDir(override string) (string, error) {
	candidates := migrationsDirCandidates
	if override = strings.TrimSpace(override); override != "" {
		candidates = []string{override}
	}

	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("no migrations directory among %s", strings.Join(candidates, ", "))
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	_, _ = fmt.Fprintf(w, `Manage the provider_payloads archive schema.

usage: %[1]s <command> [arg]

commands:
  up              apply every pending migration
  down [steps]    roll back steps migrations (default 1)
  version         print the applied version and dirty flag
  force <version> mark version as applied without running it
  goto <version>  migrate up or down to version, e.g. %[1]s goto 1784937600

environment:
  DB_URL            postgres url of the archive database (required)
  MIGRATIONS_DIR    migration files (default ./db/migrations, then /app/db/migrations)
  MIGRATIONS_TABLE  version table (default %[2]s)
`, name, defaultMigrationsTable)
}
