package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/antaeus/billing/internal/infrastructure/config"
	"github.com/antaeus/billing/internal/infrastructure/logger"
	"github.com/antaeus/billing/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

var errUsage = errors.New("usage")

// schemaCommand is one migrate subcommand. Commands with a nil schema run
// without a database and always read migrations from a directory.
type schemaCommand struct {
	args    string
	summary string
	files   func(log *zap.Logger, dir string, args []string) error
	schema  func(log *zap.Logger, m *migration.Migrator, args []string) error
}

var schemaCommands = map[string]schemaCommand{
	"up": {
		summary: "Apply every pending billing schema migration",
		schema: func(_ *zap.Logger, m *migration.Migrator, _ []string) error {
			return m.Up()
		},
	},
	"down": {
		summary: "Roll the billing schema all the way back",
		schema: func(_ *zap.Logger, m *migration.Migrator, _ []string) error {
			return m.Down()
		},
	},
	"step": {
		args:    "<n>",
		summary: "Move n migrations (negative rolls back)",
		schema: func(_ *zap.Logger, m *migration.Migrator, args []string) error {
			n, err := intArg(args, 32)
			if err != nil {
				return err
			}
			return m.Steps(int(n))
		},
	},
	"goto": {
		args:    "<version>",
		summary: "Migrate the schema to exactly this version",
		schema: func(_ *zap.Logger, m *migration.Migrator, args []string) error {
			v, err := intArg(args, 64)
			if err != nil {
				return err
			}
			if v < 0 {
				return fmt.Errorf("%w: version must not be negative", errUsage)
			}
			return m.GoTo(uint(v))
		},
	},
	"version": {
		summary: "Show the applied schema version",
		schema: func(log *zap.Logger, m *migration.Migrator, _ []string) error {
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			if v == 0 {
				log.Info("Billing schema has no migrations applied")
				return nil
			}
			log.Info("Billing schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
			return nil
		},
	},
	"force": {
		args:    "<version>",
		summary: "Record a version without running it, to clear a dirty state",
		schema: func(log *zap.Logger, m *migration.Migrator, args []string) error {
			v, err := intArg(args, 64)
			if err != nil {
				return err
			}
			log.Warn("Forcing billing schema version", zap.Int64("version", v))
			return m.Force(int(v))
		},
	},
	"drop": {
		args:    "-confirm",
		summary: "Drop the invoice and customer tables and everything else",
		schema: func(log *zap.Logger, m *migration.Migrator, args []string) error {
			if len(args) == 0 || strings.TrimLeft(args[0], "-") != "confirm" {
				return fmt.Errorf("%w: drop destroys all billing data, rerun with -confirm", errUsage)
			}
			log.Warn("Dropping every billing table")
			return m.Drop()
		},
	},
	"create": {
		args:    "<name> [description]",
		summary: "Write a new up/down migration pair",
		files: func(log *zap.Logger, dir string, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: create needs a migration name", errUsage)
			}
			description := strings.Join(args[1:], " ")
			mf, err := migration.CreateMigration(dir, args[0], description)
			if err != nil {
				return err
			}
			log.Info("Billing migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	},
	"list": {
		summary: "List the migrations found in the directory",
		files: func(log *zap.Logger, dir string, _ []string) error {
			names, err := migration.ListMigrations(dir)
			if err != nil {
				return err
			}
			log.Info("Billing migrations", zap.String("dir", dir), zap.Int("count", len(names)))
			for _, name := range names {
				fmt.Println("  -", name)
			}
			return nil
		},
	},
}

func main() {
	dir := flag.String("path", "", "Read migrations from this directory instead of the ones built into the binary")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}
	name, rest := args[0], args[1:]
	cmd, ok := schemaCommands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		printUsage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()
	log = log.With(zap.String("command", name))

	if err := run(log, cmd, *dir, rest); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%v\n\n", err)
			printUsage()
			os.Exit(2)
		}
		log.Fatal("Billing migration failed", zap.Error(err))
	}
}

func run(log *zap.Logger, cmd schemaCommand, dir string, args []string) error {
	if dir != "" || cmd.files != nil {
		if dir == "" {
			dir = defaultMigrationsDir
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve migrations dir: %w", err)
		}
		dir = abs
	}

	if cmd.files != nil {
		return cmd.files(log, dir, args)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		return errors.New("SQL migrations target postgres; the server creates sqlite schemas on startup")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	var m *migration.Migrator
	if dir == "" {
		m, err = migration.NewEmbedded(db, log)
	} else {
		m, err = migration.New(db, dir, log)
	}
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()

	log.Info("Running billing schema command",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
		zap.Bool("embedded", dir == ""),
	)
	return cmd.schema(log, m, args)
}

func intArg(args []string, bits int) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: missing numeric argument", errUsage)
	}
	n, err := strconv.ParseInt(args[0], 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errUsage, args[0])
	}
	return n, nil
}

func printUsage() {
	names := make([]string, 0, len(schemaCommands))
	for name := range schemaCommands {
		names = append(names, name)
	}
	sort.Strings(names)

	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Manage the billing database schema (invoices and customers).")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage: migrate [flags] <command> [arguments]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, name := range names {
		cmd := schemaCommands[name]
		fmt.Fprintf(out, "  %-24s %s\n", strings.TrimSpace(name+" "+cmd.args), cmd.summary)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "The database is read from BILLING_DATABASE_HOST, _PORT, _USER, _PASSWORD, _DBNAME and _SSLMODE.")
	fmt.Fprintln(out, "create and list use ./migrations unless -path is set.")
}
