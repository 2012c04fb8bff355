package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"meetingportal/internal/config"
	"meetingportal/internal/database"

	"github.com/golang-migrate/migrate/v4"
)

const migrationsDir = "internal/database/migrations"

func main() {
	var (
		command = flag.String("command", "", "Migration command: up, down, version, force, create")
		steps   = flag.Int("steps", 0, "Number of migration steps (for up/down)")
		version = flag.Int("version", 0, "Migration version (for force)")
		name    = flag.String("name", "", "Migration name (for create)")
	)
	flag.Parse()

	if *command == "" {
		fmt.Println("Usage: go run ./cmd/migrate -command [up|down|version|force|create] [options]")
		fmt.Println("Commands:")
		fmt.Println("  up             - Apply all pending migrations")
		fmt.Println("  down           - Roll back migrations (one step by default)")
		fmt.Println("  version        - Show current migration version")
		fmt.Println("  force          - Force set migration version")
		fmt.Println("  create         - Create new migration files")
		fmt.Println("")
		fmt.Println("Options:")
		fmt.Println("  -steps N       - Number of steps for up/down")
		fmt.Println("  -version N     - Version number for force")
		fmt.Println("  -name NAME     - Migration name for create")
		os.Exit(1)
	}

	// Creating files needs no database.
	if *command == "create" {
		if *name == "" {
			log.Fatal("Migration name required for create command")
		}
		upFile, downFile, err := createMigration(migrationsDir, *name)
		if err != nil {
			log.Fatalf("Failed to create migration files: %v", err)
		}
		fmt.Printf("Created migration files:\n  %s\n  %s\n", upFile, downFile)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.Driver != config.StorageDriverPostgres {
		log.Fatalf("Migrations need STORAGE_DRIVER=%s, got %q", config.StorageDriverPostgres, cfg.Database.Driver)
	}

	m, err := database.NewMigrator(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("Failed to close migration instance: %v %v", srcErr, dbErr)
		}
	}()

	switch *command {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			fmt.Println("No migrations to apply")
		case err != nil:
			log.Fatalf("Migration up failed: %v", err)
		default:
			fmt.Println("Migrations applied successfully")
		}

	case "down":
		n := 1
		if *steps > 0 {
			n = *steps
		}
		err = m.Steps(-n)
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			fmt.Println("No migrations to roll back")
		case err != nil:
			log.Fatalf("Migration down failed: %v", err)
		default:
			fmt.Println("Migrations rolled back successfully")
		}

	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Println("No migrations applied yet")
				return
			}
			log.Fatalf("Failed to get version: %v", err)
		}
		fmt.Printf("Current version: %d\n", v)
		if dirty {
			fmt.Println("Database is in a dirty state")
		} else {
			fmt.Println("Database is clean")
		}

	case "force":
		if *version == 0 {
			log.Fatal("Version number required for force command")
		}
		if err := m.Force(*version); err != nil {
			log.Fatalf("Force migration failed: %v", err)
		}
		fmt.Printf("Migration version forced to %d\n", *version)

	default:
		log.Fatalf("Unknown command: %s", *command)
	}
}

func createMigration(dir, name string) (string, string, error) {
	next := nextMigrationNumber(dir)
	upFile := filepath.Join(dir, fmt.Sprintf("%06d_%s.up.sql", next, name))
	downFile := filepath.Join(dir, fmt.Sprintf("%06d_%s.down.sql", next, name))

	if err := os.WriteFile(upFile, []byte("-- Migration up\n\n"), 0o644); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(downFile, []byte("-- Migration down\n\n"), 0o644); err != nil {
		return "", "", err
	}
	return upFile, downFile, nil
}

// nextMigrationNumber returns one past the highest numbered file in dir.
func nextMigrationNumber(dir string) int {
	files, err := os.ReadDir(dir)
	if err != nil {
		return 1
	}

	maxNum := 0
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		var num int
		if _, err := fmt.Sscanf(file.Name(), "%d_", &num); err == nil && num > maxNum {
			maxNum = num
		}
	}

	return maxNum + 1
}
