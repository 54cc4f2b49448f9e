package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/Theijiii/plms-sys-sub004/internal/config"
)

const usage = "usage: migrate <up | down | steps <n> | version>"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	m, err := migrate.New("file://db/migrations", cfg.DB.DSN())
	if err != nil {
		log.Fatalf("opening migrations: %v", err)
	}
	defer m.Close()

	if err := run(m, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migrating up: %w", err)
		}
		log.Println("permit schema is up to date")

	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migrating down: %w", err)
		}
		log.Println("permit schema rolled back")

	case "steps":
		if len(args) < 2 {
			return fmt.Errorf("steps needs a count: %s", usage)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("steps count %q is not a number", args[1])
		}
		if err := m.Steps(n); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("stepping %d: %w", n, err)
		}
		log.Printf("applied %d step(s)", n)

	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("reading version: %w", err)
		}
		state := "clean"
		if dirty {
			state = "dirty"
		}
		fmt.Printf("schema version %d (%s)\n", v, state)

	default:
		return fmt.Errorf("unknown command %q: %s", args[0], usage)
	}
	return nil
}
