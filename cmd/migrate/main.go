// Migration CLI over the embedded SQL files: -direction up|down, -steps N.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/marketbytes-devops/alameinmovers/internal/config"
	"github.com/marketbytes-devops/alameinmovers/internal/migrations"
)

func main() {
	config.LoadDotEnvUp(8)

	var (
		direction = flag.String("direction", "up", "up|down")
		steps     = flag.Int("steps", 0, "number of steps (0 = all)")
	)
	flag.Parse()

	dbURL := os.Getenv("POSTGRES_DSN")
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "POSTGRES_DSN is required")
		os.Exit(2)
	}

	m, err := migrations.New(dbURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "migrate init error:", err)
		os.Exit(1)
	}
	defer m.Close()

	switch *direction {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	default:
		fmt.Fprintln(os.Stderr, "invalid -direction, must be up|down")
		os.Exit(2)
	}

	if err != nil && err != migrate.ErrNoChange {
		fmt.Fprintln(os.Stderr, "migration error:", err)
		os.Exit(1)
	}

	fmt.Println("migrations:", *direction, "ok")
}
