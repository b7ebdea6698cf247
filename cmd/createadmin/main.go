// Bootstrap CLI: create a dashboard user so the first operator can log in.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/marketbytes-devops/alameinmovers/internal/config"
	"github.com/marketbytes-devops/alameinmovers/internal/db"
	"github.com/marketbytes-devops/alameinmovers/internal/users"
	"github.com/marketbytes-devops/alameinmovers/internal/util"
)

func main() {
	config.LoadDotEnvUp(8)

	var (
		email     = flag.String("email", "", "login email (required)")
		password  = flag.String("password", "", "initial password (required)")
		role      = flag.String("role", string(users.RoleAdmin), "admin|staff")
		firstName = flag.String("first-name", "", "first name")
		lastName  = flag.String("last-name", "", "last name")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-email and -password are required")
		os.Exit(2)
	}
	r := users.Role(*role)
	if r != users.RoleAdmin && r != users.RoleStaff {
		fmt.Fprintln(os.Stderr, "-role must be admin or staff")
		os.Exit(2)
	}
	if err := util.ValidatePassword(*password); err != nil {
		fmt.Fprintln(os.Stderr, "password:", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		fmt.Fprintln(os.Stderr, "postgres:", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := util.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash:", err)
		os.Exit(1)
	}

	u, err := users.NewRepo(pool).Create(ctx, *email, hash, r, *firstName, *lastName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create:", err)
		os.Exit(1)
	}
	fmt.Printf("created %s user %s (%s)\n", u.Role, u.Email, u.ID)
}
