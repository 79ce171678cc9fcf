// Command adduser provisions an account. There is no public sign-up.
//
//	adduser -username budi -name "Budi Santoso"
//
// The password is prompted for unless -password is given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/AnshRaj112/laporan-backend/internal/config"
	"github.com/AnshRaj112/laporan-backend/internal/database"
	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/AnshRaj112/laporan-backend/internal/repository"
	"github.com/AnshRaj112/laporan-backend/internal/services"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type registrar interface {
	Register(ctx context.Context, username, password, name string) (*models.User, error)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	ctx := context.Background()

	db, err := database.ConnectPostgres(ctx, cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	logger := logging.NewJSON(os.Stderr, cfg.LogLevel)
	auth := services.NewAuthService(repository.NewUserRepository(db), nil, logger)
	if err := run(ctx, os.Args[1:], os.Stdout, auth); err != nil {
		fmt.Fprintln(os.Stderr, err)
		db.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, reg registrar) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(out)
	username := fs.String("username", "", "login name (3-20 letters, digits or underscores)")
	name := fs.String("name", "", "display name (defaults to the username)")
	password := fs.String("password", "", "password; prompted for when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*username) == "" {
		fs.Usage()
		return errors.New("-username is required")
	}

	pw := *password
	if pw == "" {
		fmt.Fprintln(out, "Enter password")
		b, err := readPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		pw = string(b)
	}

	u, err := reg.Register(ctx, *username, pw, strings.TrimSpace(*name))
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			return errors.New("User already exists")
		}
		return err
	}
	fmt.Fprintf(out, "✅ User %s created (%s)\n", u.Username, u.ID)
	return nil
}
