// Command createadmin bootstraps (or resets) an administrator account.
// The password can be passed by flag; when omitted it is read from the
// terminal with echo disabled.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/knowhowcafe/auth/internal/common"
	"github.com/knowhowcafe/auth/internal/server"
	"github.com/knowhowcafe/auth/internal/server/config"
	"github.com/knowhowcafe/auth/internal/server/models"
	"github.com/knowhowcafe/auth/internal/server/password"
	"github.com/knowhowcafe/auth/internal/server/repositories/repomanager"
)

func main() {

	var email, name, plainPassword string
	flag.StringVar(&email, "email", "", "admin email (required)")
	flag.StringVar(&name, "name", "Admin", "admin display name")
	flag.StringVar(&plainPassword, "password", "", "admin password (prompted when omitted)")
	flag.Parse()

	if email == "" {
		flag.Usage()
		os.Exit(2)
	}

	server.LoadEnv()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	applyEnvDSN(cfg)

	if plainPassword == "" {
		var err error
		plainPassword, err = promptPassword()
		if err != nil {
			log.Fatalf("error reading password: %v", err)
		}
	}
	if err := password.ValidateStrength(plainPassword); err != nil {
		log.Fatalf("password must be at least %d characters long", password.MinLength)
	}

	ctx := context.Background()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	if err := upsertAdmin(ctx, m, db, email, name, plainPassword); err != nil {
		log.Fatalf("error creating admin: %v", err)
	}
}

func applyEnvDSN(cfg *config.Config) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// upsertAdmin creates the account, or resets name and password when the
// email is already registered.
func upsertAdmin(ctx context.Context, m repomanager.RepositoryManager, db *sql.DB,
	email, name, plainPassword string) error {

	email = common.NormalizeEmail(email)

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}

	users := m.Users(db)

	existing, err := users.GetByEmail(ctx, email)
	if err == nil {
		log.Printf("admin %s already exists, updating password", email)
		return users.UpdatePasswordHash(ctx, existing.ID, hash)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	created, err := users.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	log.Printf("admin %s created (id %s)", created.Email, created.ID)
	return nil
}
