package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/config"
)

// Seed creates the bootstrap admin account when the users table is empty.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := cfg.SeedAdminEmail
	password := cfg.SeedAdminPassword
	if email == "" {
		email = "admin@madmenmarketing.in"
	}
	if password == "" {
		if cfg.Environment == "production" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD is required to seed in production")
		}
		password = "admin123"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (name, email, password_hash, role, status)
    VALUES ($1, $2, $3, $4, 'Active')
  `, "Administrator", email, hash, auth.RoleAdmin)
	if err != nil {
		return err
	}

	slog.Info("seeded admin user", "email", email)
	return nil
}
