package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	JWTTTL            time.Duration
	Environment       string
	AllowedOrigins    []string
	MigrationsDir     string
	RunMigrations     bool
	RunSeed           bool
	SeedAdminEmail    string
	SeedAdminPassword string
	MaxBodyBytes      int64
	RateLimitPerMin   int
	TrustProxy        bool
	CompanyName       string
	CompanyAddress    string
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTTTL:            getEnvDuration("JWT_TTL", 12*time.Hour),
		Environment:       getEnv("APP_ENV", "development"),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", true),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		TrustProxy:        getEnvBool("TRUST_PROXY", false),
		CompanyName:       getEnv("COMPANY_NAME", "Madmen Marketing"),
		CompanyAddress:    getEnv("COMPANY_ADDRESS", "New Delhi, India"),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" && c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMin <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
