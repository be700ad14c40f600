package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	LedgerMemory   = "memory"
	LedgerPostgres = "postgres"
)

var (
	ErrMissingAdmin     = errors.New("ELECTION_ADMIN is required")
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
)

type Config struct {
	Admin     string
	HTTPAddr  string
	JWTSecret string
	Ledger    string
	LogLevel  slog.Level
	Postgres  Postgres
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DBName)
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	loadDotEnv()
	return FromEnv(os.Getenv)
}

// LoadPostgres reads only the database settings, for tools that never act as
// the election service.
func LoadPostgres() Postgres {
	loadDotEnv()
	return PostgresFromEnv(os.Getenv)
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}
}

func PostgresFromEnv(getenv func(string) string) Postgres {
	return Postgres{
		Host:     getenv("POSTGRES_HOST"),
		Port:     orDefault(getenv("POSTGRES_PORT"), "5432"),
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		DBName:   getenv("POSTGRES_DB"),
	}
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Admin:     strings.TrimSpace(getenv("ELECTION_ADMIN")),
		HTTPAddr:  getenv("HTTP_ADDR"),
		JWTSecret: getenv("JWT_SECRET"),
		Ledger:    strings.ToLower(getenv("LEDGER")),
		Postgres:  PostgresFromEnv(getenv),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = "0.0.0.0:8080"
	}
	if cfg.Ledger == "" {
		cfg.Ledger = LedgerMemory
		if cfg.Postgres.Host != "" {
			cfg.Ledger = LedgerPostgres
		}
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(orDefault(getenv("LOG_LEVEL"), "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if cfg.Admin == "" {
		return Config{}, ErrMissingAdmin
	}
	// Tokens signed with an empty key can be forged by anyone.
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	if cfg.Ledger != LedgerMemory && cfg.Ledger != LedgerPostgres {
		return Config{}, fmt.Errorf("unknown LEDGER %q", cfg.Ledger)
	}
	if cfg.Ledger == LedgerPostgres && cfg.Postgres.Host == "" {
		return Config{}, errors.New("POSTGRES_HOST is required for the postgres ledger")
	}
	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
