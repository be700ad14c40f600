package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/election/internal/adapters/clock"
	"github.com/vncsmyrnk/election/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/election/internal/config"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/services"
)

// tally replays the postgres ledger into a fresh election and prints the
// resulting candidate list. Replay fails if the ledger is inconsistent, so
// this doubles as a ledger audit.
func main() {
	pg := config.LoadPostgres()

	var admin string
	flag.StringVar(&admin, "admin", os.Getenv("ELECTION_ADMIN"), "Administrator address the ledger was written under")
	flag.StringVar(&pg.Host, "db-host", pg.Host, "Database host")
	flag.StringVar(&pg.Port, "db-port", pg.Port, "Database port")
	flag.StringVar(&pg.User, "db-user", pg.User, "Database user")
	flag.StringVar(&pg.Password, "db-pass", pg.Password, "Database password")
	flag.StringVar(&pg.DBName, "db-name", pg.DBName, "Database name")
	flag.Parse()

	if admin == "" {
		slog.Error("an administrator address is required", "error", config.ErrMissingAdmin)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", pg.ConnString())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	election := services.NewElectionService(domain.Address(admin), postgres.NewLedgerRepository(db), clock.System{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	slog.Info("replaying ledger")
	if err := election.Replay(ctx); err != nil {
		slog.Error("ledger replay failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(election.GetAllCandidates(ctx)); err != nil {
		slog.Error("failed to write tally", "error", err)
		os.Exit(1)
	}
}
