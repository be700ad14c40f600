package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vncsmyrnk/election/internal/adapters/clock"
	"github.com/vncsmyrnk/election/internal/adapters/handler/http"
	"github.com/vncsmyrnk/election/internal/adapters/observer/audit"
	"github.com/vncsmyrnk/election/internal/adapters/observer/metrics"
	"github.com/vncsmyrnk/election/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/election/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/election/internal/adapters/token"
	"github.com/vncsmyrnk/election/internal/config"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
	"github.com/vncsmyrnk/election/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address")
	flag.StringVar(&cfg.Ledger, "ledger", cfg.Ledger, "Ledger backend (memory or postgres)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	var ledger ports.Ledger
	switch cfg.Ledger {
	case config.LedgerPostgres:
		db, err := sql.Open("postgres", cfg.Postgres.ConnString())
		if err != nil {
			logger.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("database ping failed", "error", err)
			os.Exit(1)
		}
		ledger = postgres.NewLedgerRepository(db)
	default:
		logger.Warn("using in-memory ledger, state is lost on restart")
		ledger = memory.NewLedger()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	election := services.NewElectionService(
		domain.Address(cfg.Admin),
		ledger,
		clock.System{},
		services.WithLogger(logger),
		services.WithObserver(audit.NewLogger(logger)),
		services.WithObserver(metrics.New(registry)),
	)

	replayCtx, cancelReplay := context.WithTimeout(context.Background(), time.Minute)
	err = election.Replay(replayCtx)
	cancelReplay()
	if err != nil {
		logger.Error("failed to replay ledger", "error", err)
		os.Exit(1)
	}

	verifier := token.NewHMAC([]byte(cfg.JWTSecret))
	handler := http.NewHandler(http.Handlers{
		Candidates:    http.NewCandidateHandler(election, logger),
		Voters:        http.NewVoterHandler(election, logger),
		VotingPeriod:  http.NewVotingPeriodHandler(election, logger),
		Votes:         http.NewVoteHandler(election, logger),
		RequireCaller: http.RequireCaller(verifier, logger),
		Metrics:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "admin", cfg.Admin, "ledger", cfg.Ledger)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
