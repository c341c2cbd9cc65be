package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nurpe/ppl-catering/internal/assignment"
	"github.com/nurpe/ppl-catering/internal/auth"
	"github.com/nurpe/ppl-catering/internal/busy"
	"github.com/nurpe/ppl-catering/internal/config"
	"github.com/nurpe/ppl-catering/internal/db"
	"github.com/nurpe/ppl-catering/internal/excel"
	httphandler "github.com/nurpe/ppl-catering/internal/http"
	"github.com/nurpe/ppl-catering/internal/http/middleware"
	"github.com/nurpe/ppl-catering/internal/logger"
	"github.com/nurpe/ppl-catering/internal/pdf"
	"github.com/nurpe/ppl-catering/internal/repository"
	"github.com/nurpe/ppl-catering/internal/service"
)

const housekeepingInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	catalogRepo := repository.NewCatalogRepository(database)
	assignmentRepo := repository.NewAssignmentRepository(database)
	minuteRepo := repository.NewMinuteRepository(database)

	drafts := assignment.NewDraftStore(cfg.Drafts.TTL)
	contractService := service.NewContractService(contractRepo, catalogRepo)
	services := httphandler.Services{
		Contracts:   contractService,
		Catalog:     service.NewCatalogService(catalogRepo, contractRepo),
		Assignments: service.NewAssignmentService(contractRepo, catalogRepo, assignmentRepo, drafts),
		Minutes:     service.NewMinuteService(minuteRepo, contractRepo, catalogRepo),
		Exports:     service.NewExportService(contractService, catalogRepo, assignmentRepo, excel.NewGenerator(), pdf.NewGenerator()),
	}

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	handler := httphandler.NewHandler(services, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), httphandler.RouterOptions{
		Environment: cfg.Environment,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		RateLimiter: limiter,
		Tracker:     busy.NewTracker(),
		Log:         log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(housekeepingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := drafts.Prune(now); n > 0 {
					log.Debug().Int("drafts", n).Msg("expired drafts pruned")
				}
				limiter.Cleanup(now, housekeepingInterval)
			}
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting catering service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("catering service stopped")
}
