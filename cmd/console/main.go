package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_admin/internal/adapters/hotelapi"
	server "hotel_admin/internal/adapters/http_server"
	"hotel_admin/internal/adapters/observability"
	redisad "hotel_admin/internal/adapters/redis"
	"hotel_admin/internal/app"
	"hotel_admin/internal/domain"
	"hotel_admin/internal/shared"
	mysqlrepo "hotel_admin/internal/storage/mysql"
)

const wizardIdle = 2 * time.Hour

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	client, err := hotelapi.New(cfg.APIBase, cfg.APIToken, cfg.APIRPS, cfg.APITimeout())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize hotel API client")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable; reference cache disabled")
		} else {
			cache = rc
			defer rc.Close()
		}
	}

	var journal domain.SubmissionJournal
	if cfg.MySQLDSN != "" {
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("submission journal unavailable")
		}
		defer db.Close()
		journal = mysqlrepo.New(db)
		log.Info().Msg("database connection ok")
	}

	wizards := server.NewWizardStore()
	go func() {
		t := time.NewTicker(10 * time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := wizards.Sweep(wizardIdle); n > 0 {
					log.Info().Int("dropped", n).Msg("idle wizards swept")
				}
			}
		}
	}()

	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		API:     client,
		Refs:    app.NewReferenceService(client, cache, cfg.CacheTTL()),
		Reg:     app.NewRegistrationService(client, journal),
		Wizards: wizards,
		Edits:   app.NewHotelEdits(),
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("upstream", cfg.APIBase).Msg("console listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("console stopped")
}
