package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotel_admin/internal/adapters/hotelapi"
	"hotel_admin/internal/adapters/observability"
	redisad "hotel_admin/internal/adapters/redis"
	"hotel_admin/internal/app"
	"hotel_admin/internal/domain"
	"hotel_admin/internal/shared"
	mysqlrepo "hotel_admin/internal/storage/mysql"
)

var (
	// Global flags
	apiBase  string
	apiToken string
	timeout  time.Duration
	asJSON   bool

	cfg     shared.Config
	console *app.Console
	refs    *app.ReferenceService
	reg     *app.RegistrationService
	cleanup []func()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hoteladmin",
	Short: "Hotel admin console for the hotel registration API",
	Long: `hoteladmin registers hotels and manages amenities against the hotel REST API.

Authenticate once with 'hoteladmin login' and export the printed token as
HOTEL_API_TOKEN, or pass --token on every call.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = shared.Load()
		if apiBase != "" {
			cfg.APIBase = apiBase
		}
		if apiToken != "" {
			cfg.APIToken = apiToken
		}
		log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, os.Stderr)
		return wire(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		for _, f := range cleanup {
			f()
		}
		cleanup = nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "Hotel API base URL (or set HOTEL_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Bearer token (or set HOTEL_API_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerAdminCmd)
	rootCmd.AddCommand(hotelsCmd)
	rootCmd.AddCommand(amenitiesCmd)
	rootCmd.AddCommand(dashboardCmd)
}

// wire builds the console from configuration. Redis and MySQL are optional.
func wire(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := hotelapi.New(cfg.APIBase, cfg.APIToken, cfg.APIRPS, cfg.APITimeout())
	if err != nil {
		return err
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable; reference cache disabled")
			_ = rc.Close()
		} else {
			cache = rc
			cleanup = append(cleanup, func() { _ = rc.Close() })
		}
	}

	var journal domain.SubmissionJournal
	if cfg.MySQLDSN != "" {
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return fmt.Errorf("submission journal: %w", err)
		}
		cleanup = append(cleanup, func() { _ = db.Close() })
		journal = mysqlrepo.New(db)
	}

	refs = app.NewReferenceService(client, cache, cfg.CacheTTL())
	reg = app.NewRegistrationService(client, journal)
	console = app.NewConsole(client, refs, reg)
	return nil
}

// session resumes the console from the configured token.
func session() error {
	if cfg.APIToken == "" {
		return fmt.Errorf("not logged in: run 'hoteladmin login' and export HOTEL_API_TOKEN")
	}
	return console.Resume(cfg.APIToken, "", "")
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
