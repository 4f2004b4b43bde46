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

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	"github.com/BruksfildServices01/agendaja-guias/internal/cache"
	"github.com/BruksfildServices01/agendaja-guias/internal/config"
	dbpkg "github.com/BruksfildServices01/agendaja-guias/internal/db"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/followup"
	infraRepo "github.com/BruksfildServices01/agendaja-guias/internal/infra/repository"
	"github.com/BruksfildServices01/agendaja-guias/internal/logger"
	"github.com/BruksfildServices01/agendaja-guias/internal/routes"
	"github.com/BruksfildServices01/agendaja-guias/internal/timezone"
	ucGuia "github.com/BruksfildServices01/agendaja-guias/internal/usecase/guia"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agendaja",
		Short: "AgendaJá: guias e pedidos",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(expireGuidesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ======================================================
// COMMANDS
// ======================================================

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel, cfg.IsDev())

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			log.Info().Msg("migrations applied")
			return nil
		},
	}
}

func expireGuidesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire-guides",
		Short: "Persist expirada on issued guides past the 30-day window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel, cfg.IsDev())

			deps, cleanup, err := buildDeps(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := ucGuia.NewPersistExpirations(deps.Repo, deps.Audit, log).Execute(cmd.Context())
			if err != nil {
				return err
			}

			keys := cache.KeysForGuides(res.GuideIDs, res.SaleIDs...)
			if err := deps.Cache.Invalidate(cmd.Context(), keys...); err != nil {
				log.Warn().Err(err).Msg("cache invalidation failed")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "expired=%d skipped=%d\n", res.Expired, res.Skipped)
			return nil
		},
	}
}

// ======================================================
// WIRING
// ======================================================

// buildDeps monta repositório, auditoria, cache e follow-up conforme a configuração.
// cleanup drena a fila de auditoria e fecha as conexões.
func buildDeps(cfg *config.Config, log zerolog.Logger) (routes.Deps, func(), error) {
	var (
		repo    domain.Repository
		sink    audit.Sink
		reader  audit.Reader
		closers []func()
	)
	var store cache.Store = cache.Noop{}
	var recorder followup.Recorder = followup.Noop{}

	if err := timezone.Configure(cfg.Timezone); err != nil {
		return routes.Deps{}, nil, err
	}

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		repo = infraRepo.NewGuiaMemoryRepository()
		mem := audit.NewMemoryLogger()
		sink, reader = mem, mem
		store = cache.NewMemoryStore()
		log.Warn().Msg("using in-memory storage; data is lost on restart")

	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return routes.Deps{}, nil, err
		}
		if err := dbpkg.Migrate(db); err != nil {
			return routes.Deps{}, nil, err
		}
		repo = infraRepo.NewGuiaGormRepository(db)
		gormAudit := audit.New(db)
		sink, reader = gormAudit, gormAudit

		if sqlDB, err := db.DB(); err == nil {
			closers = append(closers, func() { _ = sqlDB.Close() })
		}
	}

	if cfg.RedisURL != "" {
		rs, err := cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return routes.Deps{}, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, cache disabled")
			_ = rs.Close()
		} else {
			store = rs
			closers = append(closers, func() { _ = rs.Close() })
		}
	}

	if cfg.FollowUpEnabled() {
		recorder = followup.NewS3Recorder(followup.S3Options{
			Bucket:    cfg.FollowUpBucket,
			Region:    cfg.FollowUpRegion,
			Endpoint:  cfg.FollowUpEndpoint,
			AccessKey: cfg.AWSAccessKeyID,
			SecretKey: cfg.AWSSecretKey,
		})
	}

	dispatcher := audit.NewDispatcher(sink, log)

	cleanup := func() {
		dispatcher.Close()
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	return routes.Deps{
		Config:      cfg,
		Repo:        repo,
		Audit:       dispatcher,
		AuditReader: reader,
		Cache:       store,
		FollowUp:    recorder,
		Log:         log,
	}, cleanup, nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.IsDev())

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, cleanup, err := buildDeps(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
