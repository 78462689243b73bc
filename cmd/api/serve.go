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
	"github.com/linskybing/accel-platform/internal/agent"
	"github.com/linskybing/accel-platform/internal/api/handlers"
	"github.com/linskybing/accel-platform/internal/api/middleware"
	"github.com/linskybing/accel-platform/internal/api/routes"
	"github.com/linskybing/accel-platform/internal/application"
	"github.com/linskybing/accel-platform/internal/config"
	"github.com/linskybing/accel-platform/internal/config/db"
	"github.com/linskybing/accel-platform/internal/cron"
	"github.com/linskybing/accel-platform/internal/metrics"
	"github.com/linskybing/accel-platform/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reservation sweeper",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().String("server-port", "8080", "HTTP listen port")
	cmd.Flags().Duration("sweep-interval", time.Minute, "How often expired quota reservations are rolled back")
	cmd.Flags().String("device-profile-seed-file", "", "YAML file of device profiles created at startup")
	cmd.Flags().String("attach-handle-pool-file", "", "YAML file mapping device resource providers to PCI addresses")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.Init(); err != nil {
				return err
			}
			log.Info("Migration completed")
			return nil
		},
	}
}

func newSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Roll back expired quota reservations once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.Init(); err != nil {
				return err
			}
			repos := repository.NewRepositories(db.DB)
			svcs := application.New(repos, nil, ledgerConfig())

			n, err := svcs.Quota.ExpireReservations(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expired %d reservations\n", n)
			return nil
		},
	}
}

func ledgerConfig() application.LedgerConfig {
	return application.LedgerConfig{
		ReservationExpire: config.QuotaReservationExpire,
		UntilRefresh:      config.QuotaUntilRefresh,
		MaxAge:            config.QuotaMaxAge,
		SyncRetries:       config.QuotaSyncRetries,
	}
}

func newDeviceAgent() (agent.DeviceAgent, error) {
	if config.AttachHandlePoolFile == "" {
		log.Warn("No attach handle pool configured, device handshakes are not programmed")
		return agent.Noop{}, nil
	}
	static, err := agent.LoadStatic(config.AttachHandlePoolFile)
	if err != nil {
		return nil, err
	}
	log.WithField("file", config.AttachHandlePoolFile).Info("Loaded attach handle pool")
	return static, nil
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Init(); err != nil {
		return err
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := metrics.InitMetrics(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	deviceAgent, err := newDeviceAgent()
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(db.DB)
	svcs := application.New(repos, deviceAgent, ledgerConfig())

	if config.DeviceProfileSeedFile != "" {
		entries, err := application.LoadSeedFile(config.DeviceProfileSeedFile)
		if err != nil {
			return err
		}
		n, err := svcs.DeviceProfile.Seed(ctx, entries)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"file": config.DeviceProfileSeedFile, "created": n}).Info("Device profiles seeded")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(config.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	routes.RegisterRoutes(router, handlers.New(svcs, repos))

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return cron.RunReservationSweeper(gctx, svcs.Quota, config.SweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
