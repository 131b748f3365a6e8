package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"food_orders_backend/internal/config"
	"food_orders_backend/internal/database"
	"food_orders_backend/internal/repositories"
	"food_orders_backend/internal/router"
	"food_orders_backend/internal/services"
	"food_orders_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (and the tracking simulator when enabled)",
		RunE:  runServe,
	}
}

// openStores picks the store driver. The returned closer releases the DB pool, if any.
func openStores(ctx context.Context, cfg *config.Config) (repositories.Stores, func(), error) {
	if cfg.StoreDriver == config.StorePostgres {
		db, err := database.Open(ctx, cfg.DB.DSN())
		if err != nil {
			return repositories.Stores{}, nil, err
		}
		if err := database.ApplyMigrations(ctx, db); err != nil {
			db.Close()
			return repositories.Stores{}, nil, err
		}
		return repositories.NewPostgresStores(db), func() { closeDB(db) }, nil
	}

	seed := repositories.DemoTenantSeed(time.Now())
	if cfg.TenantSeedFile != "" {
		loaded, err := repositories.LoadTenantSeed(cfg.TenantSeedFile)
		if err != nil {
			return repositories.Stores{}, nil, err
		}
		seed = loaded
	}
	utils.LogInfo("Using in-memory store", map[string]interface{}{"tenants": len(seed.Tenants)})
	return repositories.NewMemoryStores(seed), func() {}, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		utils.LogError(err, "Error closing database")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	utils.InitLogger(cfg.Development())
	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTIssuer)
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.StoreDriver, err)
	}
	defer closeStores()

	bcryptCost := bcrypt.DefaultCost
	if cfg.Development() {
		bcryptCost = bcrypt.MinCost
	}
	svc := services.NewContainer(stores, services.Config{
		DefaultTenantID: cfg.DefaultTenantID,
		LookupOTP: services.LookupOTPConfig{
			TTL:         cfg.LookupOTPTTL,
			MaxAttempts: cfg.LookupOTPMaxAttempts,
			Debug:       cfg.LookupOTPDebug,
			BcryptCost:  bcryptCost,
		},
		SimulatorInterval: cfg.SimulatorInterval,
		AuditBuffer:       cfg.AuditBuffer,
	})
	defer svc.Close()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, svc)

	simDone := make(chan struct{})
	if cfg.SimulatorEnabled {
		go func() {
			defer close(simDone)
			svc.Simulator.Run(ctx)
		}()
	} else {
		close(simDone)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "store": cfg.StoreDriver, "env": cfg.Env})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		utils.LogInfo("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			stop()
			<-simDone
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Graceful shutdown failed")
	}
	stop()
	<-simDone
	utils.LogInfo("Server stopped")
	return nil
}
