package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/handlers"
	"tribute-portal/internal/logging"
	"tribute-portal/internal/store"
	ws "tribute-portal/internal/websocket"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "tribute-portal",
	Short:         "Tribute memorial portal API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory holding config.env")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func setup() (Config, *store.Store, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return config, nil, fmt.Errorf("cannot load config: %w", err)
	}
	logging.Setup(config.LogLevel)
	if err := config.validate(); err != nil {
		return config, nil, err
	}

	st, err := store.Open(config.DBDriver, config.DSN)
	if err != nil {
		return config, nil, err
	}
	slog.Info("connected to database", "driver", config.DBDriver)
	return config, st, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_, st, err := setup()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(cmd.Context()); err != nil {
		return err
	}
	slog.Info("schema is up to date")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	config, st, err := setup()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	fee, _ := config.feePercent()
	hub := ws.NewHub()
	go hub.Run(ctx)

	if config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handlers.NewRouter(handlers.Deps{
		Backend: backend.NewClient(backend.Config{
			BaseURL: config.BackendURL,
			Timeout: config.BackendTimeout,
		}),
		Store:         st,
		Hub:           hub,
		JWTSecret:     config.JWTSecret,
		WebhookSecret: config.WebhookSecret,
		FeePercent:    fee,
		CORSOrigins:   config.corsOrigins(),
		ProfileTTL:    config.ProfileTTL,
	})

	srv := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", config.HTTPAddr, "backend", config.BackendURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
