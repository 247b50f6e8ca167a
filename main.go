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

	"teamprompt/config"
	"teamprompt/internal/api"
	"teamprompt/internal/app"
	"teamprompt/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg         *config.Config
	backendFlag string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "teamprompt",
	Short:         "Team prompt library",
	Long:          "Manage a shared prompt library: serve the HTTP API or run one-off pack, validation and analytics commands.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if backendFlag != "" {
			loaded.Backend = backendFlag
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		// One-off commands stay quiet unless asked.
		if cmd != serveCmd && !verbose {
			loaded.LogLevel = "WARN"
			loaded.LogFilename = ""
		}
		if err := logger.InitLogger(&logger.Config{
			Level:      loaded.LogLevel,
			Filename:   loaded.LogFilename,
			MaxSize:    loaded.LogMaxSize,
			MaxBackups: loaded.LogMaxBackups,
			MaxAge:     loaded.LogMaxAge,
			Compress:   loaded.LogCompress,
		}); err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Persistence backend: auto, remote or local (overrides BACKEND)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at the configured level for one-off commands")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openApp selects storage for the current command.
func openApp(ctx context.Context) (*app.App, error) {
	return app.Open(ctx, cfg, logger.Log)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(cfg, a.Library, logger.Named("http")),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("backend", string(a.Library.Repo.Backend())))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
