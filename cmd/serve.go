package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Achutha2207/portfolio/internal/analytics"
	"github.com/Achutha2207/portfolio/internal/logging"
	"github.com/Achutha2207/portfolio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, c, err := loadAll()
		if err != nil {
			return err
		}
		gin.SetMode(cfg.GinMode)

		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		stats, err := analytics.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening analytics database: %w", err)
		}
		defer stats.Close()
		logger.Info("visitor tracking enabled with hashed IP addresses", zap.String("database", cfg.DatabasePath))
		if cfg.AdminPassword == "" {
			logger.Warn("admin dashboard disabled; set PORTFOLIO_ADMIN_PASSWORD to enable it")
		}

		srv, err := server.New(cfg, c, stats, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
