package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Achutha2207/portfolio/internal/catalog"
	"github.com/Achutha2207/portfolio/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio: about, projects, resume, certificates and contact",
	Long: `portfolio serves a personal portfolio site over HTTP, or shows the same
content in the terminal. Content comes from a YAML catalog; settings come
from portfolio.yml, .env and PORTFOLIO_* environment variables.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
}

// loadAll reads the config and the catalog it points at.
func loadAll() (*config.Config, *catalog.Catalog, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cfg, c, nil
}
