package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Achutha2207/portfolio/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the portfolio in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, c, err := loadAll()
		if err != nil {
			return err
		}
		return tui.Run(c)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
