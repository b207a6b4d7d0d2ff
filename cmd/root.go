package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justicejet/defensepack/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "defensepack",
	Short: "Rapid defense packs for pro bono attorneys",
	Long:  "Extracts case documents, researches supporting law with Exa, and generates a fact pattern, issue spotter, defense checklist and deadline calendar with a chat-completion model.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
