package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "nil-compliance",
	Short: "NIL deal compliance evaluation and submission workflow",
	Long:  "Scores NIL deals across six compliance dimensions, tracks disclosure deadlines per jurisdiction, and drives the school submission workflow from first submission through approval or resubmission.",
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
