package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and manage jurisdiction rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active jurisdiction rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		return printJSON(eng.Rules().All())
	},
}

var rulesLoadFile string

var rulesLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Validate a rules YAML file and persist it to the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		list, err := rules.LoadFile(rulesLoadFile)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}
		if err := st.ReplaceRules(ctx, list); err != nil {
			return err
		}

		zap.L().Info("rules replaced",
			zap.String("file", rulesLoadFile),
			zap.Int("count", len(list)),
		)
		return printJSON(map[string]int{"loaded": len(list)})
	},
}

func init() {
	rulesLoadCmd.Flags().StringVar(&rulesLoadFile, "file", "", "path to rules YAML (required)")
	_ = rulesLoadCmd.MarkFlagRequired("file")

	rulesCmd.AddCommand(rulesListCmd, rulesLoadCmd)
	rootCmd.AddCommand(rulesCmd)
}
