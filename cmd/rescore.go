package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/store"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore <deal-id>",
	Short: "Rerun the scoring pass for one deal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		deal, err := eng.RescoreDeal(ctx, args[0])
		if err != nil {
			return err
		}

		zap.L().Info("deal rescored",
			zap.String("deal_id", deal.ID),
			zap.Int("overall", deal.OverallScore),
			zap.String("status", string(deal.Status)),
		)
		return printJSON(deal)
	},
}

var (
	rescoreAllAthlete     string
	rescoreAllState       string
	rescoreAllConcurrency int
)

var rescoreAllCmd = &cobra.Command{
	Use:   "rescore-all",
	Short: "Rerun scoring for every deal matching a filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		concurrency := rescoreAllConcurrency
		if concurrency == 0 {
			concurrency = cfg.Batch.MaxConcurrentDeals
		}

		n, err := eng.RescoreAll(ctx, store.DealFilter{
			AthleteID: rescoreAllAthlete,
			State:     model.SubmissionState(rescoreAllState),
		}, concurrency)
		if err != nil {
			return err
		}
		return printJSON(map[string]int{"rescored": n})
	},
}

func init() {
	rescoreAllCmd.Flags().StringVar(&rescoreAllAthlete, "athlete", "", "filter by athlete ID")
	rescoreAllCmd.Flags().StringVar(&rescoreAllState, "state", "", "filter by submission state")
	rescoreAllCmd.Flags().IntVar(&rescoreAllConcurrency, "concurrency", 0, "parallel rescores (default from config)")

	rootCmd.AddCommand(rescoreCmd, rescoreAllCmd)
}
