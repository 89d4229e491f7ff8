package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/store"
)

var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Create and inspect NIL deals",
}

var dealsCreateFacts string

var dealsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Score deal facts and create a new deal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		facts, err := readFactsFile(dealsCreateFacts)
		if err != nil {
			return err
		}

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		deal, err := eng.CreateDeal(ctx, facts)
		if err != nil {
			return eris.Wrap(err, "create deal")
		}

		zap.L().Info("deal created",
			zap.String("deal_id", deal.ID),
			zap.Int("overall", deal.OverallScore),
			zap.String("status", string(deal.Status)),
		)
		return printJSON(deal)
	},
}

var dealsGetCmd = &cobra.Command{
	Use:   "get <deal-id>",
	Short: "Fetch one deal with its score breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		deal, err := eng.GetDeal(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(deal)
	},
}

var (
	dealsListAthlete string
	dealsListState   string
	dealsListStatus  string
	dealsListLimit   int
)

var dealsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deals by athlete, state or status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		deals, err := eng.ListDeals(ctx, store.DealFilter{
			AthleteID: dealsListAthlete,
			State:     model.SubmissionState(dealsListState),
			Status:    model.OverallStatus(dealsListStatus),
			Limit:     dealsListLimit,
		})
		if err != nil {
			return err
		}
		return printJSON(deals)
	},
}

var dealsEventsCmd = &cobra.Command{
	Use:   "events <deal-id>",
	Short: "Show the submission audit trail for a deal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := eng.ListEvents(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(events)
	},
}

func init() {
	dealsCreateCmd.Flags().StringVar(&dealsCreateFacts, "facts", "", "path to deal facts JSON, or - for stdin (required)")
	_ = dealsCreateCmd.MarkFlagRequired("facts")

	dealsListCmd.Flags().StringVar(&dealsListAthlete, "athlete", "", "filter by athlete ID")
	dealsListCmd.Flags().StringVar(&dealsListState, "state", "", "filter by submission state")
	dealsListCmd.Flags().StringVar(&dealsListStatus, "status", "", "filter by overall status")
	dealsListCmd.Flags().IntVar(&dealsListLimit, "limit", 100, "max deals to return")

	dealsCmd.AddCommand(dealsCreateCmd, dealsGetCmd, dealsListCmd, dealsEventsCmd)
	rootCmd.AddCommand(dealsCmd)
}
