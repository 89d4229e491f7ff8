package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/model"
)

var workflowActor string

var submitCmd = &cobra.Command{
	Use:   "submit <deal-id>",
	Short: "Submit a deal for compliance review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		deal, err := eng.SubmitForReview(ctx, args[0], workflowActor)
		if err != nil {
			return err
		}

		zap.L().Info("deal submitted",
			zap.String("deal_id", deal.ID),
			zap.String("state", string(deal.Submission.State)),
		)
		return printJSON(deal)
	},
}

var (
	reviewDecision string
	reviewNotes    string
)

var reviewCmd = &cobra.Command{
	Use:   "review <deal-id>",
	Short: "Record a compliance office decision on a deal under review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		deal, err := eng.ApplyReviewDecision(ctx, args[0], model.ReviewDecision(reviewDecision), workflowActor, reviewNotes)
		if err != nil {
			return err
		}

		zap.L().Info("review decision applied",
			zap.String("deal_id", deal.ID),
			zap.String("decision", reviewDecision),
			zap.String("state", string(deal.Submission.State)),
		)
		return printJSON(deal)
	},
}

var completeNotes string

var completeConditionsCmd = &cobra.Command{
	Use:   "complete-conditions <deal-id>",
	Short: "Mark a conditional approval's conditions as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		deal, err := eng.CompleteConditions(ctx, args[0], workflowActor, completeNotes)
		if err != nil {
			return err
		}
		return printJSON(deal)
	},
}

var respondNotes string

var respondCmd = &cobra.Command{
	Use:   "respond <deal-id>",
	Short: "Respond to a revision request and requeue the deal for review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		deal, err := eng.RespondToRevision(ctx, args[0], workflowActor, respondNotes)
		if err != nil {
			return err
		}

		zap.L().Info("revision response recorded",
			zap.String("deal_id", deal.ID),
			zap.String("state", string(deal.Submission.State)),
		)
		return printJSON(deal)
	},
}

var resubmitFacts string

var resubmitCmd = &cobra.Command{
	Use:   "resubmit <deal-id>",
	Short: "Create a corrected deal superseding a rejected or revision-requested one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		facts, err := readFactsFile(resubmitFacts)
		if err != nil {
			return err
		}

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		deal, err := eng.ResubmitDeal(ctx, args[0], facts)
		if err != nil {
			return err
		}

		zap.L().Info("deal resubmitted",
			zap.String("old_deal_id", args[0]),
			zap.String("new_deal_id", deal.ID),
			zap.Int("resubmission_count", deal.ResubmissionCount),
		)
		return printJSON(deal)
	},
}

func init() {
	for _, c := range []*cobra.Command{submitCmd, reviewCmd, completeConditionsCmd, respondCmd} {
		c.Flags().StringVar(&workflowActor, "actor", "", "user recorded in the audit trail")
	}

	reviewCmd.Flags().StringVar(&reviewDecision, "decision", "", "approved, approved_with_conditions, rejected or revision_requested (required)")
	reviewCmd.Flags().StringVar(&reviewNotes, "notes", "", "reviewer notes")
	_ = reviewCmd.MarkFlagRequired("decision")

	completeConditionsCmd.Flags().StringVar(&completeNotes, "notes", "", "completion notes")

	respondCmd.Flags().StringVar(&respondNotes, "notes", "", "revision response notes (required)")
	_ = respondCmd.MarkFlagRequired("notes")

	resubmitCmd.Flags().StringVar(&resubmitFacts, "facts", "", "path to corrected deal facts JSON, or - for stdin (required)")
	_ = resubmitCmd.MarkFlagRequired("facts")

	rootCmd.AddCommand(submitCmd, reviewCmd, completeConditionsCmd, respondCmd, resubmitCmd)
}
