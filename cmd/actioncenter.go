package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/nil-compliance/internal/model"
)

var (
	actionAthlete   string
	actionReminders string
)

var actionCenterCmd = &cobra.Command{
	Use:   "action-center",
	Short: "Build the prioritized todo list for an athlete",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var reminders []model.Reminder
		if actionReminders != "" {
			data, err := os.ReadFile(actionReminders)
			if err != nil {
				return eris.Wrapf(err, "read reminders %s", actionReminders)
			}
			if err := json.Unmarshal(data, &reminders); err != nil {
				return eris.Wrap(err, "parse reminders JSON")
			}
		}

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		todos, err := eng.BuildActionCenter(ctx, actionAthlete, reminders)
		if err != nil {
			return err
		}
		return printJSON(todos)
	},
}

var summaryAthlete string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the athlete's compliance protection summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sum, err := eng.Summarize(ctx, summaryAthlete)
		if err != nil {
			return err
		}
		return printJSON(sum)
	},
}

var deadlineCmd = &cobra.Command{
	Use:   "deadline <deal-id>",
	Short: "Show the disclosure deadline view for a deal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		info, err := eng.ComputeDeadline(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

func init() {
	actionCenterCmd.Flags().StringVar(&actionAthlete, "athlete", "", "athlete ID (required)")
	actionCenterCmd.Flags().StringVar(&actionReminders, "reminders", "", "path to reminders JSON")
	_ = actionCenterCmd.MarkFlagRequired("athlete")

	summaryCmd.Flags().StringVar(&summaryAthlete, "athlete", "", "athlete ID (required)")
	_ = summaryCmd.MarkFlagRequired("athlete")

	rootCmd.AddCommand(actionCenterCmd, summaryCmd, deadlineCmd)
}
