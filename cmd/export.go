package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/export"
	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/store"
)

var (
	exportOut     string
	exportFormat  string
	exportAthlete string
	exportState   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export deals to CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, st, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		deals, err := eng.ListDeals(ctx, store.DealFilter{
			AthleteID: exportAthlete,
			State:     model.SubmissionState(exportState),
		})
		if err != nil {
			return err
		}

		switch exportFormat {
		case "csv":
			f, err := os.Create(exportOut)
			if err != nil {
				return eris.Wrapf(err, "create %s", exportOut)
			}
			defer f.Close()
			if err := export.WriteCSV(f, deals); err != nil {
				return err
			}
		case "xlsx":
			if err := export.WriteXLSX(exportOut, deals); err != nil {
				return err
			}
		default:
			return eris.Errorf("unsupported format: %s", exportFormat)
		}

		zap.L().Info("export complete",
			zap.String("file", exportOut),
			zap.String("format", exportFormat),
			zap.Int("deals", len(deals)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv or xlsx")
	exportCmd.Flags().StringVar(&exportAthlete, "athlete", "", "filter by athlete ID")
	exportCmd.Flags().StringVar(&exportState, "state", "", "filter by submission state")
	_ = exportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(exportCmd)
}
