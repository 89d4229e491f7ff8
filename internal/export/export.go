// Package export renders deal lists to the spreadsheet formats compliance
// offices actually ingest.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/nil-compliance/internal/model"
)

// Header is the column layout shared by both formats.
var Header = []string{
	"deal_id",
	"athlete_id",
	"counterpart",
	"deal_type",
	"compensation",
	"jurisdiction",
	"overall_score",
	"status",
	"pay_for_play_risk",
	"submission_state",
	"deadline",
	"submitted_at",
}

func dealRow(d model.Deal) []string {
	submitted := ""
	if d.Submission.SubmittedAt != nil {
		submitted = d.Submission.SubmittedAt.Format(time.RFC3339)
	}
	return []string{
		d.ID,
		d.Facts.AthleteID,
		d.Facts.CounterpartName,
		string(d.Facts.DealType),
		fmt.Sprintf("%.2f", d.Facts.Compensation),
		d.Facts.Jurisdiction,
		strconv.Itoa(d.OverallScore),
		string(d.Status),
		string(d.PayForPlayRisk),
		string(d.Submission.State),
		d.Submission.Deadline.Format(time.RFC3339),
		submitted,
	}
}

// WriteCSV streams the deals as CSV with a header row.
func WriteCSV(w io.Writer, deals []model.Deal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, d := range deals {
		if err := cw.Write(dealRow(d)); err != nil {
			return eris.Wrapf(err, "export: write csv row for deal %s", d.ID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteXLSX writes the deals to a single-sheet workbook at path.
func WriteXLSX(path string, deals []model.Deal) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Deals")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	hdr := sheet.AddRow()
	for _, col := range Header {
		hdr.AddCell().SetString(col)
	}
	for _, d := range deals {
		row := sheet.AddRow()
		for _, v := range dealRow(d) {
			row.AddCell().SetString(v)
		}
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}
