package actioncenter

import (
	"fmt"
	"time"

	"github.com/sells-group/nil-compliance/internal/model"
)

// Combined self-employment plus income tax planning rate for NIL earnings.
// Deliberately conservative; athletes true up at filing time.
const effectiveTaxRate = 0.25

// dueSoonWindow is how far ahead a quarterly payment counts as due soon.
const dueSoonWindow = 14 * 24 * time.Hour

// quarterDueDates returns the federal estimated-tax due dates for a tax
// year. Q4 falls in January of the following year.
func quarterDueDates(year int) [4]time.Time {
	return [4]time.Time{
		time.Date(year, time.April, 15, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.September, 15, 0, 0, 0, 0, time.UTC),
		time.Date(year+1, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

// EstimateQuarters projects the four estimated-tax installments for the
// given annual NIL income. Income under the reporting threshold yields no
// quarters: nothing is owed and nothing should nag.
func EstimateQuarters(annualIncome float64, reportingThreshold float64, year int, now time.Time) []model.TaxQuarter {
	if annualIncome < reportingThreshold {
		return nil
	}
	perQuarter := annualIncome * effectiveTaxRate / 4

	dues := quarterDueDates(year)
	out := make([]model.TaxQuarter, 0, 4)
	for i, due := range dues {
		q := model.TaxQuarter{
			Quarter:      i + 1,
			Name:         fmt.Sprintf("Q%d %d", i+1, year),
			DueDate:      due,
			EstimatedTax: perQuarter,
			Status:       paymentStatus(0, perQuarter, due, now),
		}
		out = append(out, q)
	}
	return out
}

// paymentStatus classifies one installment given what has been paid so far.
func paymentStatus(paid, owed float64, due, now time.Time) model.PaymentStatus {
	switch {
	case paid >= owed:
		return model.PaymentPaid
	case paid > 0:
		return model.PaymentPartial
	case now.After(due):
		return model.PaymentOverdue
	case due.Sub(now) <= dueSoonWindow:
		return model.PaymentDueSoon
	default:
		return model.PaymentUpcoming
	}
}
