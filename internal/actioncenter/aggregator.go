// Package actioncenter merges deal deadlines, open issues, tax installments
// and reminders into one prioritized todo list. The aggregator is read-only
// over its inputs: completing or dismissing an item is an external mutation
// reflected on the next recomputation, never performed here.
package actioncenter

import (
	"fmt"
	"sort"
	"time"

	"github.com/sells-group/nil-compliance/internal/deadline"
	"github.com/sells-group/nil-compliance/internal/issues"
	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/rules"
)

// soonWindowDays is the outer edge of the "soon" urgency bucket.
const soonWindowDays = 7

// Build computes the prioritized todo list for one athlete's deals plus the
// read-only collaborator feeds. Deals awaiting athlete action are the ones
// in not_submitted or needs_revision.
func Build(deals []model.Deal, quarters []model.TaxQuarter, reminders []model.Reminder, tbl *rules.Table, now time.Time) []model.TodoItem {
	var out []model.TodoItem

	for _, d := range deals {
		switch d.Submission.State {
		case model.StateNotSubmitted, model.StateNeedsRevision:
		default:
			continue
		}

		rule, _ := tbl.Lookup(d.Facts.Jurisdiction)
		info := deadline.Compute(rule, d.Facts.StartDate, now)
		due := info.Date
		critical := issues.HasCritical(d.Issues)

		title := fmt.Sprintf("Submit %q for review", d.Facts.CounterpartName)
		desc := fmt.Sprintf("Disclosure due in %d days", info.DaysRemaining)
		action := model.ActionOpenSubmissionFlow
		if d.Submission.State == model.StateNeedsRevision {
			title = fmt.Sprintf("Respond to revision request on %q", d.Facts.CounterpartName)
			desc = d.Submission.ReviewerNotes
		}
		if info.Bucket == deadline.BucketOverdue {
			desc = fmt.Sprintf("Disclosure overdue by %d days", -info.DaysRemaining)
		}

		out = append(out, model.TodoItem{
			ID:            "deal:" + d.ID,
			Source:        model.TodoSourceSubmission,
			Title:         title,
			Description:   desc,
			Urgency:       urgencyFor(&due, critical, now),
			DueDate:       &due,
			Action:        action,
			RelatedDealID: d.ID,
		})

		// Critical issues get their own entry pointing at the fix flow.
		for _, is := range d.Issues {
			if is.Severity != model.SeverityCritical {
				continue
			}
			out = append(out, model.TodoItem{
				ID:            fmt.Sprintf("issue:%s:%s", d.ID, is.ReasonCode),
				Source:        model.TodoSourceIssue,
				Title:         is.Title,
				Description:   is.Description,
				Urgency:       model.TodoUrgent,
				Action:        is.Action,
				RelatedDealID: d.ID,
			})
		}
	}

	for _, q := range quarters {
		if q.Status == model.PaymentPaid {
			continue
		}
		due := q.DueDate
		out = append(out, model.TodoItem{
			ID:          fmt.Sprintf("tax:%d", q.Quarter),
			Source:      model.TodoSourceTax,
			Title:       fmt.Sprintf("%s estimated tax payment", q.Name),
			Description: fmt.Sprintf("$%.2f estimated", q.EstimatedTax-q.AmountPaid),
			Urgency:     urgencyFor(&due, false, now),
			DueDate:     &due,
			Action:      model.ActionOpenGenericBreakdown,
		})
	}

	for _, r := range reminders {
		if !r.Open {
			continue
		}
		due := r.RemindAt
		out = append(out, model.TodoItem{
			ID:            "reminder:" + r.ID,
			Source:        model.TodoSourceReminder,
			Title:         r.Title,
			Description:   r.Description,
			Urgency:       urgencyFor(&due, false, now),
			DueDate:       &due,
			Action:        model.ActionOpenGenericBreakdown,
			RelatedDealID: r.RelatedDealID,
		})
	}

	sortTodos(out)
	return out
}

// urgencyFor buckets an item: urgent when its deadline is overdue or within
// two days, or it is tied to a critical issue; soon within a week; later
// otherwise. Undated items without a critical tie are later.
func urgencyFor(due *time.Time, critical bool, now time.Time) model.TodoUrgency {
	if critical {
		return model.TodoUrgent
	}
	if due == nil {
		return model.TodoLater
	}
	days := int(due.Sub(now).Hours() / 24)
	switch {
	case days <= 2:
		return model.TodoUrgent
	case days <= soonWindowDays:
		return model.TodoSoon
	default:
		return model.TodoLater
	}
}

// sortTodos orders by urgency bucket, then soonest due date, undated last.
// The sort is stable so equal items keep input order.
func sortTodos(items []model.TodoItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Urgency.Rank() != items[j].Urgency.Rank() {
			return items[i].Urgency.Rank() < items[j].Urgency.Rank()
		}
		di, dj := items[i].DueDate, items[j].DueDate
		switch {
		case di == nil && dj == nil:
			return false
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
}
