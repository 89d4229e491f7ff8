// Package deadline computes disclosure deadlines from jurisdiction rules.
// Everything here is a pure function of (rule, start, now): callers inject
// the clock so results are reproducible.
package deadline

import (
	"math"
	"time"

	"github.com/sells-group/nil-compliance/internal/model"
)

// Bucket is the urgency classification of a disclosure deadline.
type Bucket string

const (
	BucketOverdue  Bucket = "overdue"
	BucketUrgent   Bucket = "urgent"
	BucketDueSoon  Bucket = "due_soon"
	BucketUpcoming Bucket = "upcoming"
)

// Rank returns the sort order for a bucket, most urgent first.
func (b Bucket) Rank() int {
	switch b {
	case BucketOverdue:
		return 0
	case BucketUrgent:
		return 1
	case BucketDueSoon:
		return 2
	default:
		return 3
	}
}

// Info is the computed deadline state for one deal.
type Info struct {
	Date          time.Time `json:"date"`
	DaysRemaining int       `json:"days_remaining"`
	Bucket        Bucket    `json:"bucket"`
	// Progress is the consumed fraction of the disclosure window in [0,1].
	Progress float64 `json:"progress"`
}

// Compute derives the disclosure deadline for a deal starting at start under
// the given jurisdiction rule. Days remaining round up: any positive sliver
// of a day still counts as a day to act.
func Compute(rule model.StateRule, start, now time.Time) Info {
	windowDays := rule.DisclosureDeadlineDays
	if windowDays <= 0 {
		windowDays = 7
	}
	date := start.AddDate(0, 0, windowDays)

	remaining := int(math.Ceil(date.Sub(now).Hours() / 24))
	window := float64(windowDays)
	progress := 1 - float64(remaining)/window
	progress = math.Min(1, math.Max(0, progress))

	return Info{
		Date:          date,
		DaysRemaining: remaining,
		Bucket:        bucketFor(remaining),
		Progress:      progress,
	}
}

// bucketFor classifies days remaining. Boundaries are inclusive on the
// urgent side: exactly 2 days left is urgent, exactly 5 is due_soon.
func bucketFor(daysRemaining int) Bucket {
	switch {
	case daysRemaining < 0:
		return BucketOverdue
	case daysRemaining <= 2:
		return BucketUrgent
	case daysRemaining <= 5:
		return BucketDueSoon
	default:
		return BucketUpcoming
	}
}
