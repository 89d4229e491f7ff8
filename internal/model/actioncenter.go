package model

import "time"

// PaymentStatus tracks a quarterly estimated-tax payment.
type PaymentStatus string

const (
	PaymentUpcoming PaymentStatus = "upcoming"
	PaymentDueSoon  PaymentStatus = "due_soon"
	PaymentOverdue  PaymentStatus = "overdue"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
)

// TaxQuarter is one federal estimated-tax installment for the current year.
type TaxQuarter struct {
	Quarter      int           `json:"quarter"`
	Name         string        `json:"name"`
	DueDate      time.Time     `json:"due_date"`
	EstimatedTax float64       `json:"estimated_tax"`
	AmountPaid   float64       `json:"amount_paid"`
	Status       PaymentStatus `json:"status"`
}

// Reminder is a user-scheduled nudge owned by the scheduling service and
// consumed read-only by the action center.
type Reminder struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	RemindAt      time.Time `json:"remind_at"`
	RelatedDealID string    `json:"related_deal_id,omitempty"`
	Open          bool      `json:"open"`
}

// TodoUrgency buckets action-center items.
type TodoUrgency string

const (
	TodoUrgent TodoUrgency = "urgent"
	TodoSoon   TodoUrgency = "soon"
	TodoLater  TodoUrgency = "later"
)

// Rank returns the sort order for an urgency bucket, lower sorting first.
func (u TodoUrgency) Rank() int {
	switch u {
	case TodoUrgent:
		return 0
	case TodoSoon:
		return 1
	default:
		return 2
	}
}

// TodoSource identifies which collaborator an item was derived from.
type TodoSource string

const (
	TodoSourceSubmission TodoSource = "deal_submission"
	TodoSourceIssue      TodoSource = "deal_issue"
	TodoSourceTax        TodoSource = "tax"
	TodoSourceReminder   TodoSource = "reminder"
)

// TodoItem is one prioritized action-center entry. Items are a pure view:
// completing or dismissing one is an external mutation reflected on the next
// recomputation.
type TodoItem struct {
	ID            string      `json:"id"`
	Source        TodoSource  `json:"source"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Urgency       TodoUrgency `json:"urgency"`
	DueDate       *time.Time  `json:"due_date,omitempty"`
	Action        FixAction   `json:"action"`
	RelatedDealID string      `json:"related_deal_id,omitempty"`
}
