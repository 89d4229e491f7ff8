package model

// Severity ranks an issue. Critical sorts before warning, warning before info.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank returns the sort order for a severity, lower sorting first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// FixAction is the single in-product flow that resolves an issue.
type FixAction string

const (
	ActionOpenUploadFlow       FixAction = "open_upload_flow"
	ActionOpenFMVExplainer     FixAction = "open_fmv_explainer"
	ActionOpenGuidelines       FixAction = "open_guidelines"
	ActionOpenSubmissionFlow   FixAction = "open_submission_flow"
	ActionOpenGenericBreakdown FixAction = "open_generic_breakdown"
)

// Issue is one actionable finding derived from a dimension result. Issues
// are recomputed on every scoring pass and replaced wholesale.
type Issue struct {
	Dimension   DimensionKey `json:"dimension"`
	ReasonCode  string       `json:"reason_code"`
	Severity    Severity     `json:"severity"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Action      FixAction    `json:"action"`
}
