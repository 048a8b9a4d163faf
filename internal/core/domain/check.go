package domain

// CheckSeverity grades a single doctor finding.
type CheckSeverity string

// Available check severities.
const (
	// CheckOK marks a passing check.
	CheckOK CheckSeverity = "ok"

	// CheckWarn marks a degraded but workable condition.
	CheckWarn CheckSeverity = "warn"

	// CheckError marks a condition that blocks normal operation.
	CheckError CheckSeverity = "error"
)

// IsValid returns true if the severity is recognised.
func (s CheckSeverity) IsValid() bool {
	switch s {
	case CheckOK, CheckWarn, CheckError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s CheckSeverity) String() string {
	return string(s)
}

// Finding is the outcome of one doctor check.
type Finding struct {
	// ID names the check, stable across releases for scripting.
	ID string `json:"id"`

	// Severity grades the outcome.
	Severity CheckSeverity `json:"severity"`

	// Summary is a one-line outcome statement.
	Summary string `json:"summary"`

	// Detail optionally expands on the summary with the observed
	// values or a suggested fix.
	Detail string `json:"detail,omitempty"`
}

// CheckReport aggregates the findings of one doctor pass.
type CheckReport struct {
	// Findings holds every check outcome in execution order.
	Findings []Finding `json:"findings"`
}

// HasErrors returns true if any finding is an error.
func (r *CheckReport) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == CheckError {
			return true
		}
	}
	return false
}

// Counts returns the number of ok, warn and error findings.
func (r *CheckReport) Counts() (ok, warn, errs int) {
	for _, f := range r.Findings {
		switch f.Severity {
		case CheckOK:
			ok++
		case CheckWarn:
			warn++
		case CheckError:
			errs++
		}
	}
	return ok, warn, errs
}
