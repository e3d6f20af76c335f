package diag

// Severity ranks a diagnostic. Ordering matters: Bag.HasErrors and
// sorting compare severities numerically, so Error must stay highest.
type Severity uint8

const (
	// SevInfo marks purely informational diagnostics (timings, stats).
	SevInfo Severity = iota
	// SevWarning marks degraded behavior the render recovered from.
	SevWarning
	// SevError marks failures that made part of the output unusable.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
