package record

import "slices"

// Severity classifies operational notifications. Unknown severities are
// tolerated on the wire and fall back to default presentation handling.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	default:
		return false
	}
}

// Weight orders severities for display, highest urgency first.
// Unknown severities sort last.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	case SeverityInfo:
		return 0
	default:
		return -1
	}
}

// Notification is one operational notification. Unlike telemetry,
// notifications are not historized: id alone is the identity and a repeat id
// replaces the stored copy.
type Notification struct {
	ID           string   `json:"id"`
	Timestamp    int64    `json:"timestamp"`
	Severity     Severity `json:"severity"`
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	Source       string   `json:"source"`
	Labels       []string `json:"labels,omitempty"`
	Acknowledged bool     `json:"acknowledged"`
}

// HasLabel reports whether the notification carries the given label.
// Labels are treated as a set.
func (n Notification) HasLabel(label string) bool {
	return slices.Contains(n.Labels, label)
}
