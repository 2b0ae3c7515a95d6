package alert

import (
	"time"

	"github.com/c360/firewatch/record"
)

// Style selects the visual treatment for a surfaced notification.
type Style string

const (
	StyleError   Style = "error"
	StyleWarning Style = "warning"
	StyleInfo    Style = "info"
)

// Policy describes how a notification of a given severity is surfaced.
type Policy struct {
	Style Style
	// Persist keeps the notification on screen until acknowledged.
	// When set, AutoClose is zero.
	Persist   bool
	AutoClose time.Duration
}

// policies is the severity presentation table. Critical notifications persist
// until acknowledged; everything else auto-closes.
var policies = map[record.Severity]Policy{
	record.SeverityCritical: {Style: StyleError, Persist: true},
	record.SeverityHigh:     {Style: StyleError, AutoClose: 8 * time.Second},
	record.SeverityMedium:   {Style: StyleWarning, AutoClose: 6 * time.Second},
	record.SeverityLow:      {Style: StyleWarning, AutoClose: 5 * time.Second},
}

// defaultPolicy covers info and any unknown severity arriving on the wire.
var defaultPolicy = Policy{Style: StyleInfo, AutoClose: 5 * time.Second}

// PolicyFor resolves the presentation policy for a severity. Unknown
// severities get the informational default.
func PolicyFor(severity record.Severity) Policy {
	if p, ok := policies[severity]; ok {
		return p
	}
	return defaultPolicy
}
