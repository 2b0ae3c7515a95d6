package alert

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/c360/firewatch/errors"
	"github.com/c360/firewatch/record"
)

// Notifier delivers a notification with its resolved presentation policy.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(n record.Notification, p Policy) error
}

// LogNotifier surfaces notifications as structured log records. The log level
// tracks the policy style: error for StyleError, warn for StyleWarning, info
// otherwise.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to logger. A nil logger uses the
// default slog logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (l *LogNotifier) Notify(n record.Notification, p Policy) error {
	attrs := []any{
		"id", n.ID,
		"severity", string(n.Severity),
		"title", n.Title,
		"source", n.Source,
		"persist", p.Persist,
	}

	switch p.Style {
	case StyleError:
		l.logger.Error(n.Message, attrs...)
	case StyleWarning:
		l.logger.Warn(n.Message, attrs...)
	default:
		l.logger.Info(n.Message, attrs...)
	}
	return nil
}

// NATSNotifier publishes notifications as JSON to a NATS subject so external
// consumers (pagers, dashboards) can subscribe to the live alert feed.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
}

// NewNATSNotifier creates a notifier publishing to subject over conn.
func NewNATSNotifier(conn *nats.Conn, subject string) (*NATSNotifier, error) {
	if conn == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig,
			"NATSNotifier", "New", "nats connection is required")
	}
	if subject == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig,
			"NATSNotifier", "New", "subject is required")
	}
	return &NATSNotifier{conn: conn, subject: subject}, nil
}

// Notify implements Notifier. The published payload is the notification with
// the resolved policy attached, so subscribers need no copy of the policy
// table.
func (n *NATSNotifier) Notify(notification record.Notification, p Policy) error {
	payload := struct {
		record.Notification
		Style     string `json:"style"`
		Persist   bool   `json:"persist"`
		AutoClose int64  `json:"autoCloseMs"`
	}{
		Notification: notification,
		Style:        string(p.Style),
		Persist:      p.Persist,
		AutoClose:    p.AutoClose.Milliseconds(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errors.WrapInvalid(err, "NATSNotifier", "Notify", "marshal notification")
	}

	if err := n.conn.Publish(n.subject, data); err != nil {
		return errors.WrapTransient(err, "NATSNotifier", "Notify", "publish notification")
	}
	return nil
}

// Multi fans a notification out to every wrapped notifier. Delivery continues
// past individual failures; the first error is returned.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(n record.Notification, p Policy) error {
	var firstErr error
	for _, notifier := range m {
		if err := notifier.Notify(n, p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
