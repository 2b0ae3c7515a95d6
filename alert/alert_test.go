package alert

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/firewatch/record"
)

func TestPolicyFor_KnownSeverities(t *testing.T) {
	tests := []struct {
		severity  record.Severity
		style     Style
		persist   bool
		autoClose time.Duration
	}{
		{record.SeverityCritical, StyleError, true, 0},
		{record.SeverityHigh, StyleError, false, 8 * time.Second},
		{record.SeverityMedium, StyleWarning, false, 6 * time.Second},
		{record.SeverityLow, StyleWarning, false, 5 * time.Second},
		{record.SeverityInfo, StyleInfo, false, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			p := PolicyFor(tt.severity)
			assert.Equal(t, tt.style, p.Style)
			assert.Equal(t, tt.persist, p.Persist)
			assert.Equal(t, tt.autoClose, p.AutoClose)
		})
	}
}

func TestPolicyFor_UnknownSeverityFallsBack(t *testing.T) {
	p := PolicyFor(record.Severity("bogus"))
	assert.Equal(t, StyleInfo, p.Style)
	assert.False(t, p.Persist)
	assert.Equal(t, 5*time.Second, p.AutoClose)
}

func TestLogNotifier_LevelTracksStyle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	notifier := NewLogNotifier(logger)

	n := record.Notification{
		ID:        "notif-1",
		Timestamp: 1700000000000,
		Severity:  record.SeverityCritical,
		Title:     "Containment breach",
		Message:   "fire-2 escaped containment line",
		Source:    "fire-tracking",
	}

	err := notifier.Notify(n, PolicyFor(n.Severity))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "notif-1")
	assert.Contains(t, buf.String(), "persist=true")

	buf.Reset()
	n.Severity = record.SeverityMedium
	err = notifier.Notify(n, PolicyFor(n.Severity))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	n.Severity = record.SeverityInfo
	err = notifier.Notify(n, PolicyFor(n.Severity))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=INFO")
}

func TestNewNATSNotifier_Validation(t *testing.T) {
	_, err := NewNATSNotifier(nil, "alerts.fire")
	assert.Error(t, err)

	// Subject validation is checked before the connection is used, so a nil
	// conn with empty subject still reports the conn error first.
	_, err = NewNATSNotifier(nil, "")
	assert.Error(t, err)
}

type recordingNotifier struct {
	calls int
	err   error
}

func (r *recordingNotifier) Notify(record.Notification, Policy) error {
	r.calls++
	return r.err
}

func TestMulti_FansOutAndKeepsFirstError(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("sink down")}
	ok1 := &recordingNotifier{}
	ok2 := &recordingNotifier{}

	m := Multi{ok1, failing, ok2}
	err := m.Notify(record.Notification{ID: "n1"}, PolicyFor(record.SeverityLow))

	assert.Error(t, err)
	assert.Equal(t, 1, ok1.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok2.calls, "delivery continues past a failing sink")
}

func TestMulti_Empty(t *testing.T) {
	var m Multi
	assert.NoError(t, m.Notify(record.Notification{}, defaultPolicy))
}
