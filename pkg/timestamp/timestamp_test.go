package timestamp

import (
	"testing"
	"time"
)

// Test constants
var (
	testTime   = time.Date(2023, 1, 15, 12, 30, 45, 123000000, time.UTC) // Use exact milliseconds
	testTimeMs = int64(1673785845123)                                    // Correct timestamp for the date above
)

func TestNow(t *testing.T) {
	before := time.Now().UnixMilli()
	ts := Now()
	after := time.Now().UnixMilli()

	if ts < before || ts > after {
		t.Errorf("Now() = %d, expected between %d and %d", ts, before, after)
	}
}

func TestToUnixMs(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected int64
	}{
		{
			name:     "normal time",
			input:    testTime,
			expected: testTimeMs,
		},
		{
			name:     "zero time",
			input:    time.Time{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToUnixMs(tt.input)
			if result != tt.expected {
				t.Errorf("ToUnixMs(%v) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFromUnixMs(t *testing.T) {
	if got := FromUnixMs(testTimeMs); !got.Equal(testTime) {
		t.Errorf("FromUnixMs(%d) = %v, expected %v", testTimeMs, got, testTime)
	}
	if got := FromUnixMs(0); !got.IsZero() {
		t.Errorf("FromUnixMs(0) = %v, expected zero time", got)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(testTimeMs); got != "2023-01-15T12:30:45Z" {
		t.Errorf("Format(%d) = %s", testTimeMs, got)
	}
	if got := Format(0); got != "" {
		t.Errorf("Format(0) = %q, expected empty string", got)
	}
}

func TestAddSub(t *testing.T) {
	if got := Add(testTimeMs, time.Second); got != testTimeMs+1000 {
		t.Errorf("Add = %d, expected %d", got, testTimeMs+1000)
	}
	if got := Sub(testTimeMs, time.Second); got != testTimeMs-1000 {
		t.Errorf("Sub = %d, expected %d", got, testTimeMs-1000)
	}
	if Add(0, time.Hour) != 0 || Sub(0, time.Hour) != 0 {
		t.Error("Add/Sub on zero timestamp should return 0")
	}
}

func TestMinMax(t *testing.T) {
	if got := Min(100, 200); got != 100 {
		t.Errorf("Min(100, 200) = %d", got)
	}
	if got := Max(100, 200); got != 200 {
		t.Errorf("Max(100, 200) = %d", got)
	}

	// Zero is "unset", never the winner.
	if got := Min(0, 200); got != 200 {
		t.Errorf("Min(0, 200) = %d", got)
	}
	if got := Max(0, 200); got != 200 {
		t.Errorf("Max(0, 200) = %d", got)
	}
	if got := Max(100, 0); got != 100 {
		t.Errorf("Max(100, 0) = %d", got)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(testTimeMs); err != nil {
		t.Errorf("Validate(%d) = %v, expected nil", testTimeMs, err)
	}
	if err := Validate(-1); err == nil {
		t.Error("Validate(-1) should fail")
	}
	if err := Validate(32503680000001); err == nil {
		t.Error("Validate(year 3000+) should fail")
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0) {
		t.Error("IsZero(0) should be true")
	}
	if IsZero(testTimeMs) {
		t.Error("IsZero(non-zero) should be false")
	}
}
