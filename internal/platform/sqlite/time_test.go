package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampScan(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, time.October, 15, 18, 30, 5, 0, time.UTC)

	tests := []struct {
		name string
		src  any
		want time.Time
	}{
		{"current_timestamp text", "2026-10-15 18:30:05", want},
		{"bytes", []byte("2026-10-15 18:30:05"), want},
		{"rfc3339", "2026-10-15T18:30:05Z", want},
		{"offset", "2026-10-15 20:30:05+02:00", want},
		{"time value", want.In(time.FixedZone("x", 3600)), want},
		{"unix seconds", want.Unix(), want},
		{"null", nil, time.Time{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var ts timestamp
			require.NoError(t, ts.Scan(tc.src))
			assert.True(t, tc.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTimestampScan_Invalid(t *testing.T) {
	t.Parallel()

	var ts timestamp
	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(3.14))
}

func TestDSN(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"tasks.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		dsn("tasks.db"))
	assert.Contains(t, dsn("file:tasks.db?mode=rwc"), "mode=rwc&_pragma=journal_mode(WAL)")
}
