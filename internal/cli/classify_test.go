package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/expiry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		for _, name := range []string{"now", "tz", "json"} {
			_ = classifyCmd.Flags().Set(name, classifyCmd.Flags().Lookup(name).DefValue)
		}
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestClassifyText(t *testing.T) {
	out, err := execRoot(t, "classify", "--now", "2026-01-10", "--tz", "UTC", "2026-01-10", "2026-01-11", "2026-02-10")
	require.NoError(t, err)
	assert.Contains(t, out, "EXPIRED")
	assert.Contains(t, out, "EXPIRING")
	assert.Contains(t, out, "1 days remaining")
	assert.Contains(t, out, "VALID")
	assert.Contains(t, out, "31 days remaining")
}

func TestClassifyJSON(t *testing.T) {
	out, err := execRoot(t, "classify", "--now", "2026-01-10", "--tz", "UTC", "--json", "2026-02-09")
	require.NoError(t, err)
	var rows []classifyRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, expiry.StatusExpiring, rows[0].Status)
	assert.Equal(t, 30, rows[0].DaysRemaining)
	assert.InDelta(t, 0.3, rows[0].DisplayFraction, 1e-9)
}

func TestClassifyReportsInvalidDates(t *testing.T) {
	out, err := execRoot(t, "classify", "--now", "2026-01-10", "not-a-date", "2026-03-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, "invalid date format")
	assert.Contains(t, out, "VALID")
}

func TestClassifyBadFlags(t *testing.T) {
	_, err := execRoot(t, "classify", "--now", "10-01-2026", "2026-03-01")
	assert.ErrorIs(t, err, expiry.ErrInvalidDateFormat)

	_, err = execRoot(t, "classify", "--tz", "Mars/Olympus", "2026-03-01")
	assert.Error(t, err)
}

func TestReferenceTimeDefaultsToClock(t *testing.T) {
	fixed := time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC)
	got, err := referenceTime("", "UTC", func() time.Time { return fixed })
	require.NoError(t, err)
	assert.True(t, got.Equal(fixed))
}
