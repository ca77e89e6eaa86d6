package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{
		"--config=",
		"--log-level", "warn",
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
	}, args...))

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "barsynth version "+version)
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "chatty", "version")
	assert.Error(t, err)
}

func TestScheduleNext(t *testing.T) {
	out, err := execute(t, "schedule", "next", "2025-01-03T15:00:00Z", "-n", "5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"2025-01-06T09:30:00Z Mon",
		"2025-01-06T10:30:00Z Mon",
		"2025-01-06T11:30:00Z Mon",
		"2025-01-06T12:30:00Z Mon",
		"2025-01-06T13:30:00Z Mon",
	}, lines)
}

func TestScheduleCheck(t *testing.T) {
	out, err := execute(t, "schedule", "check", "2025-01-01T10:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "not a bar time, next is 2025-01-02T09:30:00Z")
}

func TestGenerateCSV(t *testing.T) {
	out, err := execute(t, "generate", "-f", "csv", "-n", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "time,open,high,low,close,volume", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-01-02T09:30:00Z,480,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2025-01-02T10:30:00Z,"), lines[2])
}

func TestGenerateResample(t *testing.T) {
	out, err := execute(t, "generate", "-f", "csv", "-i", "M30", "-n", "26", "--resample", "H1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 15)
	assert.True(t, strings.HasPrefix(lines[1], "2025-01-02T09:00:00Z,480,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[8], "2025-01-03T09:00:00Z,"), lines[8])

	_, err = execute(t, "generate", "-i", "H1", "--resample", "M5")
	assert.Error(t, err)
}

func TestAtSeededTable(t *testing.T) {
	_, err := execute(t, "at", "2025-01-02T10:17:00Z", "-m", "seeded", "-f", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disable schedule")

	out, err := execute(t, "at", "2025-01-02T10:17:00Z", "-m", "seeded", "-f", "table", "--no-schedule")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-02 10:00 UTC")
}

func TestSummary(t *testing.T) {
	out, err := execute(t, "summary", "-n", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "log return stddev")
	assert.Contains(t, out, "weekend gaps")
	assert.Contains(t, out, "SPY")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barsynth.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Schedule: 09:30-16:00 UTC every 1h")
}

func TestHolidaysImportAndList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "holidays.sqlite")

	out, err := execute(t, "holidays", "import", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 20 holidays")

	out, err = execute(t, "holidays", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-12-25,Christmas Day")

	_, err = execute(t, "holidays", "import", "--db", db, "--market", "xetra")
	assert.Error(t, err)
}
