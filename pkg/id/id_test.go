package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		assert.Len(t, next, 26)
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestNewRunTime(t *testing.T) {
	at := time.Date(2025, 1, 2, 9, 30, 0, 123_000_000, time.UTC)
	runID, err := NewRun(at)
	require.NoError(t, err)

	got, err := Time(runID)
	require.NoError(t, err)
	assert.True(t, at.Equal(got), "got %s", got)
}

func TestTimeRejectsGarbage(t *testing.T) {
	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}
