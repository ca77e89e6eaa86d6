package calendar

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/barsynth/market"
)

func newTestSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "holidays.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)

	return s, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='holidays'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "holidays", name)
}

func TestSQLitePutGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = s.Close() })

	rec := HolidayRecord{Market: "lse", Date: utc(2025, 12, 26, 0, 0), Name: "Boxing Day"}
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "lse", utc(2025, 12, 26, 15, 0))
	require.NoError(t, err)
	assert.Equal(t, "lse", got.Market)
	assert.Equal(t, "Boxing Day", got.Name)
	assertTime(t, rec.Date, got.Date)

	// replace keeps one row per (market, date)
	rec.Name = "Boxing Day (observed)"
	require.NoError(t, s.Put(ctx, rec))
	recs, err := s.List(ctx, "lse")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Boxing Day (observed)", recs[0].Name)

	_, err = s.Get(ctx, "lse", utc(2025, 12, 27, 0, 0))
	assert.ErrorIs(t, err, ErrHolidayNotFound)

	assert.Error(t, s.Put(ctx, HolidayRecord{Date: rec.Date}))
}

func TestSQLiteHolidaysFeedSchedule(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.PutAll(ctx, USEquityHolidayRecords()))
	require.NoError(t, s.Put(ctx, HolidayRecord{Market: "other", Date: utc(2025, 1, 2, 0, 0)}))

	recs, err := s.List(ctx, USEquity)
	require.NoError(t, err)
	require.Len(t, recs, 20)
	assertTime(t, utc(2024, 1, 1, 0, 0), recs[0].Date)

	var src HolidaySource = s
	h, err := src.Holidays(ctx, USEquity)
	require.NoError(t, err)
	assert.Equal(t, USEquityHolidays().Dates(), h.Dates())

	sched, err := NewSchedule(ScheduleConfig{Holidays: h, Interval: market.Minutes(5)})
	require.NoError(t, err)
	assertTime(t, utc(2025, 1, 2, 9, 30), sched.NextValidBarTime(utc(2024, 12, 31, 16, 30)))
}
