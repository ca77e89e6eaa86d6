package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var ErrHolidayNotFound = errors.New("holiday not found")

const Schema = `
CREATE TABLE IF NOT EXISTS holidays (
	market TEXT NOT NULL,
	date TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (market, date)
);

CREATE INDEX IF NOT EXISTS idx_holidays_market ON holidays(market);
`

// SQLiteStore keeps holiday tables for any number of markets, so a
// calendar can be swapped without rebuilding.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create holiday schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put inserts or replaces a closure.
func (s *SQLiteStore) Put(ctx context.Context, rec HolidayRecord) error {
	if rec.Market == "" {
		return fmt.Errorf("holiday market is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO holidays (market, date, name)
		VALUES (?, ?, ?)`,
		rec.Market, rec.Date.Format(dateLayout), rec.Name,
	)
	return err
}

// PutAll writes every record in one transaction.
func (s *SQLiteStore) PutAll(ctx context.Context, recs []HolidayRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO holidays (market, date, name)
		VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range recs {
		if rec.Market == "" {
			return fmt.Errorf("holiday market is required (date %s)", rec.Date.Format(dateLayout))
		}
		if _, err := stmt.ExecContext(ctx, rec.Market, rec.Date.Format(dateLayout), rec.Name); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns a single closure by market and date.
func (s *SQLiteStore) Get(ctx context.Context, market string, date time.Time) (HolidayRecord, error) {
	var (
		rec  HolidayRecord
		dstr string
	)

	row := s.db.QueryRowContext(ctx, `
		SELECT market, date, name
		FROM holidays
		WHERE market = ? AND date = ?`, market, date.Format(dateLayout))

	if err := row.Scan(&rec.Market, &dstr, &rec.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return HolidayRecord{}, fmt.Errorf("%w: %s %s", ErrHolidayNotFound, market, date.Format(dateLayout))
		}
		return HolidayRecord{}, err
	}

	d, err := ParseDate(dstr)
	if err != nil {
		return HolidayRecord{}, err
	}
	rec.Date = d
	return rec, nil
}

// List returns a market's closures in date order.
func (s *SQLiteStore) List(ctx context.Context, market string) ([]HolidayRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT market, date, name
		FROM holidays
		WHERE market = ?
		ORDER BY date ASC`, market)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HolidayRecord
	for rows.Next() {
		var (
			rec  HolidayRecord
			dstr string
		)
		if err := rows.Scan(&rec.Market, &dstr, &rec.Name); err != nil {
			return nil, err
		}
		if rec.Date, err = ParseDate(dstr); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Holidays implements HolidaySource.
func (s *SQLiteStore) Holidays(ctx context.Context, market string) (Holidays, error) {
	recs, err := s.List(ctx, market)
	if err != nil {
		return Holidays{}, err
	}
	dates := make([]time.Time, len(recs))
	for i, r := range recs {
		dates[i] = r.Date
	}
	return NewHolidays(dates...), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
