package calendar

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type holidayRow struct {
	Date string `csv:"date"`
	Name string `csv:"name"`
}

// ReadHolidayCSV reads "date,name" rows (with a header) into records for
// market.
func ReadHolidayCSV(r io.Reader, market string) ([]HolidayRecord, error) {
	var rows []*holidayRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("ReadHolidayCSV: %w", err)
	}

	recs := make([]HolidayRecord, 0, len(rows))
	for i, row := range rows {
		d, err := ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("ReadHolidayCSV: row %d: %w", i+1, err)
		}
		recs = append(recs, HolidayRecord{Market: market, Date: d, Name: row.Name})
	}
	return recs, nil
}

// WriteHolidayCSV is the inverse of ReadHolidayCSV.
func WriteHolidayCSV(w io.Writer, recs []HolidayRecord) error {
	rows := make([]*holidayRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, &holidayRow{Date: rec.Date.Format(dateLayout), Name: rec.Name})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("WriteHolidayCSV: %w", err)
	}
	return nil
}
