package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Holidays is an immutable set of calendar dates. Membership is by the
// year/month/day of the time handed in, in whatever location it carries.
type Holidays struct {
	days map[string]struct{}
}

func NewHolidays(dates ...time.Time) Holidays {
	h := Holidays{days: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		h.days[d.Format(dateLayout)] = struct{}{}
	}
	return h
}

// ParseHolidays builds a set from YYYY-MM-DD strings.
func ParseHolidays(dates []string) (Holidays, error) {
	out := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		d, err := ParseDate(s)
		if err != nil {
			return Holidays{}, err
		}
		out = append(out, d)
	}
	return NewHolidays(out...), nil
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return d, nil
}

func (h Holidays) Contains(date time.Time) bool {
	_, ok := h.days[date.Format(dateLayout)]
	return ok
}

func (h Holidays) Len() int {
	return len(h.days)
}

// Dates returns the members as UTC midnights in ascending order.
func (h Holidays) Dates() []time.Time {
	keys := make([]string, 0, len(h.days))
	for k := range h.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		d, _ := time.Parse(dateLayout, k)
		out = append(out, d)
	}
	return out
}

// Union returns a new set holding the members of both.
func (h Holidays) Union(o Holidays) Holidays {
	u := Holidays{days: make(map[string]struct{}, len(h.days)+len(o.days))}
	for k := range h.days {
		u.days[k] = struct{}{}
	}
	for k := range o.days {
		u.days[k] = struct{}{}
	}
	return u
}

// HolidayRecord is one named market closure.
type HolidayRecord struct {
	Market string
	Date   time.Time
	Name   string
}

// USEquity is the market key for the built-in table.
const USEquity = "us-equity"

var usEquity = []struct {
	date string
	name string
}{
	{"2024-01-01", "New Year's Day"},
	{"2024-01-15", "Martin Luther King Jr. Day"},
	{"2024-02-19", "Washington's Birthday"},
	{"2024-03-29", "Good Friday"},
	{"2024-05-27", "Memorial Day"},
	{"2024-06-19", "Juneteenth"},
	{"2024-07-04", "Independence Day"},
	{"2024-09-02", "Labor Day"},
	{"2024-11-28", "Thanksgiving Day"},
	{"2024-12-25", "Christmas Day"},
	{"2025-01-01", "New Year's Day"},
	{"2025-01-20", "Martin Luther King Jr. Day"},
	{"2025-02-17", "Washington's Birthday"},
	{"2025-04-18", "Good Friday"},
	{"2025-05-26", "Memorial Day"},
	{"2025-06-19", "Juneteenth"},
	{"2025-07-04", "Independence Day"},
	{"2025-09-01", "Labor Day"},
	{"2025-11-27", "Thanksgiving Day"},
	{"2025-12-25", "Christmas Day"},
}

// USEquityHolidayRecords returns the built-in 2024 and 2025 US equity closures.
func USEquityHolidayRecords() []HolidayRecord {
	out := make([]HolidayRecord, 0, len(usEquity))
	for _, h := range usEquity {
		d, err := time.Parse(dateLayout, h.date)
		if err != nil {
			panic(err)
		}
		out = append(out, HolidayRecord{Market: USEquity, Date: d, Name: h.name})
	}
	return out
}

func USEquityHolidays() Holidays {
	recs := USEquityHolidayRecords()
	dates := make([]time.Time, len(recs))
	for i, r := range recs {
		dates[i] = r.Date
	}
	return NewHolidays(dates...)
}
