package market

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidInterval = errors.New("invalid bar interval")

// IntervalUnit is the tick granularity of a BarInterval.
type IntervalUnit int

const (
	Millisecond IntervalUnit = iota + 1
	Second
	Minute
	Hour
	Day
	Week
)

var unitMillis = map[IntervalUnit]int64{
	Millisecond: 1,
	Second:      1_000,
	Minute:      60_000,
	Hour:        3_600_000,
	Day:         86_400_000,
	Week:        604_800_000,
}

var unitNames = map[IntervalUnit]string{
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Week:        "week",
}

// Milliseconds returns the unit length in ms, or 0 for an unknown unit.
func (u IntervalUnit) Milliseconds() int64 {
	return unitMillis[u]
}

func (u IntervalUnit) Valid() bool {
	_, ok := unitMillis[u]
	return ok
}

func (u IntervalUnit) String() string {
	if n, ok := unitNames[u]; ok {
		return n
	}
	return fmt.Sprintf("IntervalUnit(%d)", int(u))
}

// ParseIntervalUnit accepts the unit name, its plural, or its short suffix.
func ParseIntervalUnit(s string) (IntervalUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ms", "millisecond", "milliseconds":
		return Millisecond, nil
	case "s", "sec", "second", "seconds":
		return Second, nil
	case "m", "min", "minute", "minutes":
		return Minute, nil
	case "h", "hour", "hours":
		return Hour, nil
	case "d", "day", "days":
		return Day, nil
	case "w", "week", "weeks":
		return Week, nil
	default:
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidInterval, s)
	}
}

// BarInterval is the spacing between bars: Length × Unit.
type BarInterval struct {
	Unit   IntervalUnit
	Length int64
}

func NewBarInterval(unit IntervalUnit, length int64) (BarInterval, error) {
	bi := BarInterval{Unit: unit, Length: length}
	if err := bi.Validate(); err != nil {
		return BarInterval{}, err
	}
	return bi, nil
}

// Each helper builds the unit it is named after.
func Milliseconds(n int64) BarInterval { return BarInterval{Unit: Millisecond, Length: n} }
func Seconds(n int64) BarInterval      { return BarInterval{Unit: Second, Length: n} }
func Minutes(n int64) BarInterval      { return BarInterval{Unit: Minute, Length: n} }
func Hours(n int64) BarInterval        { return BarInterval{Unit: Hour, Length: n} }
func Days(n int64) BarInterval         { return BarInterval{Unit: Day, Length: n} }
func Weeks(n int64) BarInterval        { return BarInterval{Unit: Week, Length: n} }

func (bi BarInterval) Validate() error {
	if !bi.Unit.Valid() {
		return fmt.Errorf("%w: unknown unit %d", ErrInvalidInterval, int(bi.Unit))
	}
	if bi.Length < 1 {
		return fmt.Errorf("%w: length must be >= 1, got %d", ErrInvalidInterval, bi.Length)
	}
	// Duration is ms * 1e6 nanoseconds and must stay a positive int64.
	if limit := math.MaxInt64 / int64(time.Millisecond) / bi.Unit.Milliseconds(); bi.Length > limit {
		return fmt.Errorf("%w: length %d%s exceeds %d", ErrInvalidInterval, bi.Length, shortSuffix[bi.Unit], limit)
	}
	return nil
}

func (bi BarInterval) Milliseconds() int64 {
	return bi.Length * bi.Unit.Milliseconds()
}

func (bi BarInterval) Duration() time.Duration {
	return time.Duration(bi.Milliseconds()) * time.Millisecond
}

// Minutes is the interval length in (possibly fractional) minutes.
func (bi BarInterval) Minutes() float64 {
	return float64(bi.Milliseconds()) / 60_000.0
}

var shortSuffix = map[IntervalUnit]string{
	Millisecond: "ms",
	Second:      "s",
	Minute:      "m",
	Hour:        "h",
	Day:         "d",
	Week:        "w",
}

var tfPrefix = map[IntervalUnit]string{
	Millisecond: "MS",
	Second:      "S",
	Minute:      "M",
	Hour:        "H",
	Day:         "D",
	Week:        "W",
}

// String renders the short form, e.g. "5m", "1h", "250ms".
func (bi BarInterval) String() string {
	return fmt.Sprintf("%d%s", bi.Length, shortSuffix[bi.Unit])
}

// Timeframe renders the trading-platform form, e.g. "M5", "H1", "D1".
func (bi BarInterval) Timeframe() string {
	return fmt.Sprintf("%s%d", tfPrefix[bi.Unit], bi.Length)
}

func (bi BarInterval) MarshalText() ([]byte, error) {
	return []byte(bi.String()), nil
}

func (bi *BarInterval) UnmarshalText(b []byte) error {
	v, err := ParseInterval(string(b))
	if err != nil {
		return err
	}
	*bi = v
	return nil
}

// ParseInterval accepts the timeframe form ("M5", "H1", "D1", "W1", "S30",
// "MS250") and the short form ("5m", "1h", "1d", "1w", "30s", "250ms").
func ParseInterval(s string) (BarInterval, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BarInterval{}, fmt.Errorf("%w: empty", ErrInvalidInterval)
	}

	// timeframe form: letters first
	if s[0] >= 'A' && s[0] <= 'Z' {
		i := 0
		for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
			i++
		}
		prefix, num := s[:i], s[i:]
		for u, p := range tfPrefix {
			if p != prefix {
				continue
			}
			n, err := strconv.ParseInt(num, 10, 64)
			if err != nil {
				return BarInterval{}, fmt.Errorf("%w: bad length in %q", ErrInvalidInterval, s)
			}
			return NewBarInterval(u, n)
		}
		return BarInterval{}, fmt.Errorf("%w: unsupported timeframe string %q", ErrInvalidInterval, s)
	}

	// short form: digits first
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return BarInterval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	n, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return BarInterval{}, fmt.Errorf("%w: bad length in %q", ErrInvalidInterval, s)
	}
	u, err := ParseIntervalUnit(s[i:])
	if err != nil {
		return BarInterval{}, err
	}
	return NewBarInterval(u, n)
}

// FromDuration maps a duration onto the largest unit that divides it.
func FromDuration(d time.Duration) (BarInterval, error) {
	ms := d.Milliseconds()
	if ms <= 0 || time.Duration(ms)*time.Millisecond != d {
		return BarInterval{}, fmt.Errorf("%w: cannot map duration %s", ErrInvalidInterval, d)
	}
	for _, u := range []IntervalUnit{Week, Day, Hour, Minute, Second, Millisecond} {
		if ms%u.Milliseconds() == 0 {
			return BarInterval{Unit: u, Length: ms / u.Milliseconds()}, nil
		}
	}
	return BarInterval{}, fmt.Errorf("%w: cannot map duration %s", ErrInvalidInterval, d)
}
