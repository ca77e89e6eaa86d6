package generator

import (
	"time"

	"github.com/rustyeddy/barsynth/market"
)

const dayMillis = int64(24 * time.Hour / time.Millisecond)

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// AlignTicks floors ts to a multiple of the interval counted from the
// Unix epoch. The result keeps the location of ts.
func AlignTicks(ts time.Time, bi market.BarInterval) time.Time {
	ims := bi.Milliseconds()
	ms := ts.UnixMilli()
	return time.UnixMilli(floorDiv(ms, ims) * ims).In(ts.Location())
}

// AlignInDay floors ts within its UTC calendar day: intervals of a day or
// longer snap to midnight, shorter ones to the last interval boundary
// counted from midnight.
func AlignInDay(ts time.Time, bi market.BarInterval) time.Time {
	ims := bi.Milliseconds()
	ms := ts.UnixMilli()
	midnight := floorDiv(ms, dayMillis) * dayMillis
	if ims >= dayMillis {
		return time.UnixMilli(midnight).In(ts.Location())
	}
	intoDay := ms - midnight
	return time.UnixMilli(midnight + (intoDay/ims)*ims).In(ts.Location())
}
