package market

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBarWidensEnvelope(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	// high below close and low above open must be widened
	b := NewBar(ts, 100.0, 100.5, 100.2, 101.0, 1500)

	assert.True(t, b.High.Equal(decimal.NewFromFloat(101.0)))
	assert.True(t, b.Low.Equal(decimal.NewFromFloat(100.0)))
	assert.NoError(t, b.Validate())
}

func TestBarValidate(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	d := decimal.RequireFromString

	tests := []struct {
		name   string
		bar    Bar
		errMsg string
	}{
		{"ok", Bar{Time: ts, Open: d("10"), High: d("11"), Low: d("9"), Close: d("10.5"), Volume: 1}, ""},
		{"high below close", Bar{Time: ts, Open: d("10"), High: d("10.2"), Low: d("9"), Close: d("10.5"), Volume: 1}, "high"},
		{"low above open", Bar{Time: ts, Open: d("10"), High: d("11"), Low: d("10.1"), Close: d("10.5"), Volume: 1}, "low"},
		{"zero volume", Bar{Time: ts, Open: d("10"), High: d("11"), Low: d("9"), Close: d("10.5")}, "volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bar.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBarEqual(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	a := NewBar(ts, 1.5, 2, 1, 1.75, 10)
	b := NewBarDecimal(ts.In(time.FixedZone("X", 3600)),
		decimal.RequireFromString("1.50"), decimal.NewFromInt(2), decimal.NewFromInt(1),
		decimal.RequireFromString("1.750"), 10)

	assert.True(t, a.Equal(b))
	b.Volume++
	assert.False(t, a.Equal(b))
}

func TestNewBarAnchor(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	a, err := NewBarAnchor(ts, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, a.Price.Equal(decimal.NewFromInt(100)))

	_, err = NewBarAnchor(ts, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAnchor)

	_, err = NewBarAnchor(time.Time{}, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidAnchor)
}
