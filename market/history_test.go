package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barAt(ts int64, price float64) HistoryPoint {
	return HistoryPoint{
		Time:  time.Unix(ts, 0).UTC(),
		Price: price,
		Low:   price,
		High:  price,
		Open:  price,
		Close: price,
	}
}

func TestAlignToNearestPrior(t *testing.T) {
	t.Parallel()

	ref := []HistoryPoint{barAt(1, 10), barAt(2, 20), barAt(3, 30)}
	other := []HistoryPoint{barAt(0, 100), barAt(2, 200)}

	out := AlignTo(ref, other)
	require.Len(t, out, 3)

	// t=1 has no bar of its own, nearest prior is t=0
	assert.Equal(t, 100.0, out[0].Price)
	// t=2 matches exactly, t=3 sticks with the t=2 bar
	assert.Equal(t, 200.0, out[1].Price)
	assert.Equal(t, 200.0, out[2].Price)

	// timestamps are the reference's, not the source's
	for i := range out {
		assert.Equal(t, ref[i].Time, out[i].Time)
	}
}

func TestAlignToFallsBackToFirstBar(t *testing.T) {
	t.Parallel()

	ref := []HistoryPoint{barAt(1, 10), barAt(5, 50)}
	other := []HistoryPoint{barAt(3, 300), barAt(4, 400)}

	out := AlignTo(ref, other)
	require.Len(t, out, 2)

	// nothing at or before t=1: use the other series' first bar
	assert.Equal(t, 300.0, out[0].Price)
	assert.Equal(t, 400.0, out[1].Price)
}

func TestAlignToEmptySource(t *testing.T) {
	t.Parallel()

	ref := []HistoryPoint{barAt(1, 10)}
	assert.Nil(t, AlignTo(ref, nil))
}

func TestLatestBefore(t *testing.T) {
	t.Parallel()

	bars := []HistoryPoint{barAt(10, 1), barAt(20, 2), barAt(30, 3)}

	got, ok := LatestBefore(bars, time.Unix(25, 0).UTC())
	require.True(t, ok)
	assert.Equal(t, 2.0, got.Price)

	got, ok = LatestBefore(bars, time.Unix(30, 0).UTC())
	require.True(t, ok)
	assert.Equal(t, 3.0, got.Price)

	_, ok = LatestBefore(bars, time.Unix(5, 0).UTC())
	assert.False(t, ok)
}

func TestHistoryInterval(t *testing.T) {
	t.Parallel()

	h := History{Bars: []HistoryPoint{barAt(0, 1), barAt(3600, 1), barAt(7200, 1)}}
	assert.Equal(t, time.Hour, h.Interval())

	assert.Zero(t, History{}.Interval())
	assert.Zero(t, History{Bars: []HistoryPoint{barAt(0, 1)}}.Interval())
}

func TestHistorySort(t *testing.T) {
	t.Parallel()

	h := History{Bars: []HistoryPoint{barAt(30, 3), barAt(10, 1), barAt(20, 2)}}
	h.Sort()

	assert.Equal(t, []float64{1, 2, 3}, []float64{h.Bars[0].Price, h.Bars[1].Price, h.Bars[2].Price})
}

func TestItemSame(t *testing.T) {
	t.Parallel()

	a := Item{Name: "Apple Inc", Code: "AAPL", Type: Stock}
	b := With("AAPL")
	c := Item{Code: "AAPL", Type: Crypto}

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
}
