package market

import (
	"sort"
	"time"
)

// HistoryPoint is one OHLCV bar of a price series. Price carries the
// chart value for the bar, by convention the close.
type HistoryPoint struct {
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	Low    float64   `json:"low"`
	High   float64   `json:"high"`
	Volume float64   `json:"volume"`
	Open   float64   `json:"open"`
	Close  float64   `json:"close"`
}

// History is one instrument's chronological price series.
type History struct {
	Item Item
	Bars []HistoryPoint
}

// Interval returns the spacing between the first two bars, or zero for
// series shorter than two bars.
func (h History) Interval() time.Duration {
	if len(h.Bars) < 2 {
		return 0
	}
	return h.Bars[1].Time.Sub(h.Bars[0].Time)
}

// Sort orders the bars chronologically in place.
func (h History) Sort() {
	sort.Slice(h.Bars, func(i, j int) bool {
		return h.Bars[i].Time.Before(h.Bars[j].Time)
	})
}

// AlignTo resamples bars onto the reference series' time axis. For each
// reference timestamp it picks the latest bar at or before it, falling
// back to the very first bar when none qualifies. Output bars keep the
// reference timestamps. Returns nil when bars is empty.
//
// Series fetched at different granularities cannot be aligned by index,
// so nearest-prior-bar is the resampling policy everywhere.
func AlignTo(ref, bars []HistoryPoint) []HistoryPoint {
	if len(bars) == 0 {
		return nil
	}
	out := make([]HistoryPoint, 0, len(ref))
	j := -1
	for _, r := range ref {
		for j+1 < len(bars) && !bars[j+1].Time.After(r.Time) {
			j++
		}
		src := bars[0]
		if j >= 0 {
			src = bars[j]
		}
		src.Time = r.Time
		out = append(out, src)
	}
	return out
}

// LatestBefore returns the last bar with a timestamp at or before t.
func LatestBefore(bars []HistoryPoint, t time.Time) (HistoryPoint, bool) {
	for i := len(bars) - 1; i >= 0; i-- {
		if !bars[i].Time.After(t) {
			return bars[i], true
		}
	}
	return HistoryPoint{}, false
}
