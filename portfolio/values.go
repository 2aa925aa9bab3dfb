package portfolio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vladche/papertrade/market"
)

// NoOperationsNote annotates reconstructed points that predate the
// first recorded operation.
const NoOperationsNote = "No operations"

// ValueSeries reconstructs total portfolio value over time from the
// current holdings' price histories and the ledger's cash history.
//
// The held item with the longest history is the reference: its bar
// timestamps define the output axis, so both returned slices have
// exactly as many entries as the reference has bars. Bars before the
// first cash snapshot are flat at the start cash. For later bars the
// value is the cash balance at that time plus each held item's
// position × OHLC contribution (other items resampled onto the
// reference axis by nearest-prior-bar), plus the realized amounts of
// items that have since been fully sold. The second slice holds one
// human-readable composition note per point.
//
// With no non-empty histories, no cash snapshots, or no operations the
// result is empty and the caller falls back to a placeholder chart.
func (l *Ledger) ValueSeries(histories []market.History) ([]market.HistoryPoint, []string) {
	var held []market.History
	for _, h := range histories {
		if len(h.Bars) > 0 {
			held = append(held, h)
		}
	}
	if len(held) == 0 || len(l.series) == 0 || len(l.ops) == 0 {
		return nil, nil
	}

	ref := held[0]
	for _, h := range held[1:] {
		if len(h.Bars) > len(ref.Bars) {
			ref = h
		}
	}

	heldCodes := make(map[string]bool, len(held))
	for _, h := range held {
		heldCodes[h.Item.Code] = true
	}
	var soldUpdates []CashSnapshot
	for _, s := range l.series {
		if !heldCodes[s.Operation.Item.Code] {
			soldUpdates = append(soldUpdates, s)
		}
	}

	tradingStart := l.series[0].Time

	// split the reference bars at the first one inside the trading era
	split := len(ref.Bars)
	for i, b := range ref.Bars {
		if !b.Time.Before(tradingStart) {
			split = i
			break
		}
	}

	points := make([]market.HistoryPoint, 0, len(ref.Bars))
	notes := make([]string, 0, len(ref.Bars))

	startCash, _ := l.StartCash().Float64()
	for _, b := range ref.Bars[:split] {
		points = append(points, flatPoint(b.Time, startCash))
		notes = append(notes, NoOperationsNote)
	}

	aligned := make([][]market.HistoryPoint, len(held))
	for i, h := range held {
		if h.Item.Code == ref.Item.Code {
			continue
		}
		aligned[i] = market.AlignTo(ref.Bars, h.Bars)
	}

	for _, bar := range ref.Bars[split:] {
		snap := latestSnapshot(l.series, bar.Time)
		cash, _ := snap.Cash.Float64()

		p := flatPoint(bar.Time, cash)
		note := "$" + fmtAmount(cash)

		add := func(item market.Item, src market.HistoryPoint) {
			// position by code only: the log may carry the same symbol
			// under display variants of the item
			var amount float64
			matched := false
			for _, op := range l.ops {
				if op.Item.Code == item.Code && !op.Time.After(bar.Time) {
					amount += op.Amount
					matched = true
				}
			}
			if !matched {
				return
			}
			p.Price += src.Price * amount
			p.Low += src.Low * amount
			p.High += src.High * amount
			p.Open += src.Open * amount
			p.Close += src.Close * amount
			note += fmt.Sprintf(" %s %s %s x %s",
				signOf(amount), item.Code, fmtAmount(math.Abs(amount)), fmtAmount(src.Price))
		}

		add(ref.Item, bar)

		for i, h := range held {
			if h.Item.Code == ref.Item.Code {
				continue
			}
			if src, ok := market.LatestBefore(aligned[i], bar.Time); ok {
				add(h.Item, src)
			}
		}

		for _, s := range soldUpdates {
			if s.Time.After(bar.Time) {
				continue
			}
			op := s.Operation
			v := op.Price * op.Amount
			p.Price += v
			p.Low += v
			p.High += v
			p.Open += v
			p.Close += v
			note += fmt.Sprintf(" %s sold %s %s x %s",
				signOf(op.Amount), op.Item.Code, fmtAmount(math.Abs(op.Amount)), fmtAmount(op.Price))
		}

		points = append(points, p)
		notes = append(notes, note)
	}

	return points, notes
}

// CurrentPoint marks the portfolio to market using each history's
// latest bar: Σ position × OHLC + available cash, volumes summed.
func (l *Ledger) CurrentPoint(histories []market.History) market.HistoryPoint {
	cash, _ := l.cash.Float64()
	p := flatPoint(l.now(), cash)
	for _, h := range histories {
		if len(h.Bars) == 0 {
			continue
		}
		last := h.Bars[len(h.Bars)-1]
		amount := l.amount(h.Item)
		p.Price += last.Price * amount
		p.Low += last.Low * amount
		p.High += last.High * amount
		p.Open += last.Open * amount
		p.Close += last.Close * amount
		p.Volume += last.Volume
	}
	return p
}

// latestSnapshot returns the last snapshot at or before t. Callers
// guarantee at least one qualifies (t is never before the first one).
func latestSnapshot(series []CashSnapshot, t time.Time) CashSnapshot {
	out := series[0]
	for _, s := range series {
		if s.Time.After(t) {
			break
		}
		out = s
	}
	return out
}

func flatPoint(t time.Time, v float64) market.HistoryPoint {
	return market.HistoryPoint{Time: t, Price: v, Low: v, High: v, Open: v, Close: v}
}

func signOf(v float64) string {
	if v < 0 {
		return "-"
	}
	return "+"
}

// fmtAmount renders v with at most two fraction digits, trailing zeros
// trimmed.
func fmtAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
