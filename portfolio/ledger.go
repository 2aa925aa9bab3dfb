// Package portfolio implements a paper-trading ledger: an append-only
// log of buy/sell operations, the cash balance derived from it, a
// persisted watchlist, and reconstruction of portfolio value over time.
package portfolio

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladche/papertrade/market"
	"github.com/vladche/papertrade/pkg/id"
	"github.com/vladche/papertrade/store"
)

// Keys of the persisted ledger state. The layout predates this module;
// renaming a key orphans existing databases.
const (
	keyOperations = "Saved.Portfolio"
	keyCash       = "Saved.Portfolio.Cash"
	keyCashSeries = "Saved.Portfolio.CashTimeSeries"
	keyInfo       = "Saved.Portfolio.Info"
	keyWatchlist  = "Saved.Watchlist"
)

// DefaultStartCash is the genesis balance of a fresh ledger.
const DefaultStartCash = 100_000

func init() {
	// cash is a plain JSON number on the wire, not a quoted string
	decimal.MarshalJSONWithoutQuotes = true
}

// Operation is one immutable trade record. Amount is signed: positive
// for a buy, negative for a sell.
type Operation struct {
	ID     string      `json:"id"`
	Time   time.Time   `json:"date"`
	Item   market.Item `json:"item"`
	Amount float64     `json:"amount"`
	Price  float64     `json:"price"`
}

// CashSnapshot captures the cash balance resulting from one operation.
type CashSnapshot struct {
	Cash      decimal.Decimal `json:"cash"`
	Time      time.Time       `json:"date"`
	Operation Operation       `json:"operation"`
}

// Summary is the last computed portfolio headline, cached between runs.
type Summary struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	IsPortfolio bool    `json:"isPortfolio"`
}

// DecodeError reports a malformed persisted or imported payload.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode portfolio: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// Options configures a Ledger.
type Options struct {
	// StartCash is the genesis balance; DefaultStartCash when zero.
	StartCash float64
	// AllowNegativePositions permits selling more than is held. It
	// defaults to permissive because the historical behavior never
	// validated sells; flip it off to reject oversells.
	AllowNegativePositions bool
}

// DefaultOptions matches the historical permissive behavior.
func DefaultOptions() Options {
	return Options{StartCash: DefaultStartCash, AllowNegativePositions: true}
}

// Ledger is the portfolio's source of truth: an append-only operation
// log plus the derived cash balance and holdings. It is a synchronous,
// single-writer structure; callers that share one across goroutines
// must serialize mutation themselves.
type Ledger struct {
	store store.Store
	opts  Options
	now   func() time.Time

	cash   decimal.Decimal
	ops    []Operation
	series []CashSnapshot
	info   *Summary

	holdings *List[market.Item]
	journal  *List[Operation]
}

// NewLedger loads persisted state from st and returns a ready ledger.
// Absent or corrupt payloads fall back to an empty log with the start
// cash balance; they never fail construction.
func NewLedger(st store.Store, opts Options) *Ledger {
	if opts.StartCash == 0 {
		opts.StartCash = DefaultStartCash
	}

	l := &Ledger{
		store: st,
		opts:  opts,
		now:   time.Now,
		cash:  decimal.NewFromFloat(opts.StartCash),
	}

	l.loadJSON(keyOperations, &l.ops)
	l.loadJSON(keyCashSeries, &l.series)
	l.loadJSON(keyCash, &l.cash)
	var info Summary
	if l.loadJSON(keyInfo, &info) {
		l.info = &info
	}

	l.holdings = NewList(l.currentItems())
	l.journal = NewList(append([]Operation(nil), l.ops...))
	return l
}

// HoldingsList is the observable view of current holdings.
func (l *Ledger) HoldingsList() *List[market.Item] { return l.holdings }

// OperationsList is the observable view of the full operation log.
func (l *Ledger) OperationsList() *List[Operation] { return l.journal }

// Cash returns the available cash balance.
func (l *Ledger) Cash() decimal.Decimal { return l.cash }

// StartCash returns the genesis balance.
func (l *Ledger) StartCash() decimal.Decimal { return decimal.NewFromFloat(l.opts.StartCash) }

// Log returns a copy of the operation log, oldest first.
func (l *Ledger) Log() []Operation {
	return append([]Operation(nil), l.ops...)
}

// CashSeries returns a copy of the cash snapshot history, oldest first.
func (l *Ledger) CashSeries() []CashSnapshot {
	return append([]CashSnapshot(nil), l.series...)
}

// Info returns the cached summary, or nil if none was stored.
func (l *Ledger) Info() *Summary {
	if l.info == nil {
		return nil
	}
	s := *l.info
	return &s
}

// SetInfo caches and persists the latest computed summary.
func (l *Ledger) SetInfo(s Summary) error {
	l.info = &s
	if err := l.saveJSON(keyInfo, s); err != nil {
		return fmt.Errorf("persist summary: %w", err)
	}
	return nil
}

// ErrOversell is returned by Sell when negative positions are disabled
// and the requested amount exceeds the held position.
var ErrOversell = fmt.Errorf("sell exceeds held position")

// Buy appends a buy operation at the current time and updates cash.
//
// The returned error reports persistence trouble only: the in-memory
// ledger always reflects the operation, even when the write-through
// save failed. Callers may treat the error as advisory.
func (l *Ledger) Buy(item market.Item, amount, price float64) (Operation, error) {
	return l.record(item, amount, price)
}

// Sell appends a sell operation at the current time and updates cash.
// With AllowNegativePositions unset, selling more than the held
// position fails with ErrOversell and records nothing.
func (l *Ledger) Sell(item market.Item, amount, price float64) (Operation, error) {
	if !l.opts.AllowNegativePositions && l.amount(item)-amount < 0 {
		return Operation{}, ErrOversell
	}
	return l.record(item, -amount, price)
}

func (l *Ledger) record(item market.Item, signed, price float64) (Operation, error) {
	op := Operation{
		ID:     id.New(),
		Time:   l.now().UTC(),
		Item:   item,
		Amount: signed,
		Price:  price,
	}
	l.ops = append(l.ops, op)
	saveErr := l.saveJSON(keyOperations, l.ops)

	// cash -= price × signedAmount, computed in decimal so replaying the
	// log always reproduces the balance exactly
	delta := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(signed))
	l.cash = l.cash.Sub(delta)
	if err := l.saveJSON(keyCash, l.cash); err != nil && saveErr == nil {
		saveErr = err
	}

	snap := CashSnapshot{Cash: l.cash, Time: op.Time, Operation: op}
	l.series = append(l.series, snap)
	if err := l.saveJSON(keyCashSeries, l.series); err != nil && saveErr == nil {
		saveErr = err
	}

	l.holdings.Set(l.currentItems())
	l.journal.Set(append([]Operation(nil), l.ops...))

	if saveErr != nil {
		return op, fmt.Errorf("persist ledger: %w", saveErr)
	}
	return op, nil
}

// Position returns the net signed quantity of item held as of asOf:
// the sum of signed amounts of matching operations with time ≤ asOf.
func (l *Ledger) Position(item market.Item, asOf time.Time) float64 {
	var sum float64
	for _, op := range l.ops {
		if op.Item.Same(item) && !op.Time.After(asOf) {
			sum += op.Amount
		}
	}
	return sum
}

// amount is the all-time net position, regardless of timestamps.
func (l *Ledger) amount(item market.Item) float64 {
	var sum float64
	for _, op := range l.ops {
		if op.Item.Same(item) {
			sum += op.Amount
		}
	}
	return sum
}

// Holdings returns the items with a positive net position,
// de-duplicated, in first-seen log order.
func (l *Ledger) Holdings() []market.Item {
	return l.currentItems()
}

func (l *Ledger) currentItems() []market.Item {
	type key struct {
		code string
		typ  market.Type
	}
	seen := make(map[key]bool)
	var out []market.Item
	for _, op := range l.ops {
		k := key{op.Item.Code, op.Item.Type}
		if seen[k] {
			continue
		}
		seen[k] = true
		if l.amount(op.Item) > 0 {
			out = append(out, op.Item)
		}
	}
	return out
}

// ledgerFile is the export wire format: {cash, operations, updates},
// pretty-printed with keys in sorted order and ISO-8601 timestamps.
type ledgerFile struct {
	Cash       decimal.Decimal `json:"cash"`
	Operations []Operation     `json:"operations"`
	Updates    []CashSnapshot  `json:"updates"`
}

// importFile mirrors ledgerFile with required-field tracking: a payload
// missing any of the three keys is malformed.
type importFile struct {
	Cash       *decimal.Decimal `json:"cash"`
	Operations *[]Operation     `json:"operations"`
	Updates    *[]CashSnapshot  `json:"updates"`
}

// Export serializes the full ledger for backup.
func (l *Ledger) Export() ([]byte, error) {
	data := ledgerFile{
		Cash:       l.cash,
		Operations: l.ops,
		Updates:    l.series,
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode portfolio: %w", err)
	}
	return out, nil
}

// Import replaces the entire ledger state from an exported payload.
// The swap is all-or-nothing: a malformed payload yields a *DecodeError
// and leaves the current state untouched. On success the new state is
// persisted and both observable lists are notified.
func (l *Ledger) Import(data []byte) error {
	var in importFile
	if err := json.Unmarshal(data, &in); err != nil {
		return &DecodeError{Err: err}
	}
	if in.Cash == nil || in.Operations == nil || in.Updates == nil {
		return &DecodeError{Err: fmt.Errorf("missing required field")}
	}

	l.ops = *in.Operations
	l.series = *in.Updates
	l.cash = *in.Cash

	var saveErr error
	for _, s := range []struct {
		key string
		val any
	}{
		{keyCashSeries, l.series},
		{keyOperations, l.ops},
		{keyCash, l.cash},
	} {
		if err := l.saveJSON(s.key, s.val); err != nil && saveErr == nil {
			saveErr = err
		}
	}

	l.holdings.Set(l.currentItems())
	l.journal.Set(append([]Operation(nil), l.ops...))

	if saveErr != nil {
		return fmt.Errorf("persist imported ledger: %w", saveErr)
	}
	return nil
}

// loadJSON decodes the stored payload for key into dst. Absent and
// corrupt payloads both report false and leave dst untouched.
func (l *Ledger) loadJSON(key string, dst any) bool {
	raw, err := l.store.Load(key)
	if err != nil || raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false
	}
	return true
}

func (l *Ledger) saveJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return l.store.Save(key, raw)
}
