package result

import (
	"encoding/json"
	"io"

	"github.com/newthinker/veritas/internal/core"
)

// Trade side values as recorded by the simulator. Side is the action that
// closed the position: a SELL closes a long, a BUY closes a short.
const (
	SideSell = "SELL"
	SideBuy  = "BUY"
)

// Result is a serialized backtest output record. Every field is optional;
// absent fields decode to their zero value and the record is never rejected
// for being incomplete.
type Result struct {
	InitialEquity  float64     `json:"initialEquity"`
	FinalEquity    float64     `json:"finalEquity"`
	TotalReturnPct float64     `json:"totalReturnPct"`
	MaxDrawdown    float64     `json:"maxDrawdown"` // percent, non-negative by convention
	Trades         []Trade     `json:"trades"`
	EquityCurve    []float64   `json:"equityCurve"` // chronological
	Performance    Performance `json:"performance"`
}

// Performance holds the reported aggregate metrics.
type Performance struct {
	WinRate float64 `json:"winRate"` // fraction in [0,1]
	Sharpe  float64 `json:"sharpe"`
}

// Trade is a single closed trade from the record.
type Trade struct {
	EntryPrice float64 `json:"entryPrice"`
	ExitPrice  float64 `json:"exitPrice"`
	Size       float64 `json:"size"`
	Side       string  `json:"side"`
	Fees       float64 `json:"fees"`
	Slippage   float64 `json:"slippage"` // recorded but not part of the P&L recomputation
	PnL        float64 `json:"pnl"`      // reported net P&L, the value under verification
}

// RawPnL recomputes gross P&L from prices and size. A SELL side closed a
// long position; any other side value is treated as closing a short, which
// matches how the simulator has always labeled its records.
func (t Trade) RawPnL() float64 {
	if t.Side == SideSell {
		return (t.ExitPrice - t.EntryPrice) * t.Size
	}
	return (t.EntryPrice - t.ExitPrice) * t.Size
}

// NetPnL is gross P&L minus fees. Slippage is deliberately excluded: the
// upstream engine reports it per trade but does not fold it into pnl.
func (t Trade) NetPnL() float64 {
	return t.RawPnL() - t.Fees
}

// SideLabel is the side as printed in reports. Records with no side at all
// display as BUY, which is also how they are classified.
func (t Trade) SideLabel() string {
	if t.Side == "" {
		return SideBuy
	}
	return t.Side
}

// TotalFees sums fees over the entire trade sequence.
func (r *Result) TotalFees() float64 {
	var total float64
	for _, t := range r.Trades {
		total += t.Fees
	}
	return total
}

// Decode parses a Result from JSON.
func Decode(rd io.Reader) (*Result, error) {
	var res Result
	if err := json.NewDecoder(rd).Decode(&res); err != nil {
		return nil, core.WrapError(core.ErrParseFailed, err)
	}
	return &res, nil
}
