package verify

import (
	"bytes"
	"testing"

	"github.com/newthinker/veritas/internal/config"
	"github.com/newthinker/veritas/internal/result"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func runChecks(t *testing.T, res *result.Result) (*Summary, string) {
	t.Helper()
	var buf bytes.Buffer
	v := New(config.Defaults(), &buf, zap.NewNop())
	sum := &Summary{TradesTotal: len(res.Trades)}
	v.checkRealism(res, sum)
	return sum, buf.String()
}

func TestCheckRealism_AllPass(t *testing.T) {
	sum, out := runChecks(t, cleanResult())

	assert.Empty(t, sum.Issues)
	assert.InDelta(t, 0.5, sum.TotalFees, 1e-9)
	assert.Contains(t, out, "✅ Return is reasonable: 5.00%")
	assert.Contains(t, out, "✅ Win rate is reasonable: 60.0%")
	assert.Contains(t, out, "✅ Generated 1 trades")
	assert.Contains(t, out, "✅ Max drawdown is reasonable: 3.00%")
	assert.Contains(t, out, "✅ Fees deducted: $0.50")
}

func TestCheckRealism_ExtremeReturn(t *testing.T) {
	res := cleanResult()
	res.TotalReturnPct = -250

	sum, out := runChecks(t, res)

	assert.Equal(t, []string{"⚠️  Extreme return: -250.00%"}, sum.Issues)
	assert.NotContains(t, out, "Return is reasonable")
}

func TestCheckRealism_WinRateBounds(t *testing.T) {
	tests := []struct {
		name    string
		winRate float64
		flagged bool
	}{
		{"below range", 0.10, true},
		{"lower bound", 0.20, false},
		{"upper bound", 0.80, false},
		{"above range", 0.85, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := cleanResult()
			res.Performance.WinRate = tt.winRate

			sum, _ := runChecks(t, res)
			if tt.flagged {
				assert.Len(t, sum.Issues, 1)
			} else {
				assert.Empty(t, sum.Issues)
			}
		})
	}
}

func TestCheckRealism_FeeSumCoversAllTrades(t *testing.T) {
	// Fees only on trade 15: the P&L sample never sees it, the fee check does.
	res := cleanResult()
	res.Trades = make([]result.Trade, 15)
	for i := range res.Trades {
		res.Trades[i] = result.Trade{Side: result.SideSell}
	}
	res.Trades[14].Fees = 2.5

	sum, out := runChecks(t, res)

	assert.NotContains(t, sum.Issues, "⚠️  No fees deducted")
	assert.Contains(t, out, "✅ Fees deducted: $2.50")
}

func TestCheckRealism_NoShortCircuit(t *testing.T) {
	// Every check fails; all five still run and all five issues accumulate.
	res := &result.Result{
		TotalReturnPct: 500,
		MaxDrawdown:    90,
		Performance:    result.Performance{WinRate: 0.99},
	}

	sum, _ := runChecks(t, res)
	assert.Len(t, sum.Issues, 5)
}
