package verify

import (
	"fmt"
	"math"

	"github.com/newthinker/veritas/internal/result"
)

// checkRealism runs the plausibility heuristics. Every check runs; each
// failure appends to the issue list, each pass prints a success line.
func (v *Verifier) checkRealism(res *result.Result, sum *Summary) {
	fmt.Fprintln(v.out, "\n🎯 REALISM CHECK:")

	if math.Abs(res.TotalReturnPct) > v.cfg.Realism.MaxReturnPct {
		sum.flag(fmt.Sprintf("⚠️  Extreme return: %.2f%%", res.TotalReturnPct))
	} else {
		fmt.Fprintf(v.out, "  ✅ Return is reasonable: %.2f%%\n", res.TotalReturnPct)
	}

	winRate := res.Performance.WinRate * 100
	if winRate < v.cfg.Realism.WinRateMin*100 || winRate > v.cfg.Realism.WinRateMax*100 {
		sum.flag(fmt.Sprintf("⚠️  Unusual win rate: %.1f%%", winRate))
	} else {
		fmt.Fprintf(v.out, "  ✅ Win rate is reasonable: %.1f%%\n", winRate)
	}

	if len(res.Trades) == 0 {
		sum.flag("⚠️  No trades generated")
	} else {
		fmt.Fprintf(v.out, "  ✅ Generated %d trades\n", len(res.Trades))
	}

	if res.MaxDrawdown > v.cfg.Realism.MaxDrawdownPct {
		sum.flag(fmt.Sprintf("⚠️  Extreme drawdown: %.2f%%", res.MaxDrawdown))
	} else {
		fmt.Fprintf(v.out, "  ✅ Max drawdown is reasonable: %.2f%%\n", res.MaxDrawdown)
	}

	// Fee sum covers the entire sequence, not just the sampled trades.
	sum.TotalFees = res.TotalFees()
	if sum.TotalFees == 0 {
		sum.flag("⚠️  No fees deducted")
	} else {
		fmt.Fprintf(v.out, "  ✅ Fees deducted: $%.2f\n", sum.TotalFees)
	}
}
