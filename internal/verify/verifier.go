// Package verify recomputes backtest aggregates from raw trade fields and
// prints a human-readable cross-check report. Findings are informational:
// nothing here returns an error for a bad-looking record.
package verify

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/newthinker/veritas/internal/config"
	"github.com/newthinker/veritas/internal/result"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var separator = strings.Repeat("=", 60)

// Verifier runs the verification pass over one record and writes the report
// to out.
type Verifier struct {
	cfg *config.Config
	out io.Writer
	log *zap.Logger
	p   *message.Printer
}

// New creates a Verifier writing to out.
func New(cfg *config.Config, out io.Writer, log *zap.Logger) *Verifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{
		cfg: cfg,
		out: out,
		log: log,
		p:   message.NewPrinter(language.English),
	}
}

// Summary collects what the report found, for callers that want more than
// console text (tests, metrics, the analyst).
type Summary struct {
	TradesTotal   int
	TradesChecked int
	PnLMismatches int
	CurveChecked  bool
	CurveMatch    bool
	TotalFees     float64
	Issues        []string
}

// Clean reports whether every check passed.
func (s *Summary) Clean() bool {
	return s.PnLMismatches == 0 && len(s.Issues) == 0 && (!s.CurveChecked || s.CurveMatch)
}

func (s *Summary) flag(issue string) {
	s.Issues = append(s.Issues, issue)
}

// Run prints the full verification report and returns its findings.
func (v *Verifier) Run(res *result.Result) *Summary {
	sum := &Summary{TradesTotal: len(res.Trades)}

	v.banner()
	v.printSummary(res)
	v.verifyTrades(res, sum)
	v.verifyEquityCurve(res, sum)
	v.checkRealism(res, sum)
	v.printVerdict(sum)

	fmt.Fprintln(v.out, "\n"+separator)

	v.log.Debug("verification complete",
		zap.Int("trades_checked", sum.TradesChecked),
		zap.Int("pnl_mismatches", sum.PnLMismatches),
		zap.Int("issues", len(sum.Issues)))

	return sum
}

func (v *Verifier) banner() {
	fmt.Fprintln(v.out, separator)
	fmt.Fprintln(v.out, "BACKTEST ANALYSIS - VERIFYING RESULTS")
	fmt.Fprintln(v.out, separator)
}

func (v *Verifier) printSummary(res *result.Result) {
	fmt.Fprintln(v.out, "\n📊 SUMMARY:")
	fmt.Fprintf(v.out, "  Initial Equity: $%s\n", v.money(res.InitialEquity))
	fmt.Fprintf(v.out, "  Final Equity: $%s\n", v.money(res.FinalEquity))
	fmt.Fprintf(v.out, "  Total Return: %.2f%%\n", res.TotalReturnPct)
	fmt.Fprintf(v.out, "  Total Trades: %d\n", len(res.Trades))
	fmt.Fprintf(v.out, "  Win Rate: %.1f%%\n", res.Performance.WinRate*100)
	fmt.Fprintf(v.out, "  Max Drawdown: %.2f%%\n", res.MaxDrawdown)
	fmt.Fprintf(v.out, "  Sharpe Ratio: %.2f\n", res.Performance.Sharpe)
}

// verifyTrades recomputes net P&L for the first SampleTrades trades and
// compares against the reported value. The first DetailTrades trades get an
// expanded block whether or not they match.
func (v *Verifier) verifyTrades(res *result.Result, sum *Summary) {
	fmt.Fprintln(v.out, "\n🔍 P&L VERIFICATION:")

	equity := res.InitialEquity
	limit := v.cfg.Verify.SampleTrades
	if limit > len(res.Trades) {
		limit = len(res.Trades)
	}
	sum.TradesChecked = limit

	for i := 0; i < limit; i++ {
		t := res.Trades[i]
		raw := t.RawPnL()
		net := t.NetPnL()
		equity += net

		diff := math.Abs(net - t.PnL)
		match := diff < v.cfg.Verify.PnLTolerance

		if !match {
			sum.PnLMismatches++
			fmt.Fprintf(v.out, "  ❌ Trade %d: Mismatch!\n", i+1)
			fmt.Fprintf(v.out, "     Calculated: $%.2f, Reported: $%.2f, Diff: $%.2f\n",
				net, t.PnL, diff)
		}

		if i < v.cfg.Verify.DetailTrades {
			mark := "✅"
			if !match {
				mark = "❌"
			}
			fmt.Fprintf(v.out, "\n  Trade %d (%s):\n", i+1, t.SideLabel())
			fmt.Fprintf(v.out, "    Size: %.4f, Entry: $%.2f, Exit: $%.2f\n",
				t.Size, t.EntryPrice, t.ExitPrice)
			fmt.Fprintf(v.out, "    Raw P&L: $%.2f, Fees: $%.2f, Net: $%.2f\n",
				raw, t.Fees, net)
			fmt.Fprintf(v.out, "    Reported: $%.2f %s\n", t.PnL, mark)
			fmt.Fprintf(v.out, "    Equity: $%.2f\n", equity)
		}
	}

	if sum.PnLMismatches == 0 {
		fmt.Fprintln(v.out, "\n✅ All P&L calculations verified!")
	} else {
		fmt.Fprintf(v.out, "\n⚠️  Found %d P&L mismatches\n", sum.PnLMismatches)
	}
}

// verifyEquityCurve checks the last curve point against finalEquity. Records
// without a curve skip the section entirely.
func (v *Verifier) verifyEquityCurve(res *result.Result, sum *Summary) {
	if len(res.EquityCurve) == 0 {
		return
	}
	sum.CurveChecked = true

	last := res.EquityCurve[len(res.EquityCurve)-1]

	fmt.Fprintln(v.out, "\n📈 EQUITY CURVE VERIFICATION:")
	fmt.Fprintf(v.out, "  Points: %d\n", len(res.EquityCurve))
	fmt.Fprintf(v.out, "  Start: $%s\n", v.money(res.EquityCurve[0]))
	fmt.Fprintf(v.out, "  End: $%s\n", v.money(last))
	fmt.Fprintf(v.out, "  Expected End: $%s\n", v.money(res.FinalEquity))

	if math.Abs(last-res.FinalEquity) < v.cfg.Verify.PnLTolerance {
		sum.CurveMatch = true
		fmt.Fprintln(v.out, "  ✅ Equity curve matches final equity")
	} else {
		fmt.Fprintln(v.out, "  ❌ Equity curve mismatch!")
	}
}

func (v *Verifier) printVerdict(sum *Summary) {
	if len(sum.Issues) > 0 {
		fmt.Fprintln(v.out, "\n⚠️  ISSUES FOUND:")
		for _, issue := range sum.Issues {
			fmt.Fprintf(v.out, "  %s\n", issue)
		}
		return
	}
	fmt.Fprintln(v.out, "\n✅ All checks passed - results look realistic!")
}

// money renders a dollar amount with thousands grouping.
func (v *Verifier) money(x float64) string {
	return v.p.Sprintf("%.2f", x)
}
