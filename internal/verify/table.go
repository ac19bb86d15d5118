package verify

import (
	"fmt"

	"github.com/newthinker/veritas/internal/result"
	"github.com/olekukonko/tablewriter"
)

// PrintTrades renders every trade in the record as a table appendix, with
// the recomputed net P&L next to the reported one. Not part of the standard
// report; enabled by flag.
func (v *Verifier) PrintTrades(res *result.Result) {
	if len(res.Trades) == 0 {
		return
	}

	fmt.Fprintln(v.out, "\n📋 TRADES:")

	table := tablewriter.NewWriter(v.out)
	table.Header("#", "Side", "Size", "Entry", "Exit", "Fees", "Slippage", "Reported", "Recomputed")

	for i, t := range res.Trades {
		table.Append(
			fmt.Sprintf("%d", i+1),
			t.SideLabel(),
			fmt.Sprintf("%.4f", t.Size),
			fmt.Sprintf("$%.2f", t.EntryPrice),
			fmt.Sprintf("$%.2f", t.ExitPrice),
			fmt.Sprintf("$%.2f", t.Fees),
			fmt.Sprintf("$%.2f", t.Slippage),
			fmt.Sprintf("$%.2f", t.PnL),
			fmt.Sprintf("$%.2f", t.NetPnL()),
		)
	}

	table.Render()
}
