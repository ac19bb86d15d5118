// Package analyst turns a verification summary into a short LLM-written
// review. Purely advisory: the report stands on its own without it.
package analyst

import (
	"context"
	"fmt"
	"strings"

	"github.com/newthinker/veritas/internal/core"
	"github.com/newthinker/veritas/internal/llm"
	"github.com/newthinker/veritas/internal/result"
	"github.com/newthinker/veritas/internal/verify"
	"go.uber.org/zap"
)

const systemPrompt = `You are a quantitative trading reviewer. You are given
the headline figures of a strategy backtest and the findings of an automated
verification pass over its result record. Write a short assessment (at most
three paragraphs) of whether the results can be trusted and what to look at
next. Be direct about red flags. Do not restate the raw numbers back.`

// Analyst reviews verification findings through an LLM provider.
type Analyst struct {
	llm llm.Provider
	log *zap.Logger
}

// New creates an Analyst.
func New(provider llm.Provider, log *zap.Logger) *Analyst {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyst{llm: provider, log: log}
}

// Review asks the provider for commentary on the findings.
func (a *Analyst) Review(ctx context.Context, res *result.Result, sum *verify.Summary) (string, error) {
	prompt := buildPrompt(res, sum)

	resp, err := a.llm.Chat(ctx, llm.ChatRequest{
		SystemPrompt: systemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   512,
		Temperature: 0.3,
	})
	if err != nil {
		return "", core.WrapError(core.ErrLLMFailed, err)
	}

	a.log.Debug("analyst review complete",
		zap.String("provider", a.llm.Name()),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens))

	return strings.TrimSpace(resp.Content), nil
}

func buildPrompt(res *result.Result, sum *verify.Summary) string {
	var sb strings.Builder

	sb.WriteString("Backtest headline figures:\n")
	fmt.Fprintf(&sb, "- Initial equity: %.2f, final equity: %.2f\n", res.InitialEquity, res.FinalEquity)
	fmt.Fprintf(&sb, "- Total return: %.2f%%, max drawdown: %.2f%%\n", res.TotalReturnPct, res.MaxDrawdown)
	fmt.Fprintf(&sb, "- Trades: %d, win rate: %.1f%%, Sharpe: %.2f\n",
		sum.TradesTotal, res.Performance.WinRate*100, res.Performance.Sharpe)

	sb.WriteString("\nVerification findings:\n")
	fmt.Fprintf(&sb, "- P&L recomputed for %d of %d trades, %d mismatches\n",
		sum.TradesChecked, sum.TradesTotal, sum.PnLMismatches)
	if sum.CurveChecked {
		if sum.CurveMatch {
			sb.WriteString("- Equity curve endpoint matches reported final equity\n")
		} else {
			sb.WriteString("- Equity curve endpoint DOES NOT match reported final equity\n")
		}
	} else {
		sb.WriteString("- No equity curve present in the record\n")
	}
	fmt.Fprintf(&sb, "- Total fees across all trades: %.2f\n", sum.TotalFees)

	if len(sum.Issues) == 0 {
		sb.WriteString("- No plausibility issues flagged\n")
	} else {
		sb.WriteString("- Plausibility issues flagged:\n")
		for _, issue := range sum.Issues {
			fmt.Fprintf(&sb, "  - %s\n", strings.TrimSpace(strings.TrimPrefix(issue, "⚠️")))
		}
	}

	return sb.String()
}
