package analyst

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/newthinker/veritas/internal/core"
	"github.com/newthinker/veritas/internal/llm"
	"github.com/newthinker/veritas/internal/result"
	"github.com/newthinker/veritas/internal/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider implements llm.Provider for tests.
type mockProvider struct {
	lastReq llm.ChatRequest
	content string
	err     error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.ChatResponse{Content: m.content}, nil
}

func TestReview(t *testing.T) {
	mock := &mockProvider{content: "  Results look consistent.\n"}
	a := New(mock, nil)

	res := &result.Result{
		InitialEquity:  1000,
		FinalEquity:    1050,
		TotalReturnPct: 5,
		Performance:    result.Performance{WinRate: 0.6, Sharpe: 1.2},
	}
	sum := &verify.Summary{
		TradesTotal:   20,
		TradesChecked: 10,
		PnLMismatches: 2,
		CurveChecked:  true,
		CurveMatch:    false,
		Issues:        []string{"⚠️  Extreme drawdown: 60.00%"},
	}

	review, err := a.Review(context.Background(), res, sum)
	require.NoError(t, err)
	assert.Equal(t, "Results look consistent.", review)

	prompt := mock.lastReq.Messages[0].Content
	assert.Contains(t, prompt, "P&L recomputed for 10 of 20 trades, 2 mismatches")
	assert.Contains(t, prompt, "DOES NOT match")
	assert.Contains(t, prompt, "Extreme drawdown: 60.00%")
	assert.NotContains(t, prompt, "⚠️")
	assert.True(t, strings.Contains(mock.lastReq.SystemPrompt, "quantitative trading reviewer"))
}

func TestReview_NoCurve(t *testing.T) {
	mock := &mockProvider{content: "ok"}
	a := New(mock, nil)

	_, err := a.Review(context.Background(), &result.Result{}, &verify.Summary{})
	require.NoError(t, err)
	assert.Contains(t, mock.lastReq.Messages[0].Content, "No equity curve present")
}

func TestReview_ProviderError(t *testing.T) {
	mock := &mockProvider{err: errors.New("connection refused")}
	a := New(mock, nil)

	_, err := a.Review(context.Background(), &result.Result{}, &verify.Summary{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrLLMFailed))
}
