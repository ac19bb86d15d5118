package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/veritas/internal/analyst"
	"github.com/newthinker/veritas/internal/config"
	"github.com/newthinker/veritas/internal/llm/factory"
	"github.com/newthinker/veritas/internal/logger"
	"github.com/newthinker/veritas/internal/metrics"
	"github.com/newthinker/veritas/internal/result"
	"github.com/newthinker/veritas/internal/source"
	"github.com/newthinker/veritas/internal/verify"
)

func runVerify(cmd *cobra.Command, _ []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg := config.Defaults()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := uuid.NewString()
	log.Debug("starting verification",
		zap.String("run_id", runID),
		zap.String("input", inputPath))

	start := time.Now()

	in, err := source.Open(cmd.Context(), inputPath, cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	res, err := result.Decode(in)
	if err != nil {
		return err
	}

	v := verify.New(cfg, os.Stdout, log)
	sum := v.Run(res)

	if tradesTable {
		v.PrintTrades(res)
	}

	// Commentary and metrics are best-effort: they never fail the run,
	// because the report's findings are informational by contract.
	if analyze {
		runAnalysis(cmd, cfg, log, res, sum)
	}

	if cfg.Metrics.Enabled {
		writeMetrics(cfg, log, sum, time.Since(start))
	}

	log.Debug("verification complete",
		zap.String("run_id", runID),
		zap.Int("pnl_mismatches", sum.PnLMismatches),
		zap.Int("issues", len(sum.Issues)),
		zap.Duration("elapsed", time.Since(start)))

	return nil
}

func runAnalysis(cmd *cobra.Command, cfg *config.Config, log *zap.Logger, res *result.Result, sum *verify.Summary) {
	provider, err := factory.New(cfg.LLM)
	if err != nil {
		log.Warn("analysis skipped", zap.Error(err))
		return
	}

	review, err := analyst.New(provider, log).Review(cmd.Context(), res, sum)
	if err != nil {
		log.Warn("analysis failed", zap.Error(err))
		return
	}

	fmt.Println("\n🤖 ANALYST REVIEW:")
	fmt.Println(review)
}

func writeMetrics(cfg *config.Config, log *zap.Logger, sum *verify.Summary, elapsed time.Duration) {
	reg := metrics.NewRegistry()
	reg.RecordRun(sum.TradesChecked, sum.PnLMismatches, len(sum.Issues), elapsed.Seconds())
	reg.RecordCheck("equity_curve", !sum.CurveChecked || sum.CurveMatch)
	reg.RecordCheck("pnl", sum.PnLMismatches == 0)
	reg.RecordCheck("realism", len(sum.Issues) == 0)

	if err := reg.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		log.Warn("writing metrics textfile failed",
			zap.String("path", cfg.Metrics.Textfile), zap.Error(err))
	}
}
