package intel

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/intel-cli/internal/config"
	"github.com/sells-group/intel-cli/pkg/anthropic"
)

// RunResult is the aggregate outcome of one orchestration run. Empty strings
// model absent fields: Error is set only when a stage (or the orchestrator
// itself) failed, and in that case at least one of RawData/Analysis is empty.
type RunResult struct {
	RunID      string  `json:"run_id"`
	Company    string  `json:"company"`
	RawData    string  `json:"raw_data,omitempty"`
	Analysis   string  `json:"analysis,omitempty"`
	Error      string  `json:"error,omitempty"`
	Transcript []Entry `json:"transcript"`
}

// Orchestrator drives the two-stage intelligence pipeline: collection, then
// analysis fed with the collection output. It owns its Transcript exclusively;
// concurrent runs each need their own Orchestrator.
type Orchestrator struct {
	collect *Stage
	analyze *Stage
	log     Transcript
}

// New builds an Orchestrator with a fresh transcript and both stages bound to
// the given model client.
func New(client anthropic.Client, cfg config.AnthropicConfig) *Orchestrator {
	return &Orchestrator{
		collect: NewCollectionStage(client, cfg),
		analyze: NewAnalysisStage(client, cfg),
	}
}

// Run executes the pipeline for a single company, fail-fast: an invalid
// identifier or a stage failure short-circuits the sequence and the result
// carries whatever was determined up to that point. Faults never escape;
// anything unexpected is converted into the result's Error field.
func (o *Orchestrator) Run(ctx context.Context, company string) (result *RunResult) {
	result = &RunResult{
		RunID:      uuid.NewString(),
		Company:    company,
		Transcript: []Entry{},
	}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Sprintf("orchestration error for %s: %v", company, r)
			result.Transcript = o.log.Snapshot()
			zap.L().Error("orchestrator: recovered from panic",
				zap.String("run_id", result.RunID),
				zap.String("company", company),
				zap.Any("panic", r),
			)
		}
	}()

	if strings.TrimSpace(company) == "" {
		result.Company = ""
		result.Error = "invalid company name provided"
		return result
	}

	log := zap.L().With(zap.String("run_id", result.RunID), zap.String("company", company))
	log.Info("orchestrator: collecting data")

	rawData, err := o.collect.Run(ctx, map[string]string{"company": company})
	if err != nil {
		result.Error = fmt.Sprintf("error collecting data for %s: %s", company, err.Error())
		result.Transcript = o.log.Snapshot()
		log.Warn("orchestrator: collection failed", zap.Error(err))
		return result
	}
	result.RawData = rawData
	o.log.Append("Collected data for "+company, rawData)

	log.Info("orchestrator: analyzing data")

	analysis, err := o.analyze.Run(ctx, map[string]string{"company_data": rawData})
	if err != nil {
		result.Error = fmt.Sprintf("error analyzing company data: %s", err.Error())
		result.Transcript = o.log.Snapshot()
		log.Warn("orchestrator: analysis failed", zap.Error(err))
		return result
	}
	result.Analysis = analysis
	o.log.Append("Analyze company data", analysis)

	result.Transcript = o.log.Snapshot()
	log.Info("orchestrator: run complete", zap.Int("transcript_entries", o.log.Len()))

	return result
}
