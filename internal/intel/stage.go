package intel

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/intel-cli/internal/config"
	"github.com/sells-group/intel-cli/pkg/anthropic"
)

const collectionSystemText = "You are a data collection agent for a company intelligence service."

const collectionPrompt = `Collect recent news, stock performance, and key events
for the company: {company}

If real-time data is unavailable, generate realistic dummy data.
Output in structured JSON format.`

const analysisSystemText = "You are a financial analyst agent producing business outlooks."

const analysisPrompt = `Based on the following company data:
{company_data}

1. Summarize the current business situation
2. Identify growth opportunities
3. Identify risks
4. Provide an overall outlook`

// Stage is one templated model invocation with named required inputs. Input
// validation happens before any API call; a model failure is returned as an
// error value and never retried.
type Stage struct {
	name     string
	system   string
	template string
	required []string
	client   anthropic.Client
	cfg      config.AnthropicConfig
}

// NewCollectionStage builds the stage that gathers news, stock performance,
// and key events for a company. Its single required input is "company".
func NewCollectionStage(client anthropic.Client, cfg config.AnthropicConfig) *Stage {
	return &Stage{
		name:     "collect",
		system:   collectionSystemText,
		template: collectionPrompt,
		required: []string{"company"},
		client:   client,
		cfg:      cfg,
	}
}

// NewAnalysisStage builds the stage that turns collected data into a business
// outlook. Its single required input is "company_data", the collection
// stage's full output.
func NewAnalysisStage(client anthropic.Client, cfg config.AnthropicConfig) *Stage {
	return &Stage{
		name:     "analyze",
		system:   analysisSystemText,
		template: analysisPrompt,
		required: []string{"company_data"},
		client:   client,
		cfg:      cfg,
	}
}

// Name returns the stage's name for logging and transcripts.
func (s *Stage) Name() string {
	return s.name
}

// Run validates inputs, renders the prompt template, and performs one model
// call. All failure modes come back as error values; nothing is propagated
// as a panic past this boundary.
func (s *Stage) Run(ctx context.Context, inputs map[string]string) (string, error) {
	for _, name := range s.required {
		if strings.TrimSpace(inputs[name]) == "" {
			return "", eris.Errorf("%s: invalid input: %q is required", s.name, name)
		}
	}

	temp := s.cfg.Temperature
	resp, err := s.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		System:      s.system,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: renderTemplate(s.template, inputs)},
		},
	})
	if err != nil {
		return "", eris.Wrapf(err, "%s: model call", s.name)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", eris.Errorf("%s: model returned empty content (stop reason %q)", s.name, resp.StopReason)
	}

	resp.Usage.LogCost(s.cfg.Model, s.name)
	zap.L().Debug("stage complete",
		zap.String("stage", s.name),
		zap.Int("output_chars", len(text)),
	)

	return text, nil
}

// renderTemplate substitutes every {name} placeholder with its input value.
func renderTemplate(template string, inputs map[string]string) string {
	pairs := make([]string, 0, len(inputs)*2)
	for name, value := range inputs {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
