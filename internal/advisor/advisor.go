// Package advisor turns a fleet compliance snapshot into human-readable
// guidance by prompting a text-generation provider.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/fleetadvisor/internal/compliance"
	"github.com/HerbHall/fleetadvisor/internal/llm"
)

// promptTemplate frames the snapshot for the model and pins the reply
// shape. Placeholders: snapshot JSON, Slack report title.
const promptTemplate = `You are a senior endpoint engineer and security-conscious
client platform owner. You are reviewing a Jamf Pro-managed macOS fleet.

You are given the following JSON describing fleet posture:

` + "```json\n%s\n```" + `

1. Write a concise plain-English summary (2-3 paragraphs) of the current fleet posture.
2. Propose concrete remediation steps suitable for Jamf Pro:
   - smart group logic ideas
   - policy changes
   - zero-touch / baseline improvements
3. Generate a Slack-ready summary with bullets and emojis titled %q.

Return your answer in *valid JSON* with this structure:

{
  "summary": "...",
  "remediation_plan": "...",
  "slack_message": "..."
}`

// Advice is the structured answer expected back from the model.
type Advice struct {
	Summary         string `json:"summary"`
	RemediationPlan string `json:"remediation_plan"`
	SlackMessage    string `json:"slack_message"`
}

// Advisor drives the analysis prompt against one llm.Provider.
type Advisor struct {
	provider   llm.Provider
	slackTitle string
	logger     *zap.Logger
}

// New creates an Advisor. slackTitle names the Slack report the model is
// asked to produce.
func New(provider llm.Provider, slackTitle string, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{provider: provider, slackTitle: slackTitle, logger: logger}
}

// AnalyzeFleet asks the provider for a posture summary, remediation plan,
// and Slack message for the given snapshot. Provider failures propagate;
// a reply that is not the expected JSON degrades to raw text in Summary
// rather than failing the run.
func (a *Advisor) AnalyzeFleet(ctx context.Context, snapshot compliance.Snapshot) (Advice, error) {
	snapshotJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return Advice{}, fmt.Errorf("marshal snapshot: %w", err)
	}

	prompt := fmt.Sprintf(promptTemplate, snapshotJSON, a.slackTitle)

	resp, err := a.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.4),
		llm.WithMaxTokens(2048),
	)
	if err != nil {
		return Advice{}, fmt.Errorf("generate fleet analysis: %w", err)
	}

	return a.parseAdvice(resp.Content), nil
}

// parseAdvice extracts the structured reply, tolerating a Markdown code
// fence around the JSON. Anything else is kept verbatim as the summary.
func (a *Advisor) parseAdvice(raw string) Advice {
	text := strings.TrimSpace(raw)

	var advice Advice
	if err := json.Unmarshal([]byte(stripFence(text)), &advice); err != nil {
		a.logger.Debug("model reply was not structured JSON, using raw text", zap.Error(err))
		return Advice{Summary: text}
	}
	return advice
}

// stripFence removes a surrounding ```json ... ``` (or bare ```) fence.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	trimmed := strings.TrimPrefix(s, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
