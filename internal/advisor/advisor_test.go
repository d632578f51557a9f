package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/HerbHall/fleetadvisor/internal/compliance"
	"github.com/HerbHall/fleetadvisor/internal/llm"
)

// fakeProvider records the prompt it was given and returns a canned reply.
type fakeProvider struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (*llm.Response, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: f.reply, Model: "fake-model"}, nil
}

func testSnapshot() compliance.Snapshot {
	return compliance.Snapshot{
		TotalDevices:           42,
		OSVersionBreakdown:     map[string]int{"14.5": 40, "13.0": 2},
		NoncompliantCount:      2,
		NoncompliantPercentage: 4.76,
		MinOSVersion:           "14.0",
	}
}

func TestAnalyzeFleet_StructuredReply(t *testing.T) {
	fake := &fakeProvider{reply: `{
		"summary": "Fleet is mostly healthy.",
		"remediation_plan": "Create a smart group for macOS < 14.0.",
		"slack_message": ":white_check_mark: 95% compliant"
	}`}
	a := New(fake, "Weekly Endpoint Posture Summary", zap.NewNop())

	advice, err := a.AnalyzeFleet(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("AnalyzeFleet: %v", err)
	}
	if advice.Summary != "Fleet is mostly healthy." {
		t.Errorf("Summary = %q", advice.Summary)
	}
	if advice.RemediationPlan != "Create a smart group for macOS < 14.0." {
		t.Errorf("RemediationPlan = %q", advice.RemediationPlan)
	}
	if advice.SlackMessage != ":white_check_mark: 95% compliant" {
		t.Errorf("SlackMessage = %q", advice.SlackMessage)
	}
}

func TestAnalyzeFleet_FencedReply(t *testing.T) {
	fake := &fakeProvider{reply: "```json\n{\"summary\":\"ok\",\"remediation_plan\":\"none\",\"slack_message\":\"all good\"}\n```"}
	a := New(fake, "Weekly Endpoint Posture Summary", zap.NewNop())

	advice, err := a.AnalyzeFleet(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("AnalyzeFleet: %v", err)
	}
	if advice.Summary != "ok" || advice.RemediationPlan != "none" || advice.SlackMessage != "all good" {
		t.Errorf("advice = %+v, want fenced JSON to parse", advice)
	}
}

func TestAnalyzeFleet_ProseReplyDegrades(t *testing.T) {
	prose := "The fleet looks fine overall, though two laptops lag behind."
	fake := &fakeProvider{reply: prose}
	a := New(fake, "Weekly Endpoint Posture Summary", zap.NewNop())

	advice, err := a.AnalyzeFleet(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("AnalyzeFleet: %v", err)
	}
	if advice.Summary != prose {
		t.Errorf("Summary = %q, want the raw reply", advice.Summary)
	}
	if advice.RemediationPlan != "" || advice.SlackMessage != "" {
		t.Errorf("degraded advice should leave other fields empty, got %+v", advice)
	}
}

func TestAnalyzeFleet_ProviderErrorPropagates(t *testing.T) {
	provErr := llm.NewProviderError(llm.ErrCodeServerError, "backend down", nil)
	fake := &fakeProvider{err: provErr}
	a := New(fake, "Weekly Endpoint Posture Summary", zap.NewNop())

	_, err := a.AnalyzeFleet(context.Background(), testSnapshot())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var pe *llm.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want wrapped *llm.ProviderError", err)
	}
}

func TestAnalyzeFleet_PromptCarriesSnapshotAndTitle(t *testing.T) {
	fake := &fakeProvider{reply: `{"summary":"s","remediation_plan":"r","slack_message":"m"}`}
	a := New(fake, "Monthly Posture Report", zap.NewNop())

	if _, err := a.AnalyzeFleet(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("AnalyzeFleet: %v", err)
	}
	for _, want := range []string{
		`"total_devices": 42`,
		`"noncompliant_percentage": 4.76`,
		`"min_os_version": "14.0"`,
		`"Monthly Posture Report"`,
	} {
		if !strings.Contains(fake.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "no fence", in: `{"a":1}`, want: `{"a":1}`},
		{name: "prose", in: "just words", want: "just words"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFence(tt.in); got != tt.want {
				t.Errorf("stripFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
