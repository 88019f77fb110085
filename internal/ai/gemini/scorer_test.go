package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"open-inn/internal/domain/matching"
	"open-inn/internal/domain/project"
	"open-inn/internal/domain/user"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
	lastConfig *genai.GenerateContentConfig
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	s.lastPrompt = prompt
	s.lastConfig = config
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testProject() (project.Project, user.User) {
	budget := 1000.0
	return project.Project{
		Name:           "Marketplace API",
		Description:    "Build the backend",
		RequiredSkills: []string{"go", "postgresql"},
		BudgetMax:      &budget,
		ProjectType:    project.TypeFreelanceGig,
	}, user.User{Name: "Owner", Bio: "Shipping things"}
}

func testCandidate() user.Candidate {
	return user.Candidate{
		User: user.User{Name: "Dev", UserRole: user.RoleFreelancer},
		Profile: user.Profile{
			Skills:          []string{"go", "postgresql"},
			YearsExperience: 4,
			HourlyRate:      60,
		},
	}
}

func TestScorer_ParsesFencedJSON(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"score\":85,\"reason\":\"Strong fit\"}\n```"}
	scorer := NewScorer(stub, zap.NewNop(), 0)

	p, owner := testProject()
	res, err := scorer.Score(context.Background(), p, owner, testCandidate(), matching.SkillMatch{Percentage: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 85 {
		t.Fatalf("expected score 85, got %d", res.Score)
	}
	if res.Reason != "Strong fit" {
		t.Fatalf("unexpected reason: %q", res.Reason)
	}
	if stub.lastPrompt == "" {
		t.Fatalf("expected prompt to be sent")
	}
	if !strings.Contains(stub.lastPrompt, "Preliminary Skill Match: 100%") {
		t.Fatalf("expected preliminary match in prompt")
	}
}

func TestScorer_GenerationConfig(t *testing.T) {
	stub := &stubGenerator{response: `{"score":50,"reason":"ok"}`}
	scorer := NewScorer(stub, zap.NewNop(), 0)

	p, owner := testProject()
	if _, err := scorer.Score(context.Background(), p, owner, testCandidate(), matching.SkillMatch{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := stub.lastConfig
	if cfg == nil {
		t.Fatalf("expected generation config")
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.3 {
		t.Fatalf("unexpected temperature: %v", cfg.Temperature)
	}
	if cfg.MaxOutputTokens != 300 {
		t.Fatalf("unexpected max output tokens: %d", cfg.MaxOutputTokens)
	}
	if cfg.TopP == nil || *cfg.TopP != 0.8 {
		t.Fatalf("unexpected topP: %v", cfg.TopP)
	}
	if cfg.TopK == nil || *cfg.TopK != 40 {
		t.Fatalf("unexpected topK: %v", cfg.TopK)
	}
}

func TestScorer_ParsesFencedJSONWithPreamble(t *testing.T) {
	stub := &stubGenerator{response: "Here is my assessment:\n```json\n{\"score\":85,\"reason\":\"Strong fit\"}\n```"}
	scorer := NewScorer(stub, zap.NewNop(), 0)

	p, owner := testProject()
	res, err := scorer.Score(context.Background(), p, owner, testCandidate(), matching.SkillMatch{Percentage: 100})
	if err != nil {
		t.Fatalf("prose before the fence must not fail parsing: %v", err)
	}
	if res.Score != 85 || res.Reason != "Strong fit" {
		t.Fatalf("unexpected assessment: %+v", res)
	}
}

func TestScorer_ClampsScore(t *testing.T) {
	cases := []struct {
		response string
		want     int
	}{
		{`{"score":150,"reason":"too eager"}`, 100},
		{`{"score":-10,"reason":"too harsh"}`, 0},
		{`{"score":42.6,"reason":"rounded"}`, 43},
	}

	p, owner := testProject()
	for _, tc := range cases {
		stub := &stubGenerator{response: tc.response}
		scorer := NewScorer(stub, zap.NewNop(), 0)
		res, err := scorer.Score(context.Background(), p, owner, testCandidate(), matching.SkillMatch{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Score != tc.want {
			t.Fatalf("response %s: expected %d, got %d", tc.response, tc.want, res.Score)
		}
	}
}

func TestScorer_FailureVariants(t *testing.T) {
	p, owner := testProject()

	cases := []struct {
		name     string
		response string
		err      error
	}{
		{name: "generator error", err: errors.New("http 500")},
		{name: "no json", response: "I think this candidate is great!"},
		{name: "score wrong type", response: `{"score":"high","reason":"ok"}`},
		{name: "missing score", response: `{"reason":"ok"}`},
		{name: "missing reason", response: `{"score":70}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubGenerator{response: tc.response, err: tc.err}
			scorer := NewScorer(stub, zap.NewNop(), 0)
			if _, err := scorer.Score(context.Background(), p, owner, testCandidate(), matching.SkillMatch{}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"score\":1}", `{"score":1}`},
		{"```json\n{\"score\":1}\n```", `{"score":1}`},
		{"```\n{\"score\":1}\n```", `{"score":1}`},
		{"  {\"score\":1}  ", `{"score":1}`},
		{"Here is my assessment:\n```json\n{\"score\":1}\n```", `{"score":1}`},
		{"Sure!\n```\n{\"score\":1}\n```\nLet me know if you need more.", `{"score":1}`},
	}
	for _, tc := range cases {
		if got := extractJSON(tc.in); got != tc.want {
			t.Fatalf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
