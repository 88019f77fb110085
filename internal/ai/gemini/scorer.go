package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"open-inn/internal/ai"
	"open-inn/internal/domain/matching"
	"open-inn/internal/domain/project"
	"open-inn/internal/domain/user"
	"open-inn/internal/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	scoreTemperature     = 0.3
	scoreMaxOutputTokens = 300
	scoreTopP            = 0.8
	scoreTopK            = 40

	defaultMaxLogLength = 200
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Scorer asks Gemini for a strict-JSON match assessment of one
// (project, candidate) pair.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{generator: generator, logger: log, maxLogLen: maxLogLength}
}

func (s *Scorer) Score(ctx context.Context, p project.Project, owner user.User, cand user.Candidate, prelim matching.SkillMatch) (ai.Assessment, error) {
	prompt := buildPrompt(p, owner, cand, prelim)

	s.logger.Debug("gemini score request",
		zap.String("project_id", p.ID.String()),
		zap.String("candidate_id", cand.User.ID.String()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](scoreTemperature),
		MaxOutputTokens: scoreMaxOutputTokens,
		TopP:            genai.Ptr[float32](scoreTopP),
		TopK:            genai.Ptr[float32](scoreTopK),
	}

	raw, err := s.generator.GenerateContent(ctx, prompt, config)
	if err != nil {
		return ai.Assessment{}, err
	}

	s.logger.Debug("gemini score response",
		zap.String("project_id", p.ID.String()),
		zap.String("candidate_id", cand.User.ID.String()),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	return parseAssessment(raw)
}

func buildPrompt(p project.Project, owner user.User, cand user.Candidate, prelim matching.SkillMatch) string {
	budgetMax := "Unlimited"
	if p.BudgetMax != nil {
		budgetMax = fmt.Sprintf("%.0f", *p.BudgetMax)
	}
	budgetMin := 0.0
	if p.BudgetMin != nil {
		budgetMin = *p.BudgetMin
	}

	projectContext := strings.TrimSpace(fmt.Sprintf(`Project: %s
Description: %s
Required Skills: %s
Budget: $%.0f - $%s
Timeline: %s
Project Type: %s
Owner Bio: %s`,
		p.Name,
		p.Description,
		strings.Join(p.EffectiveSkills(), ", "),
		budgetMin,
		budgetMax,
		orDefault(p.Timeline, "Not specified"),
		orDefault(p.ProjectType, "Not specified"),
		orDefault(owner.Bio, "No bio"),
	))

	candidateContext := strings.TrimSpace(fmt.Sprintf(`Candidate: %s
Role: %s
Skills: %s
Experience: %d years
Hourly Rate: $%s/hr
Bio: %s
GitHub: %s
LinkedIn: %s
Looking For: %s
Portfolio: %s
Preliminary Skill Match: %d%%`,
		cand.User.Name,
		cand.User.UserRole,
		strings.Join(cand.Profile.Skills, ", "),
		cand.Profile.YearsExperience,
		rateOrDefault(cand.Profile.HourlyRate),
		orDefault(cand.User.Bio, "No bio"),
		orDefault(cand.Profile.GithubURL, "Not provided"),
		orDefault(cand.Profile.LinkedinURL, "Not provided"),
		orDefault(cand.Profile.LookingFor, "Any opportunities"),
		orDefault(cand.Profile.PortfolioURL, "Not provided"),
		int(math.Round(prelim.Percentage)),
	))

	return fmt.Sprintf(`You are an expert AI matchmaking system for a freelance/job platform.

Analyze the following project and candidate profile to determine match quality.

PROJECT REQUIREMENTS:
%s

CANDIDATE PROFILE:
%s

TASK: Return ONLY a valid JSON object (no markdown, no extra text) with:
1. "score": A number between 0-100 representing match quality
2. "reason": A compelling 2-3 sentence explanation of why this is a good match

Scoring criteria:
- Skill alignment (40%%): How well do candidate skills match required skills?
- Experience level (20%%): Is experience appropriate for project complexity?
- Budget compatibility (20%%): Does hourly rate fit project budget?
- Role fit (10%%): Does candidate's role align with project type?
- Profile quality (10%%): Quality of portfolio, GitHub, LinkedIn presence

CRITICAL: Return ONLY valid JSON like this:
{"score": 85, "reason": "Strong match because..."}`, projectContext, candidateContext)
}

func parseAssessment(raw string) (ai.Assessment, error) {
	cleaned := extractJSON(raw)

	var payload struct {
		Score  *float64 `json:"score"`
		Reason string   `json:"reason"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return ai.Assessment{}, fmt.Errorf("parse gemini response: %w", err)
	}

	if payload.Score == nil {
		return ai.Assessment{}, fmt.Errorf("gemini response missing numeric score")
	}
	if strings.TrimSpace(payload.Reason) == "" {
		return ai.Assessment{}, fmt.Errorf("gemini response missing reason")
	}

	score := int(math.Round(math.Min(100, math.Max(0, *payload.Score))))

	return ai.Assessment{Score: score, Reason: strings.TrimSpace(payload.Reason)}, nil
}

// extractJSON pulls the JSON payload out of the model reply. The model
// sometimes wraps it in markdown code fences or prefixes it with prose
// despite the JSON-only instruction, so the first fenced block is extracted
// wherever it appears in the text.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if idx := strings.Index(raw, "```"); idx != -1 {
		raw = raw[idx:]
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if end := strings.Index(raw, "```"); end != -1 {
			raw = raw[:end]
		}
		return strings.TrimSpace(raw)
	}

	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func rateOrDefault(rate float64) string {
	if rate <= 0 {
		return "Not specified"
	}
	return fmt.Sprintf("%.0f", rate)
}
