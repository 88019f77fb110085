package ai

import (
	"context"
	"errors"

	"open-inn/internal/domain/matching"
	"open-inn/internal/domain/project"
	"open-inn/internal/domain/user"
)

// Assessment is a successful AI scoring of one (project, candidate) pair.
// The score is already clamped into [0,100].
type Assessment struct {
	Score  int
	Reason string
}

// Scorer produces an AI match assessment. Any returned error, whatever its
// cause, tells the caller to fall back to rule-based scoring.
type Scorer interface {
	Score(ctx context.Context, p project.Project, owner user.User, cand user.Candidate, prelim matching.SkillMatch) (Assessment, error)
}

// ErrNotConfigured is returned by the unconfigured scorer when no API
// credential was provided at startup.
var ErrNotConfigured = errors.New("ai scorer is not configured")

type unconfigured struct{}

// Unconfigured returns a Scorer that fails every attempt, so generation runs
// entirely on the rule-based fallback.
func Unconfigured() Scorer {
	return unconfigured{}
}

func (unconfigured) Score(context.Context, project.Project, user.User, user.Candidate, matching.SkillMatch) (Assessment, error) {
	return Assessment{}, ErrNotConfigured
}
