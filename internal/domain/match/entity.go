package match

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeAIGenerated       = "ai_generated"
	TypeRuleBasedFallback = "rule_based_fallback"
)

// Match is one scored (project, freelancer) pair. At most one row exists per
// pair; re-running generation refreshes score/reason/type in place.
type Match struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	FreelancerID  uuid.UUID
	MatchScore    int
	MatchReason   string
	MatchType     string
	SkillsMatched []string
	IsViewed      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TypeStats is one row of the per-type score aggregate for a project.
type TypeStats struct {
	MatchType string
	Count     int
	AvgScore  float64
	MaxScore  int
	MinScore  int
}

type Stats struct {
	TotalMatches int
	ByType       []TypeStats
}
