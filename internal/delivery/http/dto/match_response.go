package dto

import (
	"time"

	"open-inn/internal/domain/match"
	"open-inn/internal/usecase"

	"github.com/google/uuid"
)

type MatchResponse struct {
	ID            uuid.UUID `json:"id"`
	ProjectID     uuid.UUID `json:"project_id"`
	FreelancerID  uuid.UUID `json:"freelancer_id"`
	MatchScore    int       `json:"match_score"`
	MatchReason   string    `json:"match_reason"`
	MatchType     string    `json:"match_type"`
	SkillsMatched []string  `json:"skills_matched"`
	IsViewed      bool      `json:"is_viewed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewMatchResponse(m match.Match) MatchResponse {
	return MatchResponse{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		FreelancerID:  m.FreelancerID,
		MatchScore:    m.MatchScore,
		MatchReason:   m.MatchReason,
		MatchType:     m.MatchType,
		SkillsMatched: m.SkillsMatched,
		IsViewed:      m.IsViewed,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ProjectMatchResponse is a match seen from the project side, with the
// candidate attached when their account still exists.
type ProjectMatchResponse struct {
	MatchResponse
	Candidate *CandidateResponse `json:"candidate,omitempty"`
}

func NewProjectMatchResponse(item usecase.ProjectMatchItem) ProjectMatchResponse {
	resp := ProjectMatchResponse{MatchResponse: NewMatchResponse(item.Match)}
	if item.Candidate != nil {
		cand := NewCandidateResponse(*item.Candidate)
		resp.Candidate = &cand
	}
	return resp
}

// UserMatchResponse is a match seen from the freelancer side.
type UserMatchResponse struct {
	MatchResponse
	Project *ProjectResponse `json:"project,omitempty"`
}

func NewUserMatchResponse(item usecase.UserMatchItem) UserMatchResponse {
	resp := UserMatchResponse{MatchResponse: NewMatchResponse(item.Match)}
	if item.Project != nil {
		proj := NewProjectResponse(*item.Project, item.Owner)
		resp.Project = &proj
	}
	return resp
}

type MatchTypeStatsResponse struct {
	MatchType string  `json:"match_type"`
	Count     int     `json:"count"`
	AvgScore  float64 `json:"avg_score"`
	MaxScore  int     `json:"max_score"`
	MinScore  int     `json:"min_score"`
}

type MatchStatsResponse struct {
	TotalMatches int                      `json:"total_matches"`
	ByType       []MatchTypeStatsResponse `json:"by_type"`
}

func NewMatchStatsResponse(s match.Stats) MatchStatsResponse {
	byType := make([]MatchTypeStatsResponse, 0, len(s.ByType))
	for _, ts := range s.ByType {
		byType = append(byType, MatchTypeStatsResponse{
			MatchType: ts.MatchType,
			Count:     ts.Count,
			AvgScore:  ts.AvgScore,
			MaxScore:  ts.MaxScore,
			MinScore:  ts.MinScore,
		})
	}
	return MatchStatsResponse{TotalMatches: s.TotalMatches, ByType: byType}
}

type GenerationResponse struct {
	Success        bool   `json:"success"`
	MatchesCreated int    `json:"matches_created"`
	Message        string `json:"message"`
}

func NewGenerationResponse(r usecase.GenerationResult) GenerationResponse {
	return GenerationResponse{Success: r.Success, MatchesCreated: r.MatchesCreated, Message: r.Message}
}
