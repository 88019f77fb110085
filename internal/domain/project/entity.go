package project

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeFreelanceGig = "freelance_gig"
	TypeOpenSource   = "open_source"
	TypeStartup      = "startup"
	TypeHackathon    = "hackathon"
	TypeFullTimeJob  = "full_time_job"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Project struct {
	ID             uuid.UUID
	Name           string
	Description    string
	RequiredSkills []string
	TechStack      []string
	BudgetMin      *float64
	BudgetMax      *float64
	Timeline       string
	ProjectType    string
	Status         string
	OwnerID        uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveSkills returns the skill list the matcher runs against: the
// explicit requirements when present, otherwise the tech stack.
func (p Project) EffectiveSkills() []string {
	if len(p.RequiredSkills) > 0 {
		return p.RequiredSkills
	}
	return p.TechStack
}

func ValidType(t string) bool {
	switch t {
	case TypeFreelanceGig, TypeOpenSource, TypeStartup, TypeHackathon, TypeFullTimeJob:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
