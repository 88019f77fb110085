package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleProjectOwner          = "project_owner"
	RoleFreelancer            = "freelancer"
	RoleOpenSourceContributor = "open_source_contributor"
	RoleJobSeeker             = "job_seeker"
	RoleHackathonParticipant  = "hackathon_participant"
)

// CandidateRoles are the roles eligible for project matching. Project owners
// are never candidates.
func CandidateRoles() []string {
	return []string{
		RoleFreelancer,
		RoleOpenSourceContributor,
		RoleJobSeeker,
		RoleHackathonParticipant,
	}
}

type User struct {
	ID               uuid.UUID
	Name             string
	Email            string
	PasswordHash     string
	Bio              string
	UserRole         string
	ProfileCompleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Profile struct {
	UserID          uuid.UUID
	Skills          []string
	YearsExperience int
	HourlyRate      float64
	PortfolioURL    string
	GithubURL       string
	LinkedinURL     string
	Availability    string
	LookingFor      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Candidate is a user joined with their freelancer profile, as consumed by
// the matchmaking pipeline.
type Candidate struct {
	User    User
	Profile Profile
}
