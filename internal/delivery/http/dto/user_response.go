package dto

import (
	"time"

	"open-inn/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Bio              string    `json:"bio,omitempty"`
	UserRole         string    `json:"user_role"`
	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Bio:              u.Bio,
		UserRole:         u.UserRole,
		ProfileCompleted: u.ProfileCompleted,
		CreatedAt:        u.CreatedAt,
	}
}

type ProfileResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	Skills          []string  `json:"skills"`
	YearsExperience int       `json:"years_experience"`
	HourlyRate      float64   `json:"hourly_rate"`
	PortfolioURL    string    `json:"portfolio_url,omitempty"`
	GithubURL       string    `json:"github_url,omitempty"`
	LinkedinURL     string    `json:"linkedin_url,omitempty"`
	Availability    string    `json:"availability,omitempty"`
	LookingFor      string    `json:"looking_for,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewProfileResponse(p user.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:          p.UserID,
		Skills:          p.Skills,
		YearsExperience: p.YearsExperience,
		HourlyRate:      p.HourlyRate,
		PortfolioURL:    p.PortfolioURL,
		GithubURL:       p.GithubURL,
		LinkedinURL:     p.LinkedinURL,
		Availability:    p.Availability,
		LookingFor:      p.LookingFor,
		UpdatedAt:       p.UpdatedAt,
	}
}

// CandidateResponse is the public view of a matched freelancer: user fields
// without credentials, plus the profile.
type CandidateResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio,omitempty"`
	UserRole        string    `json:"user_role"`
	Skills          []string  `json:"skills"`
	YearsExperience int       `json:"years_experience"`
	HourlyRate      float64   `json:"hourly_rate"`
	PortfolioURL    string    `json:"portfolio_url,omitempty"`
	GithubURL       string    `json:"github_url,omitempty"`
	LinkedinURL     string    `json:"linkedin_url,omitempty"`
	Availability    string    `json:"availability,omitempty"`
}

func NewCandidateResponse(c user.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:              c.User.ID,
		Name:            c.User.Name,
		Bio:             c.User.Bio,
		UserRole:        c.User.UserRole,
		Skills:          c.Profile.Skills,
		YearsExperience: c.Profile.YearsExperience,
		HourlyRate:      c.Profile.HourlyRate,
		PortfolioURL:    c.Profile.PortfolioURL,
		GithubURL:       c.Profile.GithubURL,
		LinkedinURL:     c.Profile.LinkedinURL,
		Availability:    c.Profile.Availability,
	}
}
