package dto

import (
	"time"

	"open-inn/internal/domain/project"
	"open-inn/internal/domain/user"

	"github.com/google/uuid"
)

type ProjectOwnerResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Bio  string    `json:"bio,omitempty"`
}

type ProjectResponse struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description,omitempty"`
	RequiredSkills []string              `json:"required_skills"`
	TechStack      []string              `json:"tech_stack"`
	BudgetMin      *float64              `json:"budget_min"`
	BudgetMax      *float64              `json:"budget_max"`
	Timeline       string                `json:"timeline,omitempty"`
	ProjectType    string                `json:"project_type"`
	Status         string                `json:"status"`
	Owner          *ProjectOwnerResponse `json:"owner,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

func NewProjectResponse(p project.Project, owner *user.User) ProjectResponse {
	resp := ProjectResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		RequiredSkills: p.RequiredSkills,
		TechStack:      p.TechStack,
		BudgetMin:      p.BudgetMin,
		BudgetMax:      p.BudgetMax,
		Timeline:       p.Timeline,
		ProjectType:    p.ProjectType,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	}
	if owner != nil {
		resp.Owner = &ProjectOwnerResponse{ID: owner.ID, Name: owner.Name, Bio: owner.Bio}
	}
	return resp
}
