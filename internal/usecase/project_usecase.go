package usecase

import (
	"context"
	"errors"
	"strings"

	"open-inn/internal/domain/project"
	"open-inn/internal/repository"

	"github.com/google/uuid"
)

type CreateProjectInput struct {
	Name           string
	Description    string
	RequiredSkills []string
	TechStack      []string
	BudgetMin      *float64
	BudgetMax      *float64
	Timeline       string
	ProjectType    string
	OwnerID        uuid.UUID
}

type ProjectUsecase interface {
	Create(ctx context.Context, in CreateProjectInput) (project.Project, error)
	Get(ctx context.Context, id uuid.UUID) (repository.ProjectWithOwner, error)
	ListOpen(ctx context.Context) ([]repository.ProjectWithOwner, error)
	UpdateStatus(ctx context.Context, id, callerID uuid.UUID, status string) error
}

type Projects struct {
	projects repository.ProjectRepository
}

func NewProjectUsecase(projects repository.ProjectRepository) *Projects {
	return &Projects{projects: projects}
}

func (u *Projects) Create(ctx context.Context, in CreateProjectInput) (project.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.OwnerID == uuid.Nil || !project.ValidType(in.ProjectType) {
		return project.Project{}, ErrInvalidInput
	}
	if in.BudgetMin != nil && in.BudgetMax != nil && *in.BudgetMin > *in.BudgetMax {
		return project.Project{}, ErrInvalidInput
	}

	p := project.Project{
		ID:             uuid.New(),
		Name:           in.Name,
		Description:    in.Description,
		RequiredSkills: lowercaseAll(in.RequiredSkills),
		TechStack:      lowercaseAll(in.TechStack),
		BudgetMin:      in.BudgetMin,
		BudgetMax:      in.BudgetMax,
		Timeline:       in.Timeline,
		ProjectType:    in.ProjectType,
		Status:         project.StatusOpen,
		OwnerID:        in.OwnerID,
	}

	if err := u.projects.Create(ctx, p); err != nil {
		return project.Project{}, ErrInternal
	}
	return p, nil
}

func (u *Projects) Get(ctx context.Context, id uuid.UUID) (repository.ProjectWithOwner, error) {
	if id == uuid.Nil {
		return repository.ProjectWithOwner{}, ErrProjectNotFound
	}
	pw, err := u.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ProjectWithOwner{}, ErrProjectNotFound
		}
		return repository.ProjectWithOwner{}, ErrInternal
	}
	return pw, nil
}

func (u *Projects) ListOpen(ctx context.Context) ([]repository.ProjectWithOwner, error) {
	out, err := u.projects.ListByStatus(ctx, project.StatusOpen)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// UpdateStatus is owner-only.
func (u *Projects) UpdateStatus(ctx context.Context, id, callerID uuid.UUID, status string) error {
	if id == uuid.Nil || callerID == uuid.Nil {
		return ErrInvalidInput
	}
	if !project.ValidStatus(status) {
		return ErrInvalidInput
	}

	pw, err := u.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}
	if pw.Project.OwnerID != callerID {
		return ErrUnauthorized
	}

	if err := u.projects.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}
	return nil
}

func lowercaseAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
