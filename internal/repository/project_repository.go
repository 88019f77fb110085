package repository

import (
	"context"

	"open-inn/internal/database"
	"open-inn/internal/domain/project"
	"open-inn/internal/domain/user"

	"github.com/google/uuid"
)

// ProjectWithOwner bundles a project with its owning user for prompt building
// and display attachment.
type ProjectWithOwner struct {
	Project project.Project
	Owner   user.User
}

type ProjectRepository interface {
	Create(ctx context.Context, p project.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (ProjectWithOwner, error)
	ListByStatus(ctx context.Context, status string) ([]ProjectWithOwner, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, p project.Project) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO projects
		   (id, name, description, required_skills, tech_stack, budget_min, budget_max,
		    timeline, project_type, status, owner_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.Name, p.Description, p.RequiredSkills, p.TechStack, p.BudgetMin,
		p.BudgetMax, p.Timeline, p.ProjectType, p.Status, p.OwnerID,
	)
	return err
}

const projectWithOwnerQuery = `
	SELECT p.id, p.name, p.description, p.required_skills, p.tech_stack,
	       p.budget_min, p.budget_max, p.timeline, p.project_type, p.status,
	       p.owner_id, p.created_at, p.updated_at,
	       u.id, u.name, u.email, u.bio, u.user_role
	FROM projects p
	JOIN users u ON u.id = p.owner_id`

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (ProjectWithOwner, error) {
	row := r.db.QueryRow(ctx, projectWithOwnerQuery+` WHERE p.id = $1`, id)
	return scanProjectWithOwner(row)
}

func (r *PostgresProjectRepository) ListByStatus(ctx context.Context, status string) ([]ProjectWithOwner, error) {
	rows, err := r.db.Query(ctx, projectWithOwnerQuery+` WHERE p.status = $1 ORDER BY p.created_at DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProjectWithOwner, 0)
	for rows.Next() {
		pw, err := scanProjectWithOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE projects SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProjectWithOwner(row database.Row) (ProjectWithOwner, error) {
	var pw ProjectWithOwner
	err := row.Scan(
		&pw.Project.ID, &pw.Project.Name, &pw.Project.Description,
		&pw.Project.RequiredSkills, &pw.Project.TechStack,
		&pw.Project.BudgetMin, &pw.Project.BudgetMax, &pw.Project.Timeline,
		&pw.Project.ProjectType, &pw.Project.Status, &pw.Project.OwnerID,
		&pw.Project.CreatedAt, &pw.Project.UpdatedAt,
		&pw.Owner.ID, &pw.Owner.Name, &pw.Owner.Email, &pw.Owner.Bio, &pw.Owner.UserRole,
	)
	if err != nil {
		return ProjectWithOwner{}, mapScanErr(err)
	}
	return pw, nil
}
