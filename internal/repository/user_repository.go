package repository

import (
	"context"
	"errors"

	"open-inn/internal/database"
	"open-inn/internal/domain/user"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, u user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	SetProfileCompleted(ctx context.Context, id uuid.UUID, completed bool) error

	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	UpsertProfile(ctx context.Context, p user.Profile) error

	// ListCandidates returns users eligible for matching: role in the
	// candidate set, profile completed, an existing profile row, and not the
	// excluded user (the project owner).
	ListCandidates(ctx context.Context, exclude uuid.UUID) ([]user.Candidate, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, bio, user_role, profile_completed)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Bio, u.UserRole, u.ProfileCompleted,
	)
	return err
}

const userColumns = `id, name, email, password_hash, bio, user_role, profile_completed, created_at, updated_at`

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) SetProfileCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET profile_completed = $2, updated_at = NOW() WHERE id = $1`,
		id, completed,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, skills, years_experience, hourly_rate, portfolio_url, github_url,
		        linkedin_url, availability, looking_for, created_at, updated_at
		 FROM freelancer_profiles WHERE user_id = $1`,
		userID,
	)

	var p user.Profile
	err := row.Scan(
		&p.UserID, &p.Skills, &p.YearsExperience, &p.HourlyRate, &p.PortfolioURL,
		&p.GithubURL, &p.LinkedinURL, &p.Availability, &p.LookingFor,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return user.Profile{}, mapScanErr(err)
	}
	return p, nil
}

func (r *PostgresUserRepository) UpsertProfile(ctx context.Context, p user.Profile) error {
	if p.UserID == uuid.Nil {
		return ErrNotFound
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO freelancer_profiles
		   (user_id, skills, years_experience, hourly_rate, portfolio_url, github_url,
		    linkedin_url, availability, looking_for)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (user_id) DO UPDATE SET
		   skills = EXCLUDED.skills,
		   years_experience = EXCLUDED.years_experience,
		   hourly_rate = EXCLUDED.hourly_rate,
		   portfolio_url = EXCLUDED.portfolio_url,
		   github_url = EXCLUDED.github_url,
		   linkedin_url = EXCLUDED.linkedin_url,
		   availability = EXCLUDED.availability,
		   looking_for = EXCLUDED.looking_for,
		   updated_at = NOW()`,
		p.UserID, p.Skills, p.YearsExperience, p.HourlyRate, p.PortfolioURL,
		p.GithubURL, p.LinkedinURL, p.Availability, p.LookingFor,
	)
	return err
}

func (r *PostgresUserRepository) ListCandidates(ctx context.Context, exclude uuid.UUID) ([]user.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.name, u.email, u.bio, u.user_role, u.profile_completed,
		        p.skills, p.years_experience, p.hourly_rate, p.portfolio_url,
		        p.github_url, p.linkedin_url, p.availability, p.looking_for
		 FROM users u
		 JOIN freelancer_profiles p ON p.user_id = u.id
		 WHERE u.user_role = ANY($1)
		   AND u.profile_completed
		   AND u.id <> $2`,
		user.CandidateRoles(), exclude,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Candidate, 0)
	for rows.Next() {
		var c user.Candidate
		err := rows.Scan(
			&c.User.ID, &c.User.Name, &c.User.Email, &c.User.Bio, &c.User.UserRole,
			&c.User.ProfileCompleted,
			&c.Profile.Skills, &c.Profile.YearsExperience, &c.Profile.HourlyRate,
			&c.Profile.PortfolioURL, &c.Profile.GithubURL, &c.Profile.LinkedinURL,
			&c.Profile.Availability, &c.Profile.LookingFor,
		)
		if err != nil {
			return nil, err
		}
		c.Profile.UserID = c.User.ID
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Bio, &u.UserRole,
		&u.ProfileCompleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, mapScanErr(err)
	}
	return u, nil
}
