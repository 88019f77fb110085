package repository

import (
	"context"

	"open-inn/internal/database"
	"open-inn/internal/domain/match"

	"github.com/google/uuid"
)

// MatchUpsert carries the fields refreshed on every generation run. Identity
// and creation metadata are handled by the upsert itself.
type MatchUpsert struct {
	ProjectID     uuid.UUID
	FreelancerID  uuid.UUID
	MatchScore    int
	MatchReason   string
	MatchType     string
	SkillsMatched []string
}

type MatchRepository interface {
	// Upsert writes one (project, freelancer) match atomically. A conflict on
	// the compound key refreshes score/reason/type/skills and updated_at while
	// preserving created_at and is_viewed.
	Upsert(ctx context.Context, m MatchUpsert) error

	ListForProject(ctx context.Context, projectID uuid.UUID, limit int) ([]match.Match, error)
	ListForUser(ctx context.Context, freelancerID uuid.UUID, limit int) ([]match.Match, error)
	StatsForProject(ctx context.Context, projectID uuid.UUID) (match.Stats, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) Upsert(ctx context.Context, m MatchUpsert) error {
	if m.ProjectID == uuid.Nil || m.FreelancerID == uuid.Nil {
		return ErrNotFound
	}
	if m.SkillsMatched == nil {
		m.SkillsMatched = []string{}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO matches
		   (id, project_id, freelancer_id, match_score, match_reason, match_type, skills_matched)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (project_id, freelancer_id) DO UPDATE SET
		   match_score = EXCLUDED.match_score,
		   match_reason = EXCLUDED.match_reason,
		   match_type = EXCLUDED.match_type,
		   skills_matched = EXCLUDED.skills_matched,
		   updated_at = NOW()`,
		uuid.New(), m.ProjectID, m.FreelancerID, m.MatchScore, m.MatchReason,
		m.MatchType, m.SkillsMatched,
	)
	return err
}

const matchColumns = `id, project_id, freelancer_id, match_score, match_reason,
	match_type, skills_matched, is_viewed, created_at, updated_at`

func (r *PostgresMatchRepository) ListForProject(ctx context.Context, projectID uuid.UUID, limit int) ([]match.Match, error) {
	return r.list(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE project_id = $1
		 ORDER BY match_score DESC LIMIT $2`,
		projectID, limit,
	)
}

func (r *PostgresMatchRepository) ListForUser(ctx context.Context, freelancerID uuid.UUID, limit int) ([]match.Match, error) {
	return r.list(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE freelancer_id = $1
		 ORDER BY match_score DESC LIMIT $2`,
		freelancerID, limit,
	)
}

func (r *PostgresMatchRepository) list(ctx context.Context, query string, args ...any) ([]match.Match, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		var m match.Match
		err := rows.Scan(
			&m.ID, &m.ProjectID, &m.FreelancerID, &m.MatchScore, &m.MatchReason,
			&m.MatchType, &m.SkillsMatched, &m.IsViewed, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) StatsForProject(ctx context.Context, projectID uuid.UUID) (match.Stats, error) {
	rows, err := r.db.Query(ctx,
		`SELECT match_type, COUNT(*), AVG(match_score), MAX(match_score), MIN(match_score)
		 FROM matches WHERE project_id = $1
		 GROUP BY match_type
		 ORDER BY match_type`,
		projectID,
	)
	if err != nil {
		return match.Stats{}, err
	}
	defer rows.Close()

	stats := match.Stats{ByType: make([]match.TypeStats, 0, 2)}
	for rows.Next() {
		var ts match.TypeStats
		if err := rows.Scan(&ts.MatchType, &ts.Count, &ts.AvgScore, &ts.MaxScore, &ts.MinScore); err != nil {
			return match.Stats{}, err
		}
		stats.ByType = append(stats.ByType, ts)
		stats.TotalMatches += ts.Count
	}
	if err := rows.Err(); err != nil {
		return match.Stats{}, err
	}
	return stats, nil
}
