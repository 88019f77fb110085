package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"open-inn/internal/ai"
	"open-inn/internal/domain/match"
	"open-inn/internal/domain/matching"
	"open-inn/internal/domain/project"
	"open-inn/internal/domain/user"
	"open-inn/internal/infrastructure/cache"
	"open-inn/internal/repository"
	"open-inn/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("freelancer profile not found")
)

const (
	// defaultMatchLimit applies when the caller supplies no limit.
	defaultMatchLimit = 20
	// maxMatchLimit caps caller-supplied limits so a single read cannot pull
	// an unbounded match list through the cache.
	maxMatchLimit = 100
)

type GenerationResult struct {
	Success        bool
	MatchesCreated int
	Message        string
}

// ProjectMatchItem is a match with the candidate detail attached for display.
type ProjectMatchItem struct {
	Match     match.Match
	Candidate *user.Candidate
}

// UserMatchItem is a match with the project and its owner attached.
type UserMatchItem struct {
	Match   match.Match
	Project *project.Project
	Owner   *user.User
}

type MatchmakingUsecase interface {
	GenerateForProject(ctx context.Context, projectID uuid.UUID) (GenerationResult, error)
	GenerateForUser(ctx context.Context, userID uuid.UUID) (GenerationResult, error)
	GetForProject(ctx context.Context, projectID uuid.UUID, limit int) ([]ProjectMatchItem, error)
	GetForUser(ctx context.Context, userID uuid.UUID, limit int) ([]UserMatchItem, error)
	StatsForProject(ctx context.Context, projectID uuid.UUID) (match.Stats, error)
}

type MatchmakingConfig struct {
	ViabilityThreshold float64
	PersistThreshold   int
}

type Matchmaking struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	matches  repository.MatchRepository
	scorer   ai.Scorer
	cache    *cache.Redis
	logger   *zap.Logger

	viabilityThreshold float64
	persistThreshold   int
}

func NewMatchmakingUsecase(
	users repository.UserRepository,
	projects repository.ProjectRepository,
	matches repository.MatchRepository,
	scorer ai.Scorer,
	redis *cache.Redis,
	logger *zap.Logger,
	cfg MatchmakingConfig,
) *Matchmaking {
	if scorer == nil {
		scorer = ai.Unconfigured()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ViabilityThreshold <= 0 {
		cfg.ViabilityThreshold = 30
	}
	if cfg.PersistThreshold <= 0 {
		cfg.PersistThreshold = 30
	}
	return &Matchmaking{
		users:              users,
		projects:           projects,
		matches:            matches,
		scorer:             scorer,
		cache:              redis,
		logger:             logger,
		viabilityThreshold: cfg.ViabilityThreshold,
		persistThreshold:   cfg.PersistThreshold,
	}
}

// viableCandidate is a candidate that passed the preliminary skill filter.
type viableCandidate struct {
	candidate user.Candidate
	prelim    matching.SkillMatch
}

func (u *Matchmaking) GenerateForProject(ctx context.Context, projectID uuid.UUID) (GenerationResult, error) {
	if projectID == uuid.Nil {
		return GenerationResult{}, ErrProjectNotFound
	}

	pw, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return GenerationResult{}, ErrProjectNotFound
		}
		return GenerationResult{}, err
	}

	projectSkills := pw.Project.EffectiveSkills()

	candidates, err := u.users.ListCandidates(ctx, pw.Project.OwnerID)
	if err != nil {
		return GenerationResult{}, err
	}

	u.logger.Info("candidates fetched",
		zap.String("project_id", projectID.String()),
		zap.Int("count", len(candidates)),
	)

	viable := make([]viableCandidate, 0, len(candidates))
	for _, cand := range candidates {
		prelim := matching.MatchSkills(projectSkills, cand.Profile.Skills)
		if prelim.Percentage >= u.viabilityThreshold {
			viable = append(viable, viableCandidate{candidate: cand, prelim: prelim})
		}
	}

	u.logger.Info("viable candidates after skill filtering",
		zap.String("project_id", projectID.String()),
		zap.Int("count", len(viable)),
	)

	matchesCreated := 0
	for _, vc := range viable {
		score, reason, matchType := u.scoreCandidate(ctx, pw.Project, pw.Owner, vc)

		if score < u.persistThreshold {
			continue
		}

		err := u.matches.Upsert(ctx, repository.MatchUpsert{
			ProjectID:     pw.Project.ID,
			FreelancerID:  vc.candidate.User.ID,
			MatchScore:    score,
			MatchReason:   reason,
			MatchType:     matchType,
			SkillsMatched: vc.prelim.MatchedSkills,
		})
		if err != nil {
			// One failed write must not abort the batch.
			u.logger.Error("failed to save match",
				zap.String("project_id", pw.Project.ID.String()),
				zap.String("candidate_id", vc.candidate.User.ID.String()),
				zap.Error(err),
			)
			continue
		}
		matchesCreated++
	}

	u.invalidateProject(ctx, projectID)
	ws.NotifyMatchesGenerated("project", projectID, matchesCreated)

	return GenerationResult{
		Success:        true,
		MatchesCreated: matchesCreated,
		Message:        fmt.Sprintf("Successfully generated %d matches for project %q", matchesCreated, pw.Project.Name),
	}, nil
}

func (u *Matchmaking) GenerateForUser(ctx context.Context, userID uuid.UUID) (GenerationResult, error) {
	if userID == uuid.Nil {
		return GenerationResult{}, ErrUserNotFound
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return GenerationResult{}, ErrUserNotFound
		}
		return GenerationResult{}, err
	}

	profile, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return GenerationResult{}, ErrProfileNotFound
		}
		return GenerationResult{}, err
	}

	cand := user.Candidate{User: usr, Profile: profile}

	projects, err := u.projects.ListByStatus(ctx, project.StatusOpen)
	if err != nil {
		return GenerationResult{}, err
	}

	u.logger.Info("open projects fetched",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(projects)),
	)

	matchesCreated := 0
	for _, pw := range projects {
		if pw.Project.OwnerID == userID {
			continue
		}

		prelim := matching.MatchSkills(pw.Project.EffectiveSkills(), profile.Skills)
		if prelim.Percentage < u.viabilityThreshold {
			continue
		}

		vc := viableCandidate{candidate: cand, prelim: prelim}
		score, reason, matchType := u.scoreCandidate(ctx, pw.Project, pw.Owner, vc)

		if score < u.persistThreshold {
			continue
		}

		err := u.matches.Upsert(ctx, repository.MatchUpsert{
			ProjectID:     pw.Project.ID,
			FreelancerID:  userID,
			MatchScore:    score,
			MatchReason:   reason,
			MatchType:     matchType,
			SkillsMatched: prelim.MatchedSkills,
		})
		if err != nil {
			u.logger.Error("failed to save match",
				zap.String("project_id", pw.Project.ID.String()),
				zap.String("candidate_id", userID.String()),
				zap.Error(err),
			)
			continue
		}
		matchesCreated++
	}

	u.invalidateUser(ctx, userID)
	ws.NotifyMatchesGenerated("user", userID, matchesCreated)

	return GenerationResult{
		Success:        true,
		MatchesCreated: matchesCreated,
		Message:        fmt.Sprintf("Successfully generated %d matches for user %q", matchesCreated, usr.Name),
	}, nil
}

// scoreCandidate tries the AI scorer and falls back to rule-based scoring on
// any failure. The fallback is unconditional and only logged, never surfaced.
func (u *Matchmaking) scoreCandidate(ctx context.Context, p project.Project, owner user.User, vc viableCandidate) (int, string, string) {
	assessment, err := u.scorer.Score(ctx, p, owner, vc.candidate, vc.prelim)
	if err == nil {
		u.logger.Debug("ai match",
			zap.String("candidate_id", vc.candidate.User.ID.String()),
			zap.Int("score", assessment.Score),
		)
		return assessment.Score, assessment.Reason, match.TypeAIGenerated
	}

	u.logger.Warn("ai scoring failed, using fallback",
		zap.String("project_id", p.ID.String()),
		zap.String("candidate_id", vc.candidate.User.ID.String()),
		zap.Error(err),
	)

	fb := matching.FallbackScore(p, matching.FallbackInput{Candidate: vc.candidate, Preliminary: vc.prelim})
	return fb.Score, fb.Reason, match.TypeRuleBasedFallback
}

func (u *Matchmaking) GetForProject(ctx context.Context, projectID uuid.UUID, limit int) ([]ProjectMatchItem, error) {
	if projectID == uuid.Nil {
		return nil, ErrProjectNotFound
	}
	limit = normalizeLimit(limit)

	key := cache.ProjectMatchesKey(projectID, limit)
	var cached []ProjectMatchItem
	if hit, _ := u.cache.GetJSON(ctx, key, &cached); hit {
		return cached, nil
	}

	matches, err := u.matches.ListForProject(ctx, projectID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]ProjectMatchItem, 0, len(matches))
	for _, m := range matches {
		item := ProjectMatchItem{Match: m}

		usr, err := u.users.GetByID(ctx, m.FreelancerID)
		if err == nil {
			// Items are cached and serialized; credentials never leave here.
			usr.PasswordHash = ""
			cand := user.Candidate{User: usr}
			if profile, perr := u.users.GetProfile(ctx, m.FreelancerID); perr == nil {
				cand.Profile = profile
			}
			item.Candidate = &cand
		}
		out = append(out, item)
	}

	_ = u.cache.SetJSON(ctx, key, out, 5*time.Minute)
	return out, nil
}

func (u *Matchmaking) GetForUser(ctx context.Context, userID uuid.UUID, limit int) ([]UserMatchItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUserNotFound
	}
	limit = normalizeLimit(limit)

	key := cache.UserMatchesKey(userID, limit)
	var cached []UserMatchItem
	if hit, _ := u.cache.GetJSON(ctx, key, &cached); hit {
		return cached, nil
	}

	matches, err := u.matches.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]UserMatchItem, 0, len(matches))
	for _, m := range matches {
		item := UserMatchItem{Match: m}

		pw, err := u.projects.GetByID(ctx, m.ProjectID)
		if err == nil {
			p := pw.Project
			owner := pw.Owner
			item.Project = &p
			item.Owner = &owner
		}
		out = append(out, item)
	}

	_ = u.cache.SetJSON(ctx, key, out, 5*time.Minute)
	return out, nil
}

func (u *Matchmaking) StatsForProject(ctx context.Context, projectID uuid.UUID) (match.Stats, error) {
	if projectID == uuid.Nil {
		return match.Stats{}, ErrProjectNotFound
	}

	key := cache.ProjectStatsKey(projectID)
	var cached match.Stats
	if hit, _ := u.cache.GetJSON(ctx, key, &cached); hit {
		return cached, nil
	}

	stats, err := u.matches.StatsForProject(ctx, projectID)
	if err != nil {
		return match.Stats{}, err
	}

	_ = u.cache.SetJSON(ctx, key, stats, 5*time.Minute)
	return stats, nil
}

func (u *Matchmaking) invalidateProject(ctx context.Context, projectID uuid.UUID) {
	if err := u.cache.InvalidateForProject(ctx, projectID); err != nil {
		u.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}

func (u *Matchmaking) invalidateUser(ctx context.Context, userID uuid.UUID) {
	if err := u.cache.InvalidateForUser(ctx, userID); err != nil {
		u.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultMatchLimit
	}
	if limit > maxMatchLimit {
		return maxMatchLimit
	}
	return limit
}
