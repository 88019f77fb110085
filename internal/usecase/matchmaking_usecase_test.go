package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"open-inn/internal/ai"
	"open-inn/internal/domain/match"
	"open-inn/internal/domain/matching"
	"open-inn/internal/domain/project"
	"open-inn/internal/domain/user"
	"open-inn/internal/repository"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	users      map[uuid.UUID]user.User
	profiles   map[uuid.UUID]user.Profile
	candidates []user.Candidate
	listErr    error
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	if m.users == nil {
		m.users = make(map[uuid.UUID]user.User)
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, repository.ErrNotFound
}

func (m *mockUserRepo) SetProfileCompleted(context.Context, uuid.UUID, bool) error { return nil }

func (m *mockUserRepo) GetProfile(_ context.Context, userID uuid.UUID) (user.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return user.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockUserRepo) UpsertProfile(context.Context, user.Profile) error { return nil }

func (m *mockUserRepo) ListCandidates(context.Context, uuid.UUID) ([]user.Candidate, error) {
	return m.candidates, m.listErr
}

type mockProjectRepo struct {
	projects map[uuid.UUID]repository.ProjectWithOwner
	open     []repository.ProjectWithOwner
}

func (m *mockProjectRepo) Create(context.Context, project.Project) error { return nil }

func (m *mockProjectRepo) GetByID(_ context.Context, id uuid.UUID) (repository.ProjectWithOwner, error) {
	pw, ok := m.projects[id]
	if !ok {
		return repository.ProjectWithOwner{}, repository.ErrNotFound
	}
	return pw, nil
}

func (m *mockProjectRepo) ListByStatus(context.Context, string) ([]repository.ProjectWithOwner, error) {
	return m.open, nil
}

func (m *mockProjectRepo) UpdateStatus(context.Context, uuid.UUID, string) error { return nil }

type pairKey struct {
	projectID    uuid.UUID
	freelancerID uuid.UUID
}

type storedMatch struct {
	match.Match
}

type mockMatchRepo struct {
	rows    map[pairKey]*storedMatch
	failFor map[uuid.UUID]error // keyed by freelancer id
	upserts int
}

func newMockMatchRepo() *mockMatchRepo {
	return &mockMatchRepo{rows: make(map[pairKey]*storedMatch), failFor: make(map[uuid.UUID]error)}
}

func (m *mockMatchRepo) Upsert(_ context.Context, up repository.MatchUpsert) error {
	if err := m.failFor[up.FreelancerID]; err != nil {
		return err
	}
	m.upserts++

	key := pairKey{projectID: up.ProjectID, freelancerID: up.FreelancerID}
	now := time.Now().UTC()
	if existing, ok := m.rows[key]; ok {
		existing.MatchScore = up.MatchScore
		existing.MatchReason = up.MatchReason
		existing.MatchType = up.MatchType
		existing.SkillsMatched = up.SkillsMatched
		existing.UpdatedAt = now.Add(time.Millisecond) // always advances
		return nil
	}
	m.rows[key] = &storedMatch{Match: match.Match{
		ID:            uuid.New(),
		ProjectID:     up.ProjectID,
		FreelancerID:  up.FreelancerID,
		MatchScore:    up.MatchScore,
		MatchReason:   up.MatchReason,
		MatchType:     up.MatchType,
		SkillsMatched: up.SkillsMatched,
		CreatedAt:     now,
		UpdatedAt:     now,
	}}
	return nil
}

func (m *mockMatchRepo) ListForProject(_ context.Context, projectID uuid.UUID, limit int) ([]match.Match, error) {
	out := make([]match.Match, 0)
	for key, sm := range m.rows {
		if key.projectID == projectID {
			out = append(out, sm.Match)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockMatchRepo) ListForUser(_ context.Context, freelancerID uuid.UUID, limit int) ([]match.Match, error) {
	out := make([]match.Match, 0)
	for key, sm := range m.rows {
		if key.freelancerID == freelancerID {
			out = append(out, sm.Match)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockMatchRepo) StatsForProject(context.Context, uuid.UUID) (match.Stats, error) {
	return match.Stats{}, nil
}

type stubScorer struct {
	score int
	err   error
	calls int
}

func (s *stubScorer) Score(context.Context, project.Project, user.User, user.Candidate, matching.SkillMatch) (ai.Assessment, error) {
	s.calls++
	if s.err != nil {
		return ai.Assessment{}, s.err
	}
	return ai.Assessment{Score: s.score, Reason: "ai reason"}, nil
}

func makeCandidate(role string, skills []string) user.Candidate {
	id := uuid.New()
	return user.Candidate{
		User:    user.User{ID: id, Name: "cand-" + id.String()[:8], UserRole: role, ProfileCompleted: true},
		Profile: user.Profile{UserID: id, Skills: skills, YearsExperience: 5, HourlyRate: 40},
	}
}

func makeProject(owner uuid.UUID, skills []string) repository.ProjectWithOwner {
	return repository.ProjectWithOwner{
		Project: project.Project{
			ID:             uuid.New(),
			Name:           "Test Project",
			RequiredSkills: skills,
			ProjectType:    project.TypeFreelanceGig,
			Status:         project.StatusOpen,
			OwnerID:        owner,
		},
		Owner: user.User{ID: owner, Name: "Owner"},
	}
}

func newMatchmaking(users *mockUserRepo, projects *mockProjectRepo, matches *mockMatchRepo, scorer ai.Scorer) *Matchmaking {
	return NewMatchmakingUsecase(users, projects, matches, scorer, nil, nil, MatchmakingConfig{})
}

func TestGenerateForProject_ProjectNotFound(t *testing.T) {
	uc := newMatchmaking(&mockUserRepo{}, &mockProjectRepo{projects: map[uuid.UUID]repository.ProjectWithOwner{}}, newMockMatchRepo(), &stubScorer{})

	_, err := uc.GenerateForProject(context.Background(), uuid.New())
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestGenerateForProject_AISuccess(t *testing.T) {
	owner := uuid.New()
	pw := makeProject(owner, []string{"go", "postgresql"})
	cand := makeCandidate(user.RoleFreelancer, []string{"go", "postgresql"})

	matches := newMockMatchRepo()
	scorer := &stubScorer{score: 85}
	uc := newMatchmaking(
		&mockUserRepo{candidates: []user.Candidate{cand}},
		&mockProjectRepo{projects: map[uuid.UUID]repository.ProjectWithOwner{pw.Project.ID: pw}},
		matches,
		scorer,
	)

	res, err := uc.GenerateForProject(context.Background(), pw.Project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.MatchesCreated != 1 {
		t.Fatalf("expected 1 match created, got %+v", res)
	}
	if scorer.calls != 1 {
		t.Fatalf("expected a single AI call, got %d", scorer.calls)
	}

	stored := matches.rows[pairKey{projectID: pw.Project.ID, freelancerID: cand.User.ID}]
	if stored == nil {
		t.Fatalf("expected stored match")
	}
	if stored.MatchType != match.TypeAIGenerated {
		t.Fatalf("expected ai_generated, got %s", stored.MatchType)
	}
	if stored.MatchScore != 85 {
		t.Fatalf("expected score 85, got %d", stored.MatchScore)
	}
}

func TestGenerateForProject_FallbackOnAIFailure(t *testing.T) {
	owner := uuid.New()
	pw := makeProject(owner, []string{"go", "postgresql"})
	cand := makeCandidate(user.RoleFreelancer, []string{"go", "postgresql"})

	matches := newMockMatchRepo()
	uc := newMatchmaking(
		&mockUserRepo{candidates: []user.Candidate{cand}},
		&mockProjectRepo{projects: map[uuid.UUID]repository.ProjectWithOwner{pw.Project.ID: pw}},
		matches,
		&stubScorer{err: errors.New("api quota exceeded")},
	)

	res, err := uc.GenerateForProject(context.Background(), pw.Project.ID)
	if err != nil {
		t.Fatalf("fallback must absorb AI failure, got %v", err)
	}
	if res.MatchesCreated != 1 {
		t.Fatalf("expected 1 match created, got %d", res.MatchesCreated)
	}

	stored := matches.rows[pairKey{projectID: pw.Project.ID, freelancerID: cand.User.ID}]
	if stored == nil {
		t.Fatalf("expected stored match")
	}
	if stored.MatchType != match.TypeRuleBasedFallback {
		t.Fatalf("expected rule_based_fallback, got %s", stored.MatchType)
	}
	if stored.MatchScore < 0 || stored.MatchScore > 100 {
		t.Fatalf("fallback score out of bounds: %d", stored.MatchScore)
	}
}

func TestGenerateForProject_ViabilityThresholdBoundary(t *testing.T) {
	// 100 required skills make the percentage equal the matched count.
	required := make([]string, 100)
	for i := range required {
		required[i] = fmt.Sprintf("skill%03d", i)
	}

	owner := uuid.New()
	pw := makeProject(owner, required)

	below := makeCandidate(user.RoleFreelancer, required[:29]) // exactly 29%
	at := makeCandidate(user.RoleFreelancer, required[:30])    // exactly 30%

	matches := newMockMatchRepo()
	scorer := &stubScorer{score: 90}
	uc := newMatchmaking(
		&mockUserRepo{candidates: []user.Candidate{below, at}},
		&mockProjectRepo{projects: map[uuid.UUID]repository.ProjectWithOwner{pw.Project.ID: pw}},
		matches,
		scorer,
	)

	res, err := uc.GenerateForProject(context.Background(), pw.Project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MatchesCreated != 1 {
		t.Fatalf("expected only the 30%% candidate, got %d", res.MatchesCreated)
	}
	if scorer.calls != 1 {
		t.Fatalf("expected the 29%% candidate to skip AI scoring, calls=%d", scorer.calls)
	}
	if _, ok := matches.rows[pairKey{projectID: pw.Project.ID, freelancerID: below.User.ID}]; ok {
		t.Fatalf("29%% candidate must not be persisted")
	}
	if _, ok := matches.rows[pairKey{projectID: pw.Project.ID, freelancerID: at.User.ID}]; !ok {
		t.Fatalf("30%% candidate must be persisted")
	}
}

func TestGenerateForProject_PersistThresholdBoundary(t *testing.T) {
	owner := uuid.New()
	pw := makeProject(owner, []string{"go"})
	cand := makeCandidate(user.RoleFreelancer, []string{"go"})

	for _, tc := range []struct {
		score int
		want  int
	}{
		{score: 29, want: 0},
		{score: 30, want: 1},
	} {
		matches := newMockMatchRepo()
		uc := newMatchmaking(
			&mockUserRepo{candidates: []user.Candidate{cand}},
			&mockProjectRepo{projects: map[uuid.UUID]repository.ProjectWithOwner{pw.Project.ID: pw}},
			matches,
			&stubScorer{score: tc.score},
		)

		res, err := uc.GenerateForProject(context.Background(), pw.Project.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.MatchesCreated != tc.want {
			t.Fatalf("score %d: expected %d matches, got %d", tc.score, tc.want, res.MatchesCreated)
		}
	}
}

func TestGenerateForProject_PersistenceFailureDoesNotAbortBatch(t *testing.T) {
	owner := uuid.New()
	pw := makeProject(owner, []string{"go"})
	failing := makeCandidate(user.RoleFreelancer, []string{"go"})
	healthy := makeCandidate(user.RoleFreelancer, []string{"go"})

	matches := newMockMatchRepo()
	matches.failFor[failing.User.ID] = errors.New("connection reset")

	uc := newMatchmaking(
		&mockUserRepo{candidates: []user.Candidate{failing, healthy}},
		&mockProjectRepo{projects: map[uuid.UUID]repository.ProjectWithOwner{pw.Project.ID: pw}},
		matches,
		&stubScorer{score: 80},
	)

	res, err := uc.GenerateForProject(context.Background(), pw.Project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MatchesCreated != 1 {
		t.Fatalf("failed upsert must not count or abort, got %d", res.MatchesCreated)
	}
	if _, ok := matches.rows[pairKey{projectID: pw.Project.ID, freelancerID: healthy.User.ID}]; !ok {
		t.Fatalf("healthy candidate must still be persisted")
	}
}

func TestGenerateForProject_Idempotent(t *testing.T) {
	owner := uuid.New()
	pw := makeProject(owner, []string{"go"})
	cand := makeCandidate(user.RoleFreelancer, []string{"go"})

	matches := newMockMatchRepo()
	uc := newMatchmaking(
		&mockUserRepo{candidates: []user.Candidate{cand}},
		&mockProjectRepo{projects: map[uuid.UUID]repository.ProjectWithOwner{pw.Project.ID: pw}},
		matches,
		&stubScorer{score: 75},
	)

	if _, err := uc.GenerateForProject(context.Background(), pw.Project.ID); err != nil {
		t.Fatalf("first run: %v", err)
	}
	key := pairKey{projectID: pw.Project.ID, freelancerID: cand.User.ID}
	first := *matches.rows[key]

	if _, err := uc.GenerateForProject(context.Background(), pw.Project.ID); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(matches.rows) != 1 {
		t.Fatalf("expected one row after re-run, got %d", len(matches.rows))
	}
	second := *matches.rows[key]
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("createdAt must not change on re-run")
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("updatedAt must advance on re-run")
	}
}

func TestGenerateForUser_SkipsOwnProjects(t *testing.T) {
	userID := uuid.New()
	usr := user.User{ID: userID, Name: "Dev", UserRole: user.RoleFreelancer, ProfileCompleted: true}
	profile := user.Profile{UserID: userID, Skills: []string{"go", "postgresql"}, YearsExperience: 3}

	own := makeProject(userID, []string{"go"})
	other := makeProject(uuid.New(), []string{"go", "postgresql"})

	matches := newMockMatchRepo()
	scorer := &stubScorer{score: 70}
	uc := newMatchmaking(
		&mockUserRepo{
			users:    map[uuid.UUID]user.User{userID: usr},
			profiles: map[uuid.UUID]user.Profile{userID: profile},
		},
		&mockProjectRepo{open: []repository.ProjectWithOwner{own, other}},
		matches,
		scorer,
	)

	res, err := uc.GenerateForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MatchesCreated != 1 {
		t.Fatalf("expected 1 match (own project skipped), got %d", res.MatchesCreated)
	}
	if _, ok := matches.rows[pairKey{projectID: own.Project.ID, freelancerID: userID}]; ok {
		t.Fatalf("must not match the user's own project")
	}
	if _, ok := matches.rows[pairKey{projectID: other.Project.ID, freelancerID: userID}]; !ok {
		t.Fatalf("expected match on the other project")
	}
}

func TestGenerateForUser_ProfileNotFound(t *testing.T) {
	userID := uuid.New()
	uc := newMatchmaking(
		&mockUserRepo{users: map[uuid.UUID]user.User{userID: {ID: userID}}},
		&mockProjectRepo{},
		newMockMatchRepo(),
		&stubScorer{},
	)

	_, err := uc.GenerateForUser(context.Background(), userID)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{in: 0, want: defaultMatchLimit},
		{in: -5, want: defaultMatchLimit},
		{in: 7, want: 7},
		{in: maxMatchLimit, want: maxMatchLimit},
		{in: maxMatchLimit + 1, want: maxMatchLimit},
	}
	for _, tc := range cases {
		if got := normalizeLimit(tc.in); got != tc.want {
			t.Fatalf("normalizeLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestGetForProject_AttachesCandidateDetail(t *testing.T) {
	owner := uuid.New()
	pw := makeProject(owner, []string{"go"})
	cand := makeCandidate(user.RoleFreelancer, []string{"go"})
	cand.User.PasswordHash = "$2a$10$bcrypt-hash"

	matches := newMockMatchRepo()
	uc := newMatchmaking(
		&mockUserRepo{
			candidates: []user.Candidate{cand},
			users:      map[uuid.UUID]user.User{cand.User.ID: cand.User},
			profiles:   map[uuid.UUID]user.Profile{cand.User.ID: cand.Profile},
		},
		&mockProjectRepo{projects: map[uuid.UUID]repository.ProjectWithOwner{pw.Project.ID: pw}},
		matches,
		&stubScorer{score: 88},
	)

	if _, err := uc.GenerateForProject(context.Background(), pw.Project.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	items, err := uc.GetForProject(context.Background(), pw.Project.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Candidate == nil {
		t.Fatalf("expected candidate detail attached")
	}
	if items[0].Candidate.User.ID != cand.User.ID {
		t.Fatalf("wrong candidate attached")
	}
	if items[0].Candidate.User.PasswordHash != "" {
		t.Fatalf("password hash must not be attached to match items")
	}
}
