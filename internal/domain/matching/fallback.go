package matching

import (
	"fmt"
	"math"
	"strings"

	"open-inn/internal/domain/project"
	"open-inn/internal/domain/user"
)

// FallbackInput augments a candidate with the precomputed preliminary skill
// match used as the 40% skill component.
type FallbackInput struct {
	Candidate   user.Candidate
	Preliminary SkillMatch
}

type FallbackResult struct {
	Score  int
	Reason string
}

// preferredRoles maps each project type to the candidate roles that score
// full role-alignment points.
var preferredRoles = map[string][]string{
	project.TypeFreelanceGig: {user.RoleFreelancer, user.RoleOpenSourceContributor},
	project.TypeOpenSource:   {user.RoleOpenSourceContributor, user.RoleFreelancer},
	project.TypeStartup:      {user.RoleFreelancer, user.RoleJobSeeker},
	project.TypeFullTimeJob:  {user.RoleJobSeeker, user.RoleFreelancer},
	project.TypeHackathon:    {user.RoleHackathonParticipant, user.RoleOpenSourceContributor},
}

// FallbackScore is the deterministic scorer used whenever AI scoring fails.
// Five independently capped components sum to at most 100: skills (40),
// experience (20), budget fit (20), role alignment (10), profile quality (10).
// Missing optional fields are treated as zero or neutral, never an error.
func FallbackScore(p project.Project, in FallbackInput) FallbackResult {
	var total float64
	var reasons []string

	profile := in.Candidate.Profile

	skillScore := in.Preliminary.Percentage * 0.4
	total += skillScore
	if skillScore > 20 && len(in.Preliminary.MatchedSkills) > 0 {
		names := in.Preliminary.MatchedSkills
		if len(names) > 3 {
			names = names[:3]
		}
		reasons = append(reasons, fmt.Sprintf("%d matching skills (%s)",
			len(in.Preliminary.MatchedSkills), strings.Join(names, ", ")))
	}

	years := profile.YearsExperience
	var expScore float64
	switch {
	case years >= 5:
		expScore = 20
	case years >= 3:
		expScore = 15
	case years >= 1:
		expScore = 10
	default:
		expScore = 5
	}
	total += expScore
	if years > 0 {
		reasons = append(reasons, fmt.Sprintf("%d years of experience", years))
	}

	rate := profile.HourlyRate
	budgetMax := math.Inf(1)
	if p.BudgetMax != nil {
		budgetMax = *p.BudgetMax
	}
	var budgetScore float64
	switch {
	case rate == 0:
		budgetScore = 10 // no stated rate, neutral
	case rate <= budgetMax*0.5:
		budgetScore = 20
	case rate <= budgetMax:
		budgetScore = 15
	case rate <= budgetMax*1.2:
		budgetScore = 10
	default:
		budgetScore = 5
	}
	total += budgetScore
	if rate > 0 {
		reasons = append(reasons, fmt.Sprintf("$%.0f/hr rate", rate))
	}

	roleScore := 5.0
	for _, r := range preferredRoles[p.ProjectType] {
		if r == in.Candidate.User.UserRole {
			roleScore = 10
			break
		}
	}
	total += roleScore

	profileScore := 0
	if profile.PortfolioURL != "" {
		profileScore += 3
	}
	if profile.GithubURL != "" {
		profileScore += 3
	}
	if profile.LinkedinURL != "" {
		profileScore += 2
	}
	if len(in.Candidate.User.Bio) > 50 {
		profileScore += 2
	}
	total += float64(profileScore)

	score := int(math.Round(math.Min(100, total)))
	if score < 0 {
		score = 0
	}

	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	reason := fmt.Sprintf("Good match with %s. Profile quality: %d/10 points.",
		strings.Join(reasons, ", "), profileScore)

	return FallbackResult{Score: score, Reason: reason}
}
