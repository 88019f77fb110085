package matching

import "strings"

// SkillMatch is the preliminary overlap between a project's required skills
// and a candidate's skills.
type SkillMatch struct {
	Percentage    float64
	MatchedSkills []string
}

// MatchSkills computes the fraction of required skills with a case-insensitive
// substring match in either direction against the candidate's skills. The
// matched list preserves the order of the required skills and carries no
// duplicates. An empty requirement list yields zero, never a full match.
func MatchSkills(required, candidate []string) SkillMatch {
	if len(required) == 0 {
		return SkillMatch{Percentage: 0, MatchedSkills: []string{}}
	}

	candidateLower := make([]string, 0, len(candidate))
	for _, c := range candidate {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		candidateLower = append(candidateLower, c)
	}

	matched := make([]string, 0, len(required))
	seen := make(map[string]struct{}, len(required))

	for _, r := range required {
		rl := strings.ToLower(strings.TrimSpace(r))
		if rl == "" {
			continue
		}
		if _, dup := seen[rl]; dup {
			continue
		}
		for _, c := range candidateLower {
			if strings.Contains(c, rl) || strings.Contains(rl, c) {
				seen[rl] = struct{}{}
				matched = append(matched, r)
				break
			}
		}
	}

	percentage := float64(len(matched)) / float64(len(required)) * 100

	return SkillMatch{Percentage: percentage, MatchedSkills: matched}
}
