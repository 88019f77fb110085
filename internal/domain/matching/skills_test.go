package matching

import (
	"reflect"
	"testing"
)

func TestMatchSkills_EmptyRequired(t *testing.T) {
	res := MatchSkills(nil, []string{"react", "go"})
	if res.Percentage != 0 {
		t.Fatalf("expected 0%%, got %v", res.Percentage)
	}
	if len(res.MatchedSkills) != 0 {
		t.Fatalf("expected no matched skills, got %v", res.MatchedSkills)
	}
}

func TestMatchSkills_FullOverlap(t *testing.T) {
	res := MatchSkills(
		[]string{"react", "node.js", "mongodb"},
		[]string{"react", "node.js", "mongodb", "typescript"},
	)
	if res.Percentage != 100 {
		t.Fatalf("expected 100%%, got %v", res.Percentage)
	}
	want := []string{"react", "node.js", "mongodb"}
	if !reflect.DeepEqual(res.MatchedSkills, want) {
		t.Fatalf("expected %v, got %v", want, res.MatchedSkills)
	}
}

func TestMatchSkills_SubstringBothDirections(t *testing.T) {
	cases := []struct {
		name      string
		required  []string
		candidate []string
		wantPct   float64
		wantMatch []string
	}{
		{
			name:      "required is substring of candidate skill",
			required:  []string{"react"},
			candidate: []string{"react native"},
			wantPct:   100,
			wantMatch: []string{"react"},
		},
		{
			name:      "candidate is substring of required skill",
			required:  []string{"react native"},
			candidate: []string{"react"},
			wantPct:   100,
			wantMatch: []string{"react native"},
		},
		{
			name:      "case insensitive",
			required:  []string{"PostgreSQL"},
			candidate: []string{"postgresql"},
			wantPct:   100,
			wantMatch: []string{"PostgreSQL"},
		},
		{
			name:      "partial overlap",
			required:  []string{"go", "rust", "kubernetes"},
			candidate: []string{"golang", "docker"},
			wantPct:   100.0 / 3,
			wantMatch: []string{"go"},
		},
		{
			name:      "no overlap",
			required:  []string{"elixir"},
			candidate: []string{"java"},
			wantPct:   0,
			wantMatch: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := MatchSkills(tc.required, tc.candidate)
			if res.Percentage != tc.wantPct {
				t.Fatalf("percentage: expected %v, got %v", tc.wantPct, res.Percentage)
			}
			if !reflect.DeepEqual(res.MatchedSkills, tc.wantMatch) {
				t.Fatalf("matched: expected %v, got %v", tc.wantMatch, res.MatchedSkills)
			}
		})
	}
}

func TestMatchSkills_DeduplicatesMatched(t *testing.T) {
	res := MatchSkills([]string{"go", "go"}, []string{"go"})
	if len(res.MatchedSkills) != 1 {
		t.Fatalf("expected deduplicated match list, got %v", res.MatchedSkills)
	}
	if res.Percentage != 50 {
		t.Fatalf("expected 50%% against raw requirement count, got %v", res.Percentage)
	}
}

func TestMatchSkills_Deterministic(t *testing.T) {
	required := []string{"react", "node.js"}
	candidate := []string{"node", "reactjs"}
	first := MatchSkills(required, candidate)
	second := MatchSkills(required, candidate)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}
