// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assess

import (
	"testing"

	"github.com/danielhkuo/appadel/models"
)

func matchWith(id string, r models.SkillRatings) models.Match {
	return models.Match{
		ID:            id,
		Date:          "2025-03-01",
		Result:        models.ResultWin,
		Score:         "6-4 6-3",
		OpponentLevel: 5,
		SkillRatings:  r,
	}
}

func TestSkillAverages(t *testing.T) {
	tests := []struct {
		name    string
		ratings []models.SkillRatings
		want    models.SkillAverages
	}{
		{
			name: "no matches",
			want: models.SkillAverages{},
		},
		{
			name: "single match",
			ratings: []models.SkillRatings{
				{Remate: 3, Volea: 4, Defensa: 2, Saque: 5, SalidaPared: 1},
			},
			want: models.SkillAverages{Remate: 3, Volea: 4, Defensa: 2, Saque: 5, SalidaPared: 1},
		},
		{
			name: "remate 3 4 5",
			ratings: []models.SkillRatings{
				{Remate: 3, Volea: 1, Defensa: 1, Saque: 1, SalidaPared: 1},
				{Remate: 4, Volea: 1, Defensa: 1, Saque: 1, SalidaPared: 1},
				{Remate: 5, Volea: 1, Defensa: 1, Saque: 1, SalidaPared: 1},
			},
			want: models.SkillAverages{Remate: 4, Volea: 1, Defensa: 1, Saque: 1, SalidaPared: 1},
		},
		{
			name: "rounding",
			ratings: []models.SkillRatings{
				{Remate: 1, Volea: 1, Defensa: 1, Saque: 1, SalidaPared: 2},
				{Remate: 2, Volea: 1, Defensa: 2, Saque: 1, SalidaPared: 2},
				{Remate: 2, Volea: 2, Defensa: 2, Saque: 2, SalidaPared: 2},
			},
			// 5/3 = 1.67, 4/3 = 1.33
			want: models.SkillAverages{Remate: 1.7, Volea: 1.3, Defensa: 1.7, Saque: 1.3, SalidaPared: 2},
		},
		{
			name: "half rounds up",
			ratings: []models.SkillRatings{
				{Remate: 1, Volea: 1, Defensa: 1, Saque: 1, SalidaPared: 1},
				{Remate: 1, Volea: 2, Defensa: 1, Saque: 1, SalidaPared: 2},
				{Remate: 1, Volea: 2, Defensa: 1, Saque: 1, SalidaPared: 1},
				{Remate: 2, Volea: 2, Defensa: 1, Saque: 1, SalidaPared: 1},
			},
			// 5/4 = 1.25, 7/4 = 1.75
			want: models.SkillAverages{Remate: 1.3, Volea: 1.8, Defensa: 1, Saque: 1, SalidaPared: 1.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var matches []models.Match
			for _, r := range tt.ratings {
				matches = append(matches, matchWith("m", r))
			}
			if got := SkillAverages(matches); got != tt.want {
				t.Errorf("SkillAverages() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAppendMatch(t *testing.T) {
	first := matchWith("m1", models.SkillRatings{Remate: 2, Volea: 2, Defensa: 2, Saque: 2, SalidaPared: 2})
	second := matchWith("m2", models.SkillRatings{Remate: 4, Volea: 4, Defensa: 4, Saque: 4, SalidaPared: 4})

	original := models.Profile{UserID: "u1", Level: 6, Matches: []models.Match{first}}
	original.SkillAverages = SkillAverages(original.Matches)

	updated := AppendMatch(original, second)

	if len(updated.Matches) != 2 {
		t.Fatalf("len(Matches) = %d, want 2", len(updated.Matches))
	}
	if updated.Matches[0].ID != "m1" || updated.Matches[1].ID != "m2" {
		t.Errorf("match order = [%s %s], want [m1 m2]", updated.Matches[0].ID, updated.Matches[1].ID)
	}
	if updated.SkillAverages.Remate != 3 {
		t.Errorf("Remate average = %v, want 3", updated.SkillAverages.Remate)
	}
	if updated.Level != 6 || updated.UserID != "u1" {
		t.Errorf("unrelated fields changed: %+v", updated)
	}

	// The input profile keeps its own match list and averages
	if len(original.Matches) != 1 {
		t.Errorf("original len(Matches) = %d, want 1", len(original.Matches))
	}
	if original.SkillAverages.Remate != 2 {
		t.Errorf("original Remate average = %v, want 2", original.SkillAverages.Remate)
	}
}

func TestValidateMatch(t *testing.T) {
	valid := matchWith("m1", models.SkillRatings{Remate: 1, Volea: 2, Defensa: 3, Saque: 4, SalidaPared: 5})

	tests := []struct {
		name       string
		mutate     func(m *models.Match)
		wantFields []string
	}{
		{"valid", func(m *models.Match) {}, nil},
		{"missing date", func(m *models.Match) { m.Date = "" }, []string{"date"}},
		{"bad date", func(m *models.Match) { m.Date = "01/03/2025" }, []string{"date"}},
		{"bad result", func(m *models.Match) { m.Result = "draw" }, []string{"result"}},
		{"missing score", func(m *models.Match) { m.Score = "" }, []string{"score"}},
		{"opponent level 0", func(m *models.Match) { m.OpponentLevel = 0 }, []string{"opponentLevel"}},
		{"opponent level 11", func(m *models.Match) { m.OpponentLevel = 11 }, []string{"opponentLevel"}},
		{"rating 0", func(m *models.Match) { m.SkillRatings.Volea = 0 }, []string{"skillRatings.volea"}},
		{"rating 6", func(m *models.Match) { m.SkillRatings.SalidaPared = 6 }, []string{"skillRatings.salidaPared"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			got := ValidateMatch(m)
			if len(got) != len(tt.wantFields) {
				t.Fatalf("ValidateMatch() = %v, want fields %v", got, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if _, ok := got[f]; !ok {
					t.Errorf("ValidateMatch() missing violation for %q: %v", f, got)
				}
			}
		})
	}
}

func TestValidateMatchesPrefixesIndex(t *testing.T) {
	good := matchWith("m1", models.SkillRatings{Remate: 1, Volea: 1, Defensa: 1, Saque: 1, SalidaPared: 1})
	bad := good
	bad.Score = ""

	got := ValidateMatches([]models.Match{good, bad})
	if _, ok := got["matches[1].score"]; !ok || len(got) != 1 {
		t.Errorf("ValidateMatches() = %v, want only matches[1].score", got)
	}
}
