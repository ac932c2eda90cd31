// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assess

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/danielhkuo/appadel/models"
)

// MatchDateLayout is the accepted format of Match.Date
const MatchDateLayout = "2006-01-02"

var ErrInvalidMatch = errors.New("invalid match")

// SkillAverages computes the per-category mean rating across all matches,
// rounded to one decimal. No matches yields all zeros.
func SkillAverages(matches []models.Match) models.SkillAverages {
	if len(matches) == 0 {
		return models.SkillAverages{}
	}

	var sum models.SkillRatings
	for _, m := range matches {
		sum.Remate += m.SkillRatings.Remate
		sum.Volea += m.SkillRatings.Volea
		sum.Defensa += m.SkillRatings.Defensa
		sum.Saque += m.SkillRatings.Saque
		sum.SalidaPared += m.SkillRatings.SalidaPared
	}

	n := float64(len(matches))
	return models.SkillAverages{
		Remate:      roundOneDecimal(float64(sum.Remate) / n),
		Volea:       roundOneDecimal(float64(sum.Volea) / n),
		Defensa:     roundOneDecimal(float64(sum.Defensa) / n),
		Saque:       roundOneDecimal(float64(sum.Saque) / n),
		SalidaPared: roundOneDecimal(float64(sum.SalidaPared) / n),
	}
}

// roundOneDecimal rounds half up on the value scaled by ten
func roundOneDecimal(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// AppendMatch returns a copy of p with m appended and the averages recomputed.
// p itself is left untouched.
func AppendMatch(p models.Profile, m models.Match) models.Profile {
	matches := make([]models.Match, len(p.Matches), len(p.Matches)+1)
	copy(matches, p.Matches)
	matches = append(matches, m)

	next := p
	next.Matches = matches
	next.SkillAverages = SkillAverages(matches)
	return next
}

// ValidateMatch returns field -> reason for every invalid field of m.
// An empty map means the match is valid.
func ValidateMatch(m models.Match) map[string]string {
	v := map[string]string{}

	if m.Date == "" {
		v["date"] = "required"
	} else if _, err := time.Parse(MatchDateLayout, m.Date); err != nil {
		v["date"] = "must_be_yyyy_mm_dd"
	}
	switch m.Result {
	case "":
		v["result"] = "required"
	case models.ResultWin, models.ResultLoss:
	default:
		v["result"] = "must_be_win_or_loss"
	}
	if m.Score == "" {
		v["score"] = "required"
	}
	if m.OpponentLevel < models.LevelMin || m.OpponentLevel > models.LevelMax {
		v["opponentLevel"] = "out_of_range"
	}

	ratings := map[string]int{
		"skillRatings.remate":      m.SkillRatings.Remate,
		"skillRatings.volea":       m.SkillRatings.Volea,
		"skillRatings.defensa":     m.SkillRatings.Defensa,
		"skillRatings.saque":       m.SkillRatings.Saque,
		"skillRatings.salidaPared": m.SkillRatings.SalidaPared,
	}
	for field, r := range ratings {
		if r < models.RatingMin || r > models.RatingMax {
			v[field] = "out_of_range"
		}
	}
	return v
}

// ValidateMatches validates every match and prefixes field names with the list index
func ValidateMatches(matches []models.Match) map[string]string {
	v := map[string]string{}
	for i, m := range matches {
		for field, reason := range ValidateMatch(m) {
			v[fmt.Sprintf("matches[%d].%s", i, field)] = reason
		}
	}
	return v
}
