// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assess

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/appadel/models"
)

// MaxAnswerValue is the highest option index that counts toward the level
const MaxAnswerValue = 4

var (
	ErrSurveyLength = errors.New("every survey question must be answered")
	ErrAnswerRange  = errors.New("answer out of range")
)

// levelThresholds maps the answered share of the maximum score to a level.
// The first threshold that the percentage does not exceed wins; anything
// above the last one is level 10.
var levelThresholds = []struct {
	upTo  float64
	level int
}{
	{0.2, 1},
	{0.3, 2},
	{0.4, 3},
	{0.5, 4},
	{0.6, 5},
	{0.7, 6},
	{0.8, 7},
	{0.9, 8},
	{0.95, 9},
}

// Level converts survey answers (option index 0-4 per question) into a 1-10 level.
// Answers must be validated by the caller; an empty slice yields the minimum level.
func Level(answers []int) int {
	if len(answers) == 0 {
		return models.LevelMin
	}

	total := 0
	for _, a := range answers {
		total += a
	}
	percentage := float64(total) / float64(len(answers)*MaxAnswerValue)

	for _, t := range levelThresholds {
		if percentage <= t.upTo {
			return t.level
		}
	}
	return models.LevelMax
}

// ValidateSurveyAnswers checks that every survey question has an answer
// within its option list.
func ValidateSurveyAnswers(answers []int) error {
	if len(answers) != len(SurveyQuestions) {
		return fmt.Errorf("%w: got %d answers, want %d", ErrSurveyLength, len(answers), len(SurveyQuestions))
	}
	for i, a := range answers {
		maxIdx := len(SurveyQuestions[i].Options) - 1
		if maxIdx > MaxAnswerValue {
			maxIdx = MaxAnswerValue
		}
		if a < 0 || a > maxIdx {
			return fmt.Errorf("%w: question %d answer %d not in [0,%d]", ErrAnswerRange, i+1, a, maxIdx)
		}
	}
	return nil
}

// LevelBand returns the human-readable interpretation of a level
func LevelBand(level int) string {
	switch {
	case level <= models.LevelUnassessed:
		return "Sin evaluar"
	case level <= 3:
		return "Principiante"
	case level <= 6:
		return "Intermedio"
	case level <= 8:
		return "Avanzado"
	default:
		return "Experto"
	}
}
