// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assess

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/appadel/models"
)

var (
	ErrQuizLength = errors.New("every quiz question must be answered")
	ErrQuizOption = errors.New("answer is not one of the question's options")
)

// driveMarkers identify answers that favour the right-hand (drive) side.
// Matching is case-sensitive.
var driveMarkers = []string{"derecho", "Drive", "drive"}

// minDriveAnswers is the number of drive-side answers needed for the drive label.
// A 2-2 split classifies as drive.
const minDriveAnswers = 2

// ClassifyStyle returns models.StyleDrive or models.StyleReves for the quiz answers
func ClassifyStyle(answers []string) string {
	driveCount := 0
	for _, a := range answers {
		if isDriveAnswer(a) {
			driveCount++
		}
	}
	if driveCount >= minDriveAnswers {
		return models.StyleDrive
	}
	return models.StyleReves
}

func isDriveAnswer(answer string) bool {
	for _, m := range driveMarkers {
		if strings.Contains(answer, m) {
			return true
		}
	}
	return false
}

// ValidateQuizAnswers checks that each quiz question is answered with one of its options
func ValidateQuizAnswers(answers []string) error {
	if len(answers) != len(QuizQuestions) {
		return fmt.Errorf("%w: got %d answers, want %d", ErrQuizLength, len(answers), len(QuizQuestions))
	}
	for i, a := range answers {
		if !slices.Contains(QuizQuestions[i].Options, a) {
			return fmt.Errorf("%w: question %d answer %q", ErrQuizOption, i+1, a)
		}
	}
	return nil
}

// IsValidStyle reports whether s is one of the two play style labels
func IsValidStyle(s string) bool {
	return s == models.StyleDrive || s == models.StyleReves
}
