// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package assess computes the derived values of a player profile.

# Level

Survey answers are option indexes (0-4). The level is the share of the
maximum possible score mapped onto 1-10:

	level := assess.Level([]int{2, 1, 3, 0, 4})

	≤0.20 → 1   ≤0.30 → 2   ≤0.40 → 3   ≤0.50 → 4   ≤0.60 → 5
	≤0.70 → 6   ≤0.80 → 7   ≤0.90 → 8   ≤0.95 → 9   else → 10

Level never fails. Use ValidateSurveyAnswers first to reject incomplete
or out-of-range input.

# Play Style

The quiz has four questions. Answers that mention the right-hand side
("derecho", "Drive", "drive") count toward drive; two or more of them
give StyleDrive, otherwise StyleReves:

	style := assess.ClassifyStyle(answers)

# Skill Averages

Each match rates five categories from 1 to 5. SkillAverages returns the
mean per category rounded half up to one decimal, recomputed over the
whole list every time:

	p = assess.AppendMatch(p, match) // new Profile value, p is not mutated

# Catalogue

SurveyQuestions, QuizQuestions and ImprovementVideos are the fixed
question sets and training content served by the API.
*/
package assess
