// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Play style labels
const (
	StyleDrive = "drive"
	StyleReves = "reves"
)

// Match result values
const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

// Level bounds. Level 0 means the survey has not been completed yet.
const (
	LevelUnassessed = 0
	LevelMin        = 1
	LevelMax        = 10
)

// Skill rating bounds per match
const (
	RatingMin = 1
	RatingMax = 5
)

// Request types

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateProfileRequest struct {
	UserID        string         `json:"userId"`
	Level         int            `json:"level"`
	Style         *string        `json:"style,omitempty"`
	SkillAverages *SkillAverages `json:"skillAverages,omitempty"`
}

// UpdateProfileRequest is a sparse patch: nil fields are left untouched.
// An empty Style clears the stored style.
type UpdateProfileRequest struct {
	Level         *int           `json:"level,omitempty"`
	Style         *string        `json:"style,omitempty"`
	PlayStyle     *string        `json:"playStyle,omitempty"` // alias of style
	Matches       *[]Match       `json:"matches,omitempty"`
	SkillAverages *SkillAverages `json:"skillAverages,omitempty"`
}

// Empty reports whether the patch carries no fields at all
func (r UpdateProfileRequest) Empty() bool {
	return r.Level == nil && r.Style == nil && r.PlayStyle == nil && r.Matches == nil && r.SkillAverages == nil
}

// ResolvedStyle returns style, falling back to the playStyle alias
func (r UpdateProfileRequest) ResolvedStyle() *string {
	if r.Style != nil {
		return r.Style
	}
	return r.PlayStyle
}

type SurveyAnswersRequest struct {
	Answers []int `json:"answers"`
}

type QuizAnswersRequest struct {
	Answers []string `json:"answers"`
}

// Response types

type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type SessionResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type LevelResponse struct {
	Level int    `json:"level"`
	Band  string `json:"band"`
}

type StyleResponse struct {
	Style string `json:"style"`
}

// Domain types

type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
}

// SkillRatings holds one match's 1-5 rating per skill category
type SkillRatings struct {
	Remate      int `json:"remate"`
	Volea       int `json:"volea"`
	Defensa     int `json:"defensa"`
	Saque       int `json:"saque"`
	SalidaPared int `json:"salidaPared"`
}

// SkillAverages holds the per-category mean across all matches
type SkillAverages struct {
	Remate      float64 `json:"remate"`
	Volea       float64 `json:"volea"`
	Defensa     float64 `json:"defensa"`
	Saque       float64 `json:"saque"`
	SalidaPared float64 `json:"salidaPared"`
}

type Match struct {
	ID            string       `json:"id"`
	Date          string       `json:"date"`
	Result        string       `json:"result"`
	Score         string       `json:"score"`
	OpponentLevel int          `json:"opponentLevel"`
	Notes         string       `json:"notes"`
	SkillRatings  SkillRatings `json:"skillRatings"`
}

type Profile struct {
	UserID        string        `json:"userId"`
	Level         int           `json:"level"`
	Style         *string       `json:"style"`
	Matches       []Match       `json:"matches"`
	SkillAverages SkillAverages `json:"skillAverages"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Catalogue types

type SurveyQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type ImprovementVideo struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoID     string `json:"videoId"` // empty until content is published
	URL         string `json:"url,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
