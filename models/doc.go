// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: name, email, password
  - LoginRequest: email, password
  - CreateProfileRequest: userId, level, style, skillAverages
  - UpdateProfileRequest: sparse patch of level, style, matches, skillAverages
  - SurveyAnswersRequest: answers ([]int, option index per question)
  - QuizAnswersRequest: answers ([]string, option text per question)

# Response Types

  - AuthResponse: token, userId, name
  - SessionResponse: userId, name, email
  - LevelResponse: level, band
  - StyleResponse: style
  - ErrorResponse: error, message, details

# Domain Types

	Account 1──1 Profile
	Profile 1──* Match (embedded, append-only)

A Profile carries level (0 = not assessed, otherwise 1-10), an optional
style ("drive" or "reves"), the ordered match list, and SkillAverages,
the per-category mean of every match's SkillRatings rounded to one
decimal.

# Partial Updates

UpdateProfileRequest uses pointer fields so that omitted keys can be told
apart from zero values:

	{"level": 7}           → only level changes
	{"style": ""}          → style is cleared
	{"playStyle": "reves"} → accepted as an alias of style

# Sensitive Fields

Account.PasswordHash is tagged json:"-" and never serialized.
*/
package models
