// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the appadel API.

# Handler Types

Each handler is a struct with its dependencies:

  - AuthHandler: Registration, login, session check and logout
  - ProfileHandler: Profile read, create, sparse update and match history
  - AssessmentHandler: Survey and quiz catalogue, level and style evaluation, improvement content

Handlers are created via constructor functions:

	authHandler := handlers.NewAuthHandler(db, tokens)
	profileHandler := handlers.NewProfileHandler(db, cfg)
	assessmentHandler := handlers.NewAssessmentHandler()

# Authentication

Register and login return a bearer token:

	POST /api/auth/register → Register (201, creates account and empty profile)
	POST /api/auth/login    → Login
	GET  /api/auth/session  → Session (requires token)
	POST /api/auth/logout   → Logout (requires token, revokes it)

Emails are trimmed and lowercased before storage and lookup.

# Profiles

Every profile route requires a token whose account matches {userId}; a
mismatch is 403.

	GET   /api/profile/{userId}         → GetProfile
	POST  /api/profile                  → CreateProfile (409 if it exists)
	PUT   /api/profile/{userId}         → UpdateProfile
	PATCH /api/profile/{userId}         → UpdateProfile
	POST  /api/profile/{userId}/matches → AddMatch (201)

Updates are sparse: only the keys present in the body (level, style or
its alias playStyle, matches) are written. An empty style clears it. Skill
averages are never taken from the client; they are recomputed from the
stored match list whenever it changes, so the stored averages always equal
the mean of the stored ratings.

# Assessment

Stateless endpoints backed by package assess:

	GET  /api/assessment/survey → GetSurvey
	GET  /api/assessment/quiz   → GetQuiz
	POST /api/assessment/level  → EvaluateLevel ({level, band})
	POST /api/assessment/style  → EvaluateStyle ({style})
	GET  /api/improvement       → GetImprovement (optional ?category=)

# Storage

Profiles live in one row each; matches and averages are JSON documents
(JSONB on PostgreSQL, TEXT on SQLite). All queries use $N placeholders,
which both drivers accept.

# Error Handling

All errors return JSON:

	{"error": "Bad Request", "message": "Invalid match", "details": {"date": "required"}}

Status codes:
  - 400: Validation error (details lists field → reason)
  - 401: Bad credentials or missing/invalid/expired/revoked token
  - 403: Token does not own the profile
  - 404: Resource not found
  - 409: Duplicate email, profile or match id
  - 500: Database error
*/
package handlers
