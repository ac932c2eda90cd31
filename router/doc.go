// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the appadel API.

# Route Registration

NewRouter creates an http.ServeMux with all endpoints and wraps it in the
shared middleware stack:

	handler := router.NewRouter(db, cfg, tokens)

Outermost first: chi RequestID, chi Recoverer, CORS for cfg.AllowedOrigins.

# Endpoints

Health:

	GET /health

Authentication:

	POST /api/auth/register - Create account and empty profile
	POST /api/auth/login    - Exchange credentials for a token
	GET  /api/auth/session  - Resolve the bearer token (token)
	POST /api/auth/logout   - Revoke the bearer token (token)

Profiles (token must belong to {userId}):

	POST  /api/profile                  - Create profile
	GET   /api/profile/{userId}         - Get profile
	PUT   /api/profile/{userId}         - Sparse update
	PATCH /api/profile/{userId}         - Sparse update
	GET   /api/profile/{userId}/matches - Matches, newest first
	POST  /api/profile/{userId}/matches - Append a match

Assessment (public):

	GET  /api/assessment/survey - Level survey questions
	GET  /api/assessment/quiz   - Play style quiz questions
	POST /api/assessment/level  - Level from survey answers
	POST /api/assessment/style  - Style from quiz answers
	GET  /api/improvement       - Training videos

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(db, tokens)
	profileHandler := handlers.NewProfileHandler(db, cfg)
	assessmentHandler := handlers.NewAssessmentHandler()

Token-protected routes are wrapped with middleware.RequireAuth.
*/
package router
