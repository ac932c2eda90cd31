// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/appadel/auth"
	"github.com/danielhkuo/appadel/cliparse"
	"github.com/danielhkuo/appadel/handlers"
	"github.com/danielhkuo/appadel/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, tokens *auth.Tokens) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, tokens)
	profileHandler := handlers.NewProfileHandler(db, cfg)
	assessmentHandler := handlers.NewAssessmentHandler()

	// protected requires a valid bearer token
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(tokens, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.HandleFunc("POST /api/auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("GET /api/auth/session", protected(authHandler.Session))
	mux.HandleFunc("POST /api/auth/logout", protected(authHandler.Logout))

	// Profiles (owner only)
	mux.HandleFunc("POST /api/profile", protected(profileHandler.CreateProfile))
	mux.HandleFunc("GET /api/profile/{userId}", protected(profileHandler.GetProfile))
	mux.HandleFunc("PUT /api/profile/{userId}", protected(profileHandler.UpdateProfile))
	mux.HandleFunc("PATCH /api/profile/{userId}", protected(profileHandler.UpdateProfile))
	mux.HandleFunc("GET /api/profile/{userId}/matches", protected(profileHandler.ListMatches))
	mux.HandleFunc("POST /api/profile/{userId}/matches", protected(profileHandler.AddMatch))

	// Assessment (public)
	mux.HandleFunc("GET /api/assessment/survey", middleware.WithLogging(assessmentHandler.GetSurvey))
	mux.HandleFunc("GET /api/assessment/quiz", middleware.WithLogging(assessmentHandler.GetQuiz))
	mux.HandleFunc("POST /api/assessment/level", middleware.WithLogging(assessmentHandler.EvaluateLevel))
	mux.HandleFunc("POST /api/assessment/style", middleware.WithLogging(assessmentHandler.EvaluateStyle))
	mux.HandleFunc("GET /api/improvement", middleware.WithLogging(assessmentHandler.GetImprovement))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("appadel API v1"))
	})

	// Outermost first: request id, panic recovery, CORS
	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = chimw.Recoverer(handler)
	handler = chimw.RequestID(handler)

	return handler
}
