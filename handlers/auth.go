// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/danielhkuo/appadel/auth"
	"github.com/danielhkuo/appadel/db"
	"github.com/danielhkuo/appadel/middleware"
	"github.com/danielhkuo/appadel/models"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

type AuthHandler struct {
	db     *sql.DB
	tokens *auth.Tokens
}

func NewAuthHandler(db *sql.DB, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens}
}

// normalizeEmail trims and lowercases so lookups are case-insensitive
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isBareAddress accepts a plain addr-spec only. Display-name forms such as
// "Ana <ana@example.com>" parse as valid but would be stored verbatim.
func isBareAddress(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	// Validate input
	details := map[string]string{}
	if name == "" {
		details["name"] = "required"
	}
	if email == "" {
		details["email"] = "required"
	} else if !isBareAddress(email) {
		details["email"] = "invalid_email"
	}
	if req.Password == "" {
		details["password"] = "required"
	} else if len(req.Password) < MinPasswordLength {
		details["password"] = "too_short"
	}
	if len(details) > 0 {
		middleware.ValidationError(w, "Invalid registration", details)
		return
	}

	ctx := r.Context()

	// Check for an existing account
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM account WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		slog.Error("failed to check email", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	userID := auth.GenerateID()
	now := time.Now().UTC()

	// Account and its empty profile are created together
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO account (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, name, email, hash, now)
	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("failed to insert account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	profile := models.Profile{UserID: userID, Level: models.LevelUnassessed}
	if err := insertProfile(ctx, tx, profile, now); err != nil {
		slog.Error("failed to insert profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit registration", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := h.tokens.Issue(userID)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	slog.Info("account registered", "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{
		Token:  token,
		UserID: userID,
		Name:   name,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := normalizeEmail(req.Email)
	details := map[string]string{}
	if email == "" {
		details["email"] = "required"
	}
	if req.Password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		middleware.ValidationError(w, "Invalid login", details)
		return
	}

	var account models.Account
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, name, email, password_hash
		FROM account
		WHERE email = $1
	`, email).Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to fetch account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(account.PasswordHash, req.Password); err != nil {
		slog.Info("login rejected", "user_id", account.ID)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(account.ID)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	slog.Info("login succeeded", "user_id", account.ID)

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		Token:  token,
		UserID: account.ID,
		Name:   account.Name,
	})
}

// Session handles GET /api/auth/session (behind RequireAuth)
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
		return
	}

	var resp models.SessionResponse
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, name, email
		FROM account
		WHERE id = $1
	`, claims.UserID).Scan(&resp.UserID, &resp.Name, &resp.Email)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Account not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout (behind RequireAuth)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
		return
	}

	if err := h.tokens.Revoke(r.Context(), claims); err != nil {
		slog.Error("failed to revoke token", "error", err, "user_id", claims.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	slog.Info("logged out", "user_id", claims.UserID)
	w.WriteHeader(http.StatusNoContent)
}
