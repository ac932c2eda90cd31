// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/appadel/assess"
	"github.com/danielhkuo/appadel/auth"
	"github.com/danielhkuo/appadel/cliparse"
	"github.com/danielhkuo/appadel/db"
	"github.com/danielhkuo/appadel/middleware"
	"github.com/danielhkuo/appadel/models"
)

type ProfileHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewProfileHandler(db *sql.DB, cfg cliparse.Config) *ProfileHandler {
	return &ProfileHandler{db: db, cfg: cfg}
}

// authorizeUser checks that the authenticated account owns userID.
// Writes the error response and returns false otherwise.
func authorizeUser(w http.ResponseWriter, r *http.Request, userID string) bool {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
		return false
	}
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return false
	}
	if claims.UserID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Profile belongs to another account")
		return false
	}
	return true
}

// validateLevel returns a violation reason, or "" when level is acceptable
func validateLevel(level int) string {
	if level < models.LevelUnassessed || level > models.LevelMax {
		return "out_of_range"
	}
	return ""
}

// GetProfile handles GET /api/profile/{userId}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorizeUser(w, r, userID) {
		return
	}

	profile, err := loadProfile(r.Context(), h.db, userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch profile", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, profile)
}

// CreateProfile handles POST /api/profile
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// The body may omit userId; it defaults to the caller
	if req.UserID == "" {
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
			req.UserID = claims.UserID
		}
	}
	if !authorizeUser(w, r, req.UserID) {
		return
	}

	details := map[string]string{}
	if reason := validateLevel(req.Level); reason != "" {
		details["level"] = reason
	}
	style := req.Style
	if style != nil && *style == "" {
		style = nil
	}
	if style != nil && !assess.IsValidStyle(*style) {
		details["style"] = "must_be_drive_or_reves"
	}
	if len(details) > 0 {
		middleware.ValidationError(w, "Invalid profile", details)
		return
	}

	ctx := r.Context()

	// Check the profile does not exist yet
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM profile WHERE account_id = $1)
	`, req.UserID).Scan(&exists)
	if err != nil {
		slog.Error("failed to check profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusConflict, "Profile already exists")
		return
	}

	now := time.Now().UTC()
	profile := models.Profile{
		UserID:  req.UserID,
		Level:   req.Level,
		Style:   style,
		Matches: []models.Match{},
	}
	if err := insertProfile(ctx, h.db, profile, now); err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Profile already exists")
			return
		}
		slog.Error("failed to insert profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("profile created", "user_id", req.UserID, "level", req.Level)

	profile.SkillAverages = assess.SkillAverages(nil)
	profile.CreatedAt = now
	profile.UpdatedAt = now
	middleware.JSONResponse(w, http.StatusCreated, profile)
}

// UpdateProfile handles PUT and PATCH /api/profile/{userId}.
// Absent fields are left untouched; skill averages always follow the stored matches.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorizeUser(w, r, userID) {
		return
	}

	var req models.UpdateProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	details := map[string]string{}
	if req.Level != nil {
		if reason := validateLevel(*req.Level); reason != "" {
			details["level"] = reason
		}
	}
	style := req.ResolvedStyle()
	if style != nil && *style != "" && !assess.IsValidStyle(*style) {
		details["style"] = "must_be_drive_or_reves"
	}
	if req.Matches != nil {
		for field, reason := range assess.ValidateMatches(*req.Matches) {
			details[field] = reason
		}
	}
	if len(details) > 0 {
		middleware.ValidationError(w, "Invalid profile update", details)
		return
	}
	if req.Matches != nil {
		if id := duplicateMatchID(*req.Matches); id != "" {
			middleware.ErrorResponse(w, http.StatusConflict, "Match recorded twice: "+id)
			return
		}
	}

	// Build the SET clause from the fields present
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Level != nil {
		set("level", *req.Level)
	}
	if style != nil {
		if *style == "" {
			set("style", nil)
		} else {
			set("style", *style)
		}
	}
	if req.Matches != nil {
		matches := make([]models.Match, len(*req.Matches))
		copy(matches, *req.Matches)
		for i := range matches {
			if matches[i].ID == "" {
				matches[i].ID = auth.GenerateID()
			}
		}
		matchesJSON, averagesJSON, err := encodeMatches(matches)
		if err != nil {
			slog.Error("failed to encode matches", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		set("matches", matchesJSON)
		set("skill_averages", averagesJSON)
	}
	if req.Empty() {
		slog.Debug("empty profile update", "user_id", userID)
	}
	set("updated_at", time.Now().UTC())

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE profile SET %s WHERE account_id = $%d", strings.Join(sets, ", "), len(args))

	ctx := r.Context()
	result, err := h.db.ExecContext(ctx, query, args...)
	if err != nil {
		slog.Error("failed to update profile", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	profile, err := loadProfile(ctx, h.db, userID)
	if err != nil {
		slog.Error("failed to reload profile", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("profile updated", "user_id", userID, "fields", len(sets)-1)

	middleware.JSONResponse(w, http.StatusOK, profile)
}

// ListMatches handles GET /api/profile/{userId}/matches.
// Matches are returned newest first.
func (h *ProfileHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorizeUser(w, r, userID) {
		return
	}

	profile, err := loadProfile(r.Context(), h.db, userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch profile", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, matchesNewestFirst(profile.Matches))
}

// AddMatch handles POST /api/profile/{userId}/matches
func (h *ProfileHandler) AddMatch(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorizeUser(w, r, userID) {
		return
	}

	var match models.Match
	if err := middleware.ParseJSONBody(r, &match); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if details := assess.ValidateMatch(match); len(details) > 0 {
		middleware.ValidationError(w, "Invalid match", details)
		return
	}
	if match.ID == "" {
		match.ID = auth.GenerateID()
	}

	ctx := r.Context()
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	current, err := lockProfile(ctx, tx, h.cfg.DatabaseType, userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch profile", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for _, m := range current.Matches {
		if m.ID == match.ID {
			middleware.ErrorResponse(w, http.StatusConflict, "Match already recorded")
			return
		}
	}

	next := assess.AppendMatch(current, match)
	matchesJSON, averagesJSON, err := encodeMatches(next.Matches)
	if err != nil {
		slog.Error("failed to encode matches", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add match")
		return
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		UPDATE profile
		SET matches = $1, skill_averages = $2, updated_at = $3
		WHERE account_id = $4
	`, matchesJSON, averagesJSON, now, userID)
	if err != nil {
		slog.Error("failed to save match", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit match", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("match added", "user_id", userID, "match_id", match.ID, "matches", len(next.Matches))

	next.UpdatedAt = now
	middleware.JSONResponse(w, http.StatusCreated, next)
}
