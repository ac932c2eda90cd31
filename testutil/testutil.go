// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/appadel/assess"
	"github.com/danielhkuo/appadel/auth"
	"github.com/danielhkuo/appadel/cliparse"
	"github.com/danielhkuo/appadel/db"
	"github.com/danielhkuo/appadel/models"
)

// TestDBURL is the connection string for the in-memory test database
const TestDBURL = "file::memory:?_pragma=foreign_keys(1)"

// TestPassword is the password given to accounts created by CreateTestAccount
const TestPassword = "correct-horse"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is its own database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           4000,
		DatabaseURL:    TestDBURL,
		DatabaseType:   cliparse.DatabaseSQLite,
		TokenSecret:    "test-token-secret",
		TokenTTL:       time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       "error",
	}
}

// GetTestTokens returns a token issuer backed by an in-memory revocation list
func GetTestTokens(cfg cliparse.Config) *auth.Tokens {
	return auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL, auth.NewMemoryRevoker())
}

// CreateTestAccount inserts an account with TestPassword and an empty profile,
// the same state registration leaves behind. Returns the account ID.
func CreateTestAccount(t *testing.T, conn *sql.DB, name, email string) string {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	userID := auth.GenerateID()
	now := time.Now().UTC()
	_, err = conn.Exec(`
		INSERT INTO account (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, name, strings.ToLower(email), hash, now)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	SetTestProfile(t, conn, userID, models.LevelUnassessed, nil, nil)
	return userID
}

// CreateTestAccountWithoutProfile inserts an account with no profile row
func CreateTestAccountWithoutProfile(t *testing.T, conn *sql.DB, name, email string) string {
	t.Helper()

	hash, _ := auth.HashPassword(TestPassword)
	userID := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO account (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, name, strings.ToLower(email), hash, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
	return userID
}

// SetTestProfile writes (or replaces) the profile row for an account.
// Skill averages are derived from the given matches.
func SetTestProfile(t *testing.T, conn *sql.DB, userID string, level int, style *string, matches []models.Match) {
	t.Helper()

	if matches == nil {
		matches = []models.Match{}
	}
	matchesJSON, _ := json.Marshal(matches)
	averagesJSON, _ := json.Marshal(assess.SkillAverages(matches))
	now := time.Now().UTC()

	_, err := conn.Exec(`DELETE FROM profile WHERE account_id = $1`, userID)
	if err != nil {
		t.Fatalf("Failed to clear test profile: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO profile (account_id, level, style, matches, skill_averages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, userID, level, style, string(matchesJSON), string(averagesJSON), now, now)
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}
}

// TestMatch returns a valid match with every skill rated the same
func TestMatch(id string, rating int) models.Match {
	return models.Match{
		ID:            id,
		Date:          "2025-03-14",
		Result:        models.ResultWin,
		Score:         "6-4 6-3",
		OpponentLevel: 5,
		SkillRatings: models.SkillRatings{
			Remate:      rating,
			Volea:       rating,
			Defensa:     rating,
			Saque:       rating,
			SalidaPared: rating,
		},
	}
}

// WithUser attaches verified claims for userID to the request, as RequireAuth would
func WithUser(req *http.Request, userID string) *http.Request {
	claims := auth.Claims{
		TokenID:   auth.GenerateID(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	return req.WithContext(auth.WithClaims(context.Background(), claims))
}

// AuthHeader issues a token for userID and returns it as request headers
func AuthHeader(t *testing.T, tokens *auth.Tokens, userID string) map[string]string {
	t.Helper()

	token, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
