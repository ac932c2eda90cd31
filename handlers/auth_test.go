// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/appadel/auth"
	"github.com/danielhkuo/appadel/models"
	"github.com/danielhkuo/appadel/testutil"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, *sql.DB, *auth.Tokens) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	tokens := testutil.GetTestTokens(cfg)
	return NewAuthHandler(db, tokens), db, tokens
}

func TestRegister(t *testing.T) {
	handler, db, tokens := newTestAuthHandler(t)
	defer db.Close()

	req := testutil.MakeRequest("POST", "/api/auth/register", models.RegisterRequest{
		Name:     "  Lucía ",
		Email:    "Lucia@Example.com ",
		Password: "secret123",
	}, nil)
	w := httptest.NewRecorder()

	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.AuthResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Token == "" || resp.UserID == "" {
		t.Fatalf("Expected token and userId, got %+v", resp)
	}
	if resp.Name != "Lucía" {
		t.Errorf("Expected trimmed name 'Lucía', got '%s'", resp.Name)
	}

	claims, err := tokens.Parse(resp.Token)
	if err != nil {
		t.Fatalf("Issued token does not parse: %v", err)
	}
	if claims.UserID != resp.UserID {
		t.Errorf("Token subject %s, want %s", claims.UserID, resp.UserID)
	}

	// Email is stored normalized
	var email string
	db.QueryRow("SELECT email FROM account WHERE id = $1", resp.UserID).Scan(&email)
	if email != "lucia@example.com" {
		t.Errorf("Expected stored email 'lucia@example.com', got '%s'", email)
	}

	// An empty profile is created with the account
	var level int
	var style sql.NullString
	var matches string
	err = db.QueryRow("SELECT level, style, matches FROM profile WHERE account_id = $1", resp.UserID).Scan(&level, &style, &matches)
	if err != nil {
		t.Fatalf("Expected profile row: %v", err)
	}
	if level != models.LevelUnassessed || style.Valid || matches != "[]" {
		t.Errorf("Expected empty profile, got level=%d style=%v matches=%s", level, style, matches)
	}
}

func TestRegister_Validation(t *testing.T) {
	handler, db, _ := newTestAuthHandler(t)
	defer db.Close()

	testCases := []struct {
		name   string
		body   interface{}
		field  string
		reason string
	}{
		{"missing name", models.RegisterRequest{Email: "a@b.com", Password: "secret123"}, "name", "required"},
		{"blank name", models.RegisterRequest{Name: "   ", Email: "a@b.com", Password: "secret123"}, "name", "required"},
		{"missing email", models.RegisterRequest{Name: "A", Password: "secret123"}, "email", "required"},
		{"invalid email", models.RegisterRequest{Name: "A", Email: "not-an-email", Password: "secret123"}, "email", "invalid_email"},
		{"display name email", models.RegisterRequest{Name: "A", Email: "Ana <ana@example.com>", Password: "secret123"}, "email", "invalid_email"},
		{"bracketed email", models.RegisterRequest{Name: "A", Email: "<ana@example.com>", Password: "secret123"}, "email", "invalid_email"},
		{"missing password", models.RegisterRequest{Name: "A", Email: "a@b.com"}, "password", "required"},
		{"short password", models.RegisterRequest{Name: "A", Email: "a@b.com", Password: "abc"}, "password", "too_short"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/auth/register", tc.body, nil)
			w := httptest.NewRecorder()

			handler.Register(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Details[tc.field] != tc.reason {
				t.Errorf("Expected %s=%s in details, got %v", tc.field, tc.reason, resp.Details)
			}
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/auth/register", nil)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestRegister_DuplicateEmail(t *testing.T) {
	handler, db, _ := newTestAuthHandler(t)
	defer db.Close()

	testutil.CreateTestAccount(t, db, "Ana", "ana@example.com")

	// Same address, different case
	req := testutil.MakeRequest("POST", "/api/auth/register", models.RegisterRequest{
		Name:     "Other Ana",
		Email:    "ANA@example.com",
		Password: "secret123",
	}, nil)
	w := httptest.NewRecorder()

	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)

	// Same address wrapped in a display name
	req = testutil.MakeRequest("POST", "/api/auth/register", models.RegisterRequest{
		Name:     "Ana Lopez",
		Email:    "Ana Lopez <ana@example.com>",
		Password: "secret123",
	}, nil)
	w = httptest.NewRecorder()

	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var count int
	db.QueryRow("SELECT COUNT(*) FROM account").Scan(&count)
	if count != 1 {
		t.Errorf("Expected 1 account, got %d", count)
	}
}

func TestLogin(t *testing.T) {
	handler, db, tokens := newTestAuthHandler(t)
	defer db.Close()

	userID := testutil.CreateTestAccount(t, db, "Ana", "ana@example.com")

	testCases := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{"valid credentials", "ana@example.com", testutil.TestPassword, http.StatusOK},
		{"email is case-insensitive", " Ana@Example.COM", testutil.TestPassword, http.StatusOK},
		{"wrong password", "ana@example.com", "wrong-password", http.StatusUnauthorized},
		{"unknown email", "nobody@example.com", testutil.TestPassword, http.StatusUnauthorized},
		{"missing password", "ana@example.com", "", http.StatusBadRequest},
		{"missing email", "", testutil.TestPassword, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/auth/login", models.LoginRequest{
				Email:    tc.email,
				Password: tc.password,
			}, nil)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedStatus != http.StatusOK {
				return
			}

			var resp models.AuthResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.UserID != userID {
				t.Errorf("Expected userId %s, got %s", userID, resp.UserID)
			}
			if resp.Name != "Ana" {
				t.Errorf("Expected name 'Ana', got '%s'", resp.Name)
			}
			if _, err := tokens.Parse(resp.Token); err != nil {
				t.Errorf("Issued token does not parse: %v", err)
			}
		})
	}
}

func TestSession(t *testing.T) {
	handler, db, _ := newTestAuthHandler(t)
	defer db.Close()

	userID := testutil.CreateTestAccount(t, db, "Ana", "ana@example.com")

	t.Run("known account", func(t *testing.T) {
		req := testutil.WithUser(testutil.MakeRequest("GET", "/api/auth/session", nil, nil), userID)
		w := httptest.NewRecorder()

		handler.Session(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SessionResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.UserID != userID || resp.Name != "Ana" || resp.Email != "ana@example.com" {
			t.Errorf("Unexpected session %+v", resp)
		}
	})

	t.Run("deleted account", func(t *testing.T) {
		req := testutil.WithUser(testutil.MakeRequest("GET", "/api/auth/session", nil, nil), "gone")
		w := httptest.NewRecorder()

		handler.Session(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("no claims", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/auth/session", nil, nil)
		w := httptest.NewRecorder()

		handler.Session(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	handler, db, tokens := newTestAuthHandler(t)
	defer db.Close()

	userID := testutil.CreateTestAccount(t, db, "Ana", "ana@example.com")
	token, _ := tokens.Issue(userID)
	claims, _ := tokens.Parse(token)

	req := testutil.MakeRequest("POST", "/api/auth/logout", nil, nil)
	req = req.WithContext(auth.WithClaims(req.Context(), claims))
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	if _, err := tokens.Verify(req.Context(), token); err != auth.ErrRevokedToken {
		t.Errorf("Expected token to be revoked, got %v", err)
	}
}
