// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/appadel/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotSignedIn  = errors.New("not signed in")
)

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string
	Details    map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

// Unwrap maps status codes onto the package sentinels so callers can use errors.Is
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}

// Session is the authenticated state passed into every protected call
type Session struct {
	Token  string
	UserID string
	Name   string
	Email  string
}

// Valid reports whether the session carries a token and account
func (s Session) Valid() bool {
	return s.Token != "" && s.UserID != ""
}

// Client talks to the appadel API. It keeps no session state of its own.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API at baseURL (for example http://localhost:4000).
// A nil httpClient uses a client with a 15 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Register creates an account and returns its session
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return Session{}, fmt.Errorf("register: %w", err)
	}
	return Session{Token: resp.Token, UserID: resp.UserID, Name: resp.Name, Email: email}, nil
}

// Login exchanges credentials for a session
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return Session{}, fmt.Errorf("login: %w", err)
	}
	return Session{Token: resp.Token, UserID: resp.UserID, Name: resp.Name, Email: email}, nil
}

// Session resolves a previously issued token
func (c *Client) Session(ctx context.Context, token string) (Session, error) {
	var resp models.SessionResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/session", token, nil, &resp); err != nil {
		return Session{}, fmt.Errorf("session: %w", err)
	}
	return Session{Token: token, UserID: resp.UserID, Name: resp.Name, Email: resp.Email}, nil
}

// Logout revokes the session's token
func (c *Client) Logout(ctx context.Context, s Session) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", s.Token, nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// GetProfile fetches the session account's profile. Returns ErrNotFound if none exists.
func (c *Client) GetProfile(ctx context.Context, s Session) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, profilePath(s.UserID), s.Token, nil, &p); err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// CreateProfile creates the session account's profile
func (c *Client) CreateProfile(ctx context.Context, s Session, req models.CreateProfileRequest) (models.Profile, error) {
	req.UserID = s.UserID
	var p models.Profile
	if err := c.do(ctx, http.MethodPost, "/api/profile", s.Token, req, &p); err != nil {
		return models.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// UpdateProfile sends a sparse patch; nil fields are left untouched on the server
func (c *Client) UpdateProfile(ctx context.Context, s Session, patch models.UpdateProfileRequest) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodPatch, profilePath(s.UserID), s.Token, patch, &p); err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// AddMatch appends one match to the session account's profile
func (c *Client) AddMatch(ctx context.Context, s Session, m models.Match) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodPost, profilePath(s.UserID)+"/matches", s.Token, m, &p); err != nil {
		return models.Profile{}, fmt.Errorf("add match: %w", err)
	}
	return p, nil
}

// ListMatches returns the session account's matches, newest first
func (c *Client) ListMatches(ctx context.Context, s Session) ([]models.Match, error) {
	var matches []models.Match
	if err := c.do(ctx, http.MethodGet, profilePath(s.UserID)+"/matches", s.Token, nil, &matches); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// Survey returns the level survey questions
func (c *Client) Survey(ctx context.Context) ([]models.SurveyQuestion, error) {
	var qs []models.SurveyQuestion
	if err := c.do(ctx, http.MethodGet, "/api/assessment/survey", "", nil, &qs); err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}
	return qs, nil
}

// Quiz returns the play style quiz questions
func (c *Client) Quiz(ctx context.Context) ([]models.QuizQuestion, error) {
	var qs []models.QuizQuestion
	if err := c.do(ctx, http.MethodGet, "/api/assessment/quiz", "", nil, &qs); err != nil {
		return nil, fmt.Errorf("quiz: %w", err)
	}
	return qs, nil
}

// EvaluateLevel asks the server for the level of a set of survey answers
func (c *Client) EvaluateLevel(ctx context.Context, answers []int) (models.LevelResponse, error) {
	var resp models.LevelResponse
	if err := c.do(ctx, http.MethodPost, "/api/assessment/level", "", models.SurveyAnswersRequest{Answers: answers}, &resp); err != nil {
		return models.LevelResponse{}, fmt.Errorf("evaluate level: %w", err)
	}
	return resp, nil
}

// EvaluateStyle asks the server for the style of a set of quiz answers
func (c *Client) EvaluateStyle(ctx context.Context, answers []string) (models.StyleResponse, error) {
	var resp models.StyleResponse
	if err := c.do(ctx, http.MethodPost, "/api/assessment/style", "", models.QuizAnswersRequest{Answers: answers}, &resp); err != nil {
		return models.StyleResponse{}, fmt.Errorf("evaluate style: %w", err)
	}
	return resp, nil
}

// Improvement lists training videos, optionally for one category
func (c *Client) Improvement(ctx context.Context, category string) ([]models.ImprovementVideo, error) {
	path := "/api/improvement"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var videos []models.ImprovementVideo
	if err := c.do(ctx, http.MethodGet, path, "", nil, &videos); err != nil {
		return nil, fmt.Errorf("improvement: %w", err)
	}
	return videos, nil
}

func profilePath(userID string) string {
	return "/api/profile/" + url.PathEscape(userID)
}

// do sends one request. A non-2xx response becomes an *APIError; otherwise
// the body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Message = e.Message
			apiErr.Details = e.Details
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
