// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/appadel/assess"
	"github.com/danielhkuo/appadel/models"
	"github.com/danielhkuo/appadel/testutil"
)

// TestFullAssessmentWorkflow tests the complete end-to-end flow:
// 1. Register
// 2. Fetch the empty profile
// 3. Evaluate the survey and save the level
// 4. Evaluate the quiz and save the style
// 5. Add matches
// 6. Reset the style
// 7. Log in again and verify the profile
func TestFullAssessmentWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	tokens := testutil.GetTestTokens(cfg)
	authHandler := NewAuthHandler(db, tokens)
	profileHandler := NewProfileHandler(db, cfg)
	assessmentHandler := NewAssessmentHandler()

	// Step 1: Register
	w := httptest.NewRecorder()
	authHandler.Register(w, testutil.MakeRequest("POST", "/api/auth/register", models.RegisterRequest{
		Name:     "Marta",
		Email:    "marta@example.com",
		Password: "padel-2025",
	}, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Register failed: %d - %s", w.Code, w.Body.String())
	}
	var registered models.AuthResponse
	testutil.AssertJSON(t, w, &registered)
	userID := registered.UserID
	t.Logf("Step 1 - Registered: %s", userID)

	// Step 2: Profile exists and is unassessed
	w = httptest.NewRecorder()
	profileHandler.GetProfile(w, profileRequest("GET", "/api/profile/"+userID, userID, userID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Get profile failed: %d - %s", w.Code, w.Body.String())
	}
	var profile models.Profile
	testutil.AssertJSON(t, w, &profile)
	if profile.Level != models.LevelUnassessed || profile.Style != nil || len(profile.Matches) != 0 {
		t.Fatalf("Step 2 - Expected empty profile, got %+v", profile)
	}

	// Step 3: Survey
	w = httptest.NewRecorder()
	assessmentHandler.EvaluateLevel(w, testutil.MakeRequest("POST", "/api/assessment/level",
		models.SurveyAnswersRequest{Answers: []int{3, 2, 3, 2, 3}}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Evaluate level failed: %d - %s", w.Code, w.Body.String())
	}
	var level models.LevelResponse
	testutil.AssertJSON(t, w, &level)
	// 13/20 = 0.65
	if level.Level != 6 {
		t.Fatalf("Step 3 - Expected level 6, got %d", level.Level)
	}

	w = httptest.NewRecorder()
	profileHandler.UpdateProfile(w, profileRequest("PATCH", "/api/profile/"+userID, userID, userID,
		models.UpdateProfileRequest{Level: &level.Level}))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Save level failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 4: Quiz
	answers := make([]string, len(assess.QuizQuestions))
	for i, q := range assess.QuizQuestions {
		answers[i] = q.Options[1]
	}
	w = httptest.NewRecorder()
	assessmentHandler.EvaluateStyle(w, testutil.MakeRequest("POST", "/api/assessment/style",
		models.QuizAnswersRequest{Answers: answers}, nil))
	var style models.StyleResponse
	testutil.AssertJSON(t, w, &style)
	if style.Style != models.StyleReves {
		t.Fatalf("Step 4 - Expected reves, got %s", style.Style)
	}

	w = httptest.NewRecorder()
	profileHandler.UpdateProfile(w, profileRequest("PATCH", "/api/profile/"+userID, userID, userID,
		models.UpdateProfileRequest{Style: &style.Style}))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Save style failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 5: Matches
	for i, rating := range []int{3, 4, 5} {
		w = httptest.NewRecorder()
		profileHandler.AddMatch(w, profileRequest("POST", "/api/profile/"+userID+"/matches", userID, userID,
			testutil.TestMatch("", rating)))
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 5 - Add match %d failed: %d - %s", i, w.Code, w.Body.String())
		}
	}

	// Step 6: Reset style
	empty := ""
	w = httptest.NewRecorder()
	profileHandler.UpdateProfile(w, profileRequest("PATCH", "/api/profile/"+userID, userID, userID,
		models.UpdateProfileRequest{Style: &empty}))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Reset style failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 7: Log in again and read the profile
	w = httptest.NewRecorder()
	authHandler.Login(w, testutil.MakeRequest("POST", "/api/auth/login", models.LoginRequest{
		Email:    "marta@example.com",
		Password: "padel-2025",
	}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Login failed: %d - %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	profileHandler.GetProfile(w, profileRequest("GET", "/api/profile/"+userID, userID, userID, nil))
	testutil.AssertJSON(t, w, &profile)

	if profile.Level != 6 {
		t.Errorf("Final - Expected level 6, got %d", profile.Level)
	}
	if profile.Style != nil {
		t.Errorf("Final - Expected style cleared, got %q", *profile.Style)
	}
	if len(profile.Matches) != 3 {
		t.Errorf("Final - Expected 3 matches, got %d", len(profile.Matches))
	}
	want := models.SkillAverages{Remate: 4, Volea: 4, Defensa: 4, Saque: 4, SalidaPared: 4}
	if profile.SkillAverages != want {
		t.Errorf("Final - Expected averages %+v, got %+v", want, profile.SkillAverages)
	}
}

// TestAveragesAlwaysFollowMatches checks the stored averages after every kind of write
func TestAveragesAlwaysFollowMatches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewProfileHandler(db, testutil.GetTestConfig())
	userID := testutil.CreateTestAccount(t, db, "Ana", "ana@example.com")

	check := func(step string) {
		t.Helper()
		w := httptest.NewRecorder()
		handler.GetProfile(w, profileRequest("GET", "/api/profile/"+userID, userID, userID, nil))
		var p models.Profile
		testutil.AssertJSON(t, w, &p)
		if got, want := p.SkillAverages, assess.SkillAverages(p.Matches); got != want {
			t.Errorf("%s - averages %+v do not match matches (want %+v)", step, got, want)
		}
	}

	check("fresh")

	w := httptest.NewRecorder()
	handler.AddMatch(w, profileRequest("POST", "/api/profile/"+userID+"/matches", userID, userID, testutil.TestMatch("", 2)))
	check("after add")

	matches := []models.Match{testutil.TestMatch("a", 5), testutil.TestMatch("b", 4), testutil.TestMatch("c", 4)}
	w = httptest.NewRecorder()
	handler.UpdateProfile(w, profileRequest("PUT", "/api/profile/"+userID, userID, userID,
		models.UpdateProfileRequest{Matches: &matches, SkillAverages: &models.SkillAverages{}}))
	check("after replace")

	w = httptest.NewRecorder()
	handler.UpdateProfile(w, profileRequest("PATCH", "/api/profile/"+userID, userID, userID,
		models.UpdateProfileRequest{SkillAverages: &models.SkillAverages{Remate: 1}}))
	check("after averages-only patch")
}
