// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/appadel/assess"
	"github.com/danielhkuo/appadel/middleware"
	"github.com/danielhkuo/appadel/models"
)

// AssessmentHandler serves the question catalogue and evaluates answers.
// It keeps no state; results are persisted by the client through the profile endpoints.
type AssessmentHandler struct{}

func NewAssessmentHandler() *AssessmentHandler {
	return &AssessmentHandler{}
}

// GetSurvey handles GET /api/assessment/survey
func (h *AssessmentHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, assess.SurveyQuestions)
}

// GetQuiz handles GET /api/assessment/quiz
func (h *AssessmentHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, assess.QuizQuestions)
}

// EvaluateLevel handles POST /api/assessment/level
func (h *AssessmentHandler) EvaluateLevel(w http.ResponseWriter, r *http.Request) {
	var req models.SurveyAnswersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := assess.ValidateSurveyAnswers(req.Answers); err != nil {
		reason := "out_of_range"
		if errors.Is(err, assess.ErrSurveyLength) {
			reason = "incomplete"
		}
		middleware.ValidationError(w, err.Error(), map[string]string{"answers": reason})
		return
	}

	level := assess.Level(req.Answers)
	slog.Debug("level evaluated", "level", level)

	middleware.JSONResponse(w, http.StatusOK, models.LevelResponse{
		Level: level,
		Band:  assess.LevelBand(level),
	})
}

// EvaluateStyle handles POST /api/assessment/style
func (h *AssessmentHandler) EvaluateStyle(w http.ResponseWriter, r *http.Request) {
	var req models.QuizAnswersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := assess.ValidateQuizAnswers(req.Answers); err != nil {
		reason := "unknown_option"
		if errors.Is(err, assess.ErrQuizLength) {
			reason = "incomplete"
		}
		middleware.ValidationError(w, err.Error(), map[string]string{"answers": reason})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StyleResponse{
		Style: assess.ClassifyStyle(req.Answers),
	})
}

// GetImprovement handles GET /api/improvement
// Optional query param: category (Defensa or Ataque)
func (h *AssessmentHandler) GetImprovement(w http.ResponseWriter, r *http.Request) {
	videos := assess.ImprovementVideos
	if category := r.URL.Query().Get("category"); category != "" {
		if category != assess.CategoryDefensa && category != assess.CategoryAtaque {
			middleware.ValidationError(w, "Unknown category", map[string]string{"category": "unknown_category"})
			return
		}
		videos = assess.VideosByCategory(category)
	}

	out := make([]models.ImprovementVideo, len(videos))
	for i, v := range videos {
		v.URL = assess.VideoURL(v)
		out[i] = v
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}
