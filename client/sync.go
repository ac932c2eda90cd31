// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/appadel/assess"
	"github.com/danielhkuo/appadel/models"
)

// Sync keeps one signed-in session and the last saved profile snapshot.
// Operations are serialized; the snapshot is replaced only after the server
// accepts a change and is never mutated in place.
type Sync struct {
	client *Client

	mu         sync.Mutex
	session    Session
	profile    models.Profile
	hasProfile bool
}

// NewSync returns a signed-out Sync using c
func NewSync(c *Client) *Sync {
	return &Sync{client: c}
}

// Session returns the current session; the zero Session when signed out
func (s *Sync) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Profile returns a copy of the snapshot and whether one is loaded
func (s *Sync) Profile() (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProfile(s.profile), s.hasProfile
}

// SignIn logs in and loads the profile, creating a default one on first use
func (s *Sync) SignIn(ctx context.Context, email, password string) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.client.Login(ctx, email, password)
	if err != nil {
		return models.Profile{}, err
	}
	return s.start(ctx, sess)
}

// Register creates an account, signs in and loads its profile
func (s *Sync) Register(ctx context.Context, name, email, password string) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return models.Profile{}, err
	}
	return s.start(ctx, sess)
}

// Resume restores a session from a saved token
func (s *Sync) Resume(ctx context.Context, token string) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.client.Session(ctx, token)
	if err != nil {
		return models.Profile{}, err
	}
	return s.start(ctx, sess)
}

// start adopts sess and loads its profile. A missing profile is provisioned
// with defaults; a concurrent creation elsewhere is picked up with a re-read.
func (s *Sync) start(ctx context.Context, sess Session) (models.Profile, error) {
	s.session = sess
	s.profile = models.Profile{}
	s.hasProfile = false

	p, err := s.client.GetProfile(ctx, sess)
	if errors.Is(err, ErrNotFound) {
		p, err = s.client.CreateProfile(ctx, sess, models.CreateProfileRequest{Level: models.LevelUnassessed})
		if errors.Is(err, ErrConflict) {
			p, err = s.client.GetProfile(ctx, sess)
		}
	}
	if err != nil {
		return models.Profile{}, s.fail(err)
	}
	return s.replace(p), nil
}

// CompleteSurvey computes the level from the survey answers and saves it
func (s *Sync) CompleteSurvey(ctx context.Context, answers []int) (models.Profile, error) {
	if err := assess.ValidateSurveyAnswers(answers); err != nil {
		return models.Profile{}, err
	}
	level := assess.Level(answers)
	return s.save(ctx, models.UpdateProfileRequest{Level: &level})
}

// CompleteQuiz classifies the quiz answers and saves the style
func (s *Sync) CompleteQuiz(ctx context.Context, answers []string) (models.Profile, error) {
	if err := assess.ValidateQuizAnswers(answers); err != nil {
		return models.Profile{}, err
	}
	style := assess.ClassifyStyle(answers)
	return s.save(ctx, models.UpdateProfileRequest{Style: &style})
}

// ResetStyle clears the saved style so the quiz can be retaken
func (s *Sync) ResetStyle(ctx context.Context) (models.Profile, error) {
	empty := ""
	return s.save(ctx, models.UpdateProfileRequest{Style: &empty})
}

// AddMatch appends m to the snapshot's matches, recomputes the averages and
// saves both. A missing match ID is generated.
func (s *Sync) AddMatch(ctx context.Context, m models.Match) (models.Profile, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if invalid := assess.ValidateMatch(m); len(invalid) > 0 {
		return models.Profile{}, fmt.Errorf("%w: %s", assess.ErrInvalidMatch, describe(invalid))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return models.Profile{}, err
	}
	next := assess.AppendMatch(s.profile, m)
	return s.update(ctx, models.UpdateProfileRequest{
		Matches:       &next.Matches,
		SkillAverages: &next.SkillAverages,
	})
}

// Logout revokes the token and clears local state. State is cleared even
// when the server call fails.
func (s *Sync) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Valid() {
		return nil
	}
	err := s.client.Logout(ctx, s.session)
	s.clear()
	if errors.Is(err, ErrUnauthorized) {
		return nil
	}
	return err
}

func (s *Sync) save(ctx context.Context, patch models.UpdateProfileRequest) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return models.Profile{}, err
	}
	return s.update(ctx, patch)
}

// update sends patch and swaps in the saved profile. Caller holds mu.
func (s *Sync) update(ctx context.Context, patch models.UpdateProfileRequest) (models.Profile, error) {
	p, err := s.client.UpdateProfile(ctx, s.session, patch)
	if err != nil {
		return models.Profile{}, s.fail(err)
	}
	return s.replace(p), nil
}

func (s *Sync) ready() error {
	if !s.session.Valid() {
		return ErrNotSignedIn
	}
	if !s.hasProfile {
		return fmt.Errorf("%w: no profile loaded", ErrNotSignedIn)
	}
	return nil
}

func (s *Sync) replace(p models.Profile) models.Profile {
	s.profile = p
	s.hasProfile = true
	return cloneProfile(p)
}

// fail drops the session when the server no longer accepts the token
func (s *Sync) fail(err error) error {
	if errors.Is(err, ErrUnauthorized) {
		s.clear()
	}
	return err
}

func (s *Sync) clear() {
	s.session = Session{}
	s.profile = models.Profile{}
	s.hasProfile = false
}

func cloneProfile(p models.Profile) models.Profile {
	p.Matches = slices.Clone(p.Matches)
	if p.Style != nil {
		style := *p.Style
		p.Style = &style
	}
	return p
}

func describe(invalid map[string]string) string {
	fields := make([]string, 0, len(invalid))
	for field, reason := range invalid {
		fields = append(fields, field+"="+reason)
	}
	slices.Sort(fields)
	return strings.Join(fields, ", ")
}
