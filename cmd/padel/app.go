// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/appadel/assess"
	"github.com/danielhkuo/appadel/client"
	"github.com/danielhkuo/appadel/models"
)

// errQuit ends the session without logging out
var errQuit = errors.New("quit")

type app struct {
	api       *client.Client
	sync      *client.Sync
	in        *prompter
	out       io.Writer
	tokenFile string // empty disables remembering the session
	today     func() time.Time
}

func newApp(api *client.Client, in io.Reader, out io.Writer, tokenFile string) *app {
	return &app{
		api:       api,
		sync:      client.NewSync(api),
		in:        newPrompter(in, out),
		out:       out,
		tokenFile: tokenFile,
		today:     time.Now,
	}
}

// run drives one terminal session: sign in, first-use assessment, then the dashboard menu
func (a *app) run(ctx context.Context) error {
	profile, err := a.authenticate(ctx)
	if errors.Is(err, errQuit) {
		return nil
	}
	if err != nil {
		return err
	}

	if profile.Level == models.LevelUnassessed {
		fmt.Fprintln(a.out, "\nAntes de empezar, evalúa tu nivel.")
		if profile, err = a.survey(ctx); err != nil {
			return err
		}
	}
	if profile.Style == nil {
		take, err := a.in.confirm("¿Quieres descubrir si eres jugador de drive o de revés?")
		if err != nil {
			return err
		}
		if take {
			if _, err := a.quiz(ctx); err != nil {
				return err
			}
		}
	}

	for {
		err := a.menu(ctx)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if !a.sync.Session().Valid() {
			// logged out, or the server dropped the session
			return nil
		}
	}
}

// authenticate resumes a remembered session or asks to log in or register
func (a *app) authenticate(ctx context.Context) (models.Profile, error) {
	if token := a.loadToken(); token != "" {
		p, err := a.sync.Resume(ctx, token)
		if err == nil {
			fmt.Fprintf(a.out, "Hola de nuevo, %s.\n", a.sync.Session().Name)
			return p, nil
		}
		slog.Debug("stored session not resumed", "error", err)
		a.forgetToken()
	}

	for {
		idx, err := a.in.choice("\nappadel", []string{"Iniciar sesión", "Crear cuenta", "Salir"})
		if err != nil {
			return models.Profile{}, err
		}

		var p models.Profile
		switch idx {
		case 0:
			p, err = a.login(ctx)
		case 1:
			p, err = a.register(ctx)
		default:
			return models.Profile{}, errQuit
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return models.Profile{}, err
			}
			if errors.Is(err, client.ErrUnauthorized) {
				fmt.Fprintln(a.out, "Email o contraseña incorrectos.")
				continue
			}
			a.report(err)
			continue
		}

		a.saveToken(a.sync.Session().Token)
		fmt.Fprintf(a.out, "Bienvenido, %s.\n", a.sync.Session().Name)
		return p, nil
	}
}

func (a *app) login(ctx context.Context) (models.Profile, error) {
	email, err := a.in.required("Email")
	if err != nil {
		return models.Profile{}, err
	}
	password, err := a.in.password("Contraseña")
	if err != nil {
		return models.Profile{}, err
	}
	return a.sync.SignIn(ctx, email, password)
}

func (a *app) register(ctx context.Context) (models.Profile, error) {
	name, err := a.in.required("Nombre")
	if err != nil {
		return models.Profile{}, err
	}
	email, err := a.in.required("Email")
	if err != nil {
		return models.Profile{}, err
	}
	password, err := a.in.password("Contraseña")
	if err != nil {
		return models.Profile{}, err
	}
	return a.sync.Register(ctx, name, email, password)
}

// survey asks every level question; there is no way to skip one
func (a *app) survey(ctx context.Context) (models.Profile, error) {
	answers := make([]int, 0, len(assess.SurveyQuestions))
	for i, q := range assess.SurveyQuestions {
		idx, err := a.in.choice(fmt.Sprintf("\n%d/%d %s", i+1, len(assess.SurveyQuestions), q.Question), q.Options)
		if err != nil {
			return models.Profile{}, err
		}
		answers = append(answers, idx)
	}

	p, err := a.sync.CompleteSurvey(ctx, answers)
	if err != nil {
		return models.Profile{}, err
	}
	fmt.Fprintf(a.out, "\nTu nivel: %d (%s)\n", p.Level, assess.LevelBand(p.Level))
	return p, nil
}

func (a *app) quiz(ctx context.Context) (models.Profile, error) {
	answers := make([]string, 0, len(assess.QuizQuestions))
	for i, q := range assess.QuizQuestions {
		idx, err := a.in.choice(fmt.Sprintf("\n%d/%d %s", i+1, len(assess.QuizQuestions), q.Question), q.Options)
		if err != nil {
			return models.Profile{}, err
		}
		answers = append(answers, q.Options[idx])
	}

	p, err := a.sync.CompleteQuiz(ctx, answers)
	if err != nil {
		return models.Profile{}, err
	}
	fmt.Fprintf(a.out, "\nTu estilo: %s\n", styleLabel(p.Style))
	return p, nil
}

// menu shows the dashboard and runs one chosen action.
// Action failures are reported and the menu continues.
func (a *app) menu(ctx context.Context) error {
	a.dashboard()

	idx, err := a.in.choice("\n¿Qué quieres hacer?", []string{
		"Añadir partido",
		"Repetir encuesta de nivel",
		"Repetir test de estilo",
		"Ver contenido de mejora",
		"Cerrar sesión",
		"Salir",
	})
	if err != nil {
		return err
	}

	switch idx {
	case 0:
		err = a.addMatch(ctx)
	case 1:
		_, err = a.survey(ctx)
	case 2:
		err = a.retakeQuiz(ctx)
	case 3:
		err = a.improvement(ctx)
	case 4:
		return a.logout(ctx)
	default:
		return errQuit
	}

	if errors.Is(err, io.EOF) {
		return err
	}
	if err != nil {
		a.report(err)
	}
	return nil
}

func (a *app) dashboard() {
	p, ok := a.sync.Profile()
	if !ok {
		return
	}

	fmt.Fprintf(a.out, "\n== %s ==\n", a.sync.Session().Name)
	fmt.Fprintf(a.out, "Nivel:  %d (%s)\n", p.Level, assess.LevelBand(p.Level))
	fmt.Fprintf(a.out, "Estilo: %s\n", styleLabel(p.Style))

	avg := p.SkillAverages
	fmt.Fprintf(a.out, "Promedios: remate %.1f | volea %.1f | defensa %.1f | saque %.1f | salida de pared %.1f\n",
		avg.Remate, avg.Volea, avg.Defensa, avg.Saque, avg.SalidaPared)

	if len(p.Matches) == 0 {
		fmt.Fprintln(a.out, "Sin partidos registrados.")
		return
	}
	fmt.Fprintf(a.out, "Partidos (%d):\n", len(p.Matches))
	// most recent first
	for _, m := range slices.Backward(p.Matches) {
		result := "Victoria"
		if m.Result == models.ResultLoss {
			result = "Derrota"
		}
		line := fmt.Sprintf("  %s  %-8s %s  rival nivel %d", m.Date, result, m.Score, m.OpponentLevel)
		if m.Notes != "" {
			line += "  " + m.Notes
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *app) addMatch(ctx context.Context) error {
	var m models.Match
	var err error

	if m.Date, err = a.in.withDefault("Fecha (AAAA-MM-DD)", a.today().Format(assess.MatchDateLayout)); err != nil {
		return err
	}
	idx, err := a.in.choice("Resultado", []string{"Victoria", "Derrota"})
	if err != nil {
		return err
	}
	m.Result = models.ResultWin
	if idx == 1 {
		m.Result = models.ResultLoss
	}
	if m.Score, err = a.in.required("Marcador (ej. 6-4 6-3)"); err != nil {
		return err
	}
	if m.OpponentLevel, err = a.in.number("Nivel del rival", models.LevelMin, models.LevelMax); err != nil {
		return err
	}
	if m.Notes, err = a.in.line("Notas (opcional)"); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Valora cada golpe:")
	ratings := []struct {
		label string
		dst   *int
	}{
		{"Remate", &m.SkillRatings.Remate},
		{"Volea", &m.SkillRatings.Volea},
		{"Defensa", &m.SkillRatings.Defensa},
		{"Saque", &m.SkillRatings.Saque},
		{"Salida de pared", &m.SkillRatings.SalidaPared},
	}
	for _, r := range ratings {
		if *r.dst, err = a.in.number("  "+r.label, models.RatingMin, models.RatingMax); err != nil {
			return err
		}
	}

	if _, err := a.sync.AddMatch(ctx, m); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Partido guardado.")
	return nil
}

func (a *app) retakeQuiz(ctx context.Context) error {
	if _, err := a.sync.ResetStyle(ctx); err != nil {
		return err
	}
	_, err := a.quiz(ctx)
	return err
}

func (a *app) improvement(ctx context.Context) error {
	categories := []string{assess.CategoryDefensa, assess.CategoryAtaque, "Todo"}
	idx, err := a.in.choice("Categoría", categories)
	if err != nil {
		return err
	}
	category := ""
	if idx < 2 {
		category = categories[idx]
	}

	videos, err := a.api.Improvement(ctx, category)
	if err != nil {
		return err
	}
	for _, v := range videos {
		fmt.Fprintf(a.out, "\n[%s] %s\n  %s\n", v.Category, v.Title, v.Description)
		if v.URL != "" {
			fmt.Fprintf(a.out, "  %s\n", v.URL)
		} else {
			fmt.Fprintln(a.out, "  Próximamente")
		}
	}
	return nil
}

func (a *app) logout(ctx context.Context) error {
	err := a.sync.Logout(ctx)
	a.forgetToken()
	if err != nil {
		a.report(err)
	}
	fmt.Fprintln(a.out, "Sesión cerrada.")
	return nil
}

// report prints a user-facing message for err. A dropped session also
// forgets the remembered token.
func (a *app) report(err error) {
	slog.Debug("action failed", "error", err)

	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, client.ErrNotSignedIn):
		a.forgetToken()
		fmt.Fprintln(a.out, "Tu sesión ha caducado. Vuelve a iniciar sesión.")
		return
	case errors.Is(err, client.ErrConflict):
		fmt.Fprintln(a.out, "Ya existe una cuenta con ese email.")
		return
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = fmt.Sprintf("error del servidor (%d)", apiErr.StatusCode)
		}
		fmt.Fprintln(a.out, "Error: "+msg)
		fields := make([]string, 0, len(apiErr.Details))
		for field, reason := range apiErr.Details {
			fields = append(fields, fmt.Sprintf("  %s: %s", field, reason))
		}
		slices.Sort(fields)
		if len(fields) > 0 {
			fmt.Fprintln(a.out, strings.Join(fields, "\n"))
		}
	default:
		fmt.Fprintln(a.out, "Error: "+err.Error())
	}
}

func (a *app) loadToken() string {
	if a.tokenFile == "" {
		return ""
	}
	data, err := os.ReadFile(a.tokenFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (a *app) saveToken(token string) {
	if a.tokenFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(a.tokenFile), 0o700); err != nil {
		slog.Warn("could not remember session", "error", err)
		return
	}
	if err := os.WriteFile(a.tokenFile, []byte(token+"\n"), 0o600); err != nil {
		slog.Warn("could not remember session", "error", err)
	}
}

func (a *app) forgetToken() {
	if a.tokenFile == "" {
		return
	}
	if err := os.Remove(a.tokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not forget session", "error", err)
	}
}

func styleLabel(style *string) string {
	if style == nil {
		return "sin definir"
	}
	switch *style {
	case models.StyleDrive:
		return "Drive"
	case models.StyleReves:
		return "Revés"
	}
	return *style
}
