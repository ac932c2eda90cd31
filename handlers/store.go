// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/appadel/assess"
	"github.com/danielhkuo/appadel/cliparse"
	"github.com/danielhkuo/appadel/models"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectProfile = `
	SELECT account_id, level, style, matches, skill_averages, created_at, updated_at
	FROM profile
	WHERE account_id = $1
`

// profileQuery returns the profile SELECT. With lock set on Postgres the row
// stays locked until the transaction ends; sqlite has no row locks and relies
// on its single connection to serialize writers.
func profileQuery(dbType string, lock bool) string {
	if lock && dbType == cliparse.DatabasePostgres {
		return selectProfile + "FOR UPDATE"
	}
	return selectProfile
}

// loadProfile reads one profile row. Returns sql.ErrNoRows if the account has none.
func loadProfile(ctx context.Context, q dbtx, userID string) (models.Profile, error) {
	return scanProfile(q.QueryRowContext(ctx, selectProfile, userID))
}

// lockProfile is loadProfile for a read-modify-write inside a transaction
func lockProfile(ctx context.Context, tx *sql.Tx, dbType, userID string) (models.Profile, error) {
	return scanProfile(tx.QueryRowContext(ctx, profileQuery(dbType, true), userID))
}

func scanProfile(row *sql.Row) (models.Profile, error) {
	var (
		p            models.Profile
		style        sql.NullString
		matchesJSON  []byte
		averagesJSON []byte
	)

	err := row.Scan(&p.UserID, &p.Level, &style, &matchesJSON, &averagesJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Profile{}, err
	}

	if style.Valid {
		s := style.String
		p.Style = &s
	}
	if err := json.Unmarshal(matchesJSON, &p.Matches); err != nil {
		return models.Profile{}, fmt.Errorf("failed to decode matches: %w", err)
	}
	if p.Matches == nil {
		p.Matches = []models.Match{}
	}
	if err := json.Unmarshal(averagesJSON, &p.SkillAverages); err != nil {
		return models.Profile{}, fmt.Errorf("failed to decode skill averages: %w", err)
	}

	return p, nil
}

// insertProfile writes a new profile row. Skill averages are derived from
// p.Matches, whatever p.SkillAverages holds.
func insertProfile(ctx context.Context, q dbtx, p models.Profile, now time.Time) error {
	matchesJSON, averagesJSON, err := encodeMatches(p.Matches)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO profile (account_id, level, style, matches, skill_averages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.UserID, p.Level, p.Style, matchesJSON, averagesJSON, now, now)
	return err
}

// duplicateMatchID returns the first match ID that appears twice, or ""
func duplicateMatchID(matches []models.Match) string {
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if m.ID == "" {
			continue
		}
		if seen[m.ID] {
			return m.ID
		}
		seen[m.ID] = true
	}
	return ""
}

// matchesNewestFirst orders matches by date, most recent first. Matches on
// the same date keep reverse insertion order.
func matchesNewestFirst(matches []models.Match) []models.Match {
	out := slices.Clone(matches)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.Match) int {
		return strings.Compare(b.Date, a.Date)
	})
	if out == nil {
		out = []models.Match{}
	}
	return out
}

// encodeMatches returns the JSON documents stored for a match list and its averages
func encodeMatches(matches []models.Match) (matchesJSON, averagesJSON string, err error) {
	if matches == nil {
		matches = []models.Match{}
	}

	m, err := json.Marshal(matches)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode matches: %w", err)
	}
	a, err := json.Marshal(assess.SkillAverages(matches))
	if err != nil {
		return "", "", fmt.Errorf("failed to encode skill averages: %w", err)
	}

	return string(m), string(a), nil
}
