package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jpchat/internal/model"
)

// ErrLeadExists is returned when the session already has a stored lead.
var ErrLeadExists = errors.New("lead already stored for session")

const leadsSchema = `
CREATE TABLE IF NOT EXISTS leads (
	session_id TEXT PRIMARY KEY,
	nome       TEXT,
	interesse  TEXT,
	cidade     TEXT,
	estado     TEXT,
	idade      INTEGER,
	email      TEXT,
	criado_em  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type LeadRepository struct {
	DB *sql.DB
}

// StoredCity is the city column of one stored lead.
type StoredCity struct {
	SessionID string
	City      string
}

func (r *LeadRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, leadsSchema); err != nil {
		return fmt.Errorf("create leads table: %w", err)
	}
	return nil
}

// PersistLead inserts the lead once per session. Absent fields are stored as NULL.
func (r *LeadRepository) PersistLead(ctx context.Context, sessionID string, l model.Lead) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO leads
		(session_id, nome, interesse, cidade, estado, idade, email, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id) DO NOTHING
	`, sessionID,
		nullString(l.Name), nullString(l.Interest), nullString(l.City),
		nullString(l.State), nullInt(l.Age), nullString(l.Email),
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert lead %s: %w", sessionID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert lead %s: %w", sessionID, err)
	}
	if n == 0 {
		return ErrLeadExists
	}
	return nil
}

func (r *LeadRepository) Get(ctx context.Context, sessionID string) (model.Lead, error) {
	var (
		l                                   model.Lead
		nome, interesse, cidade, estado, em sql.NullString
		idade                               sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT nome, interesse, cidade, estado, idade, email
		FROM leads
		WHERE session_id = $1
	`, sessionID).Scan(&nome, &interesse, &cidade, &estado, &idade, &em)
	if err != nil {
		return model.Lead{}, err
	}
	l.Name, l.Interest, l.City, l.State, l.Email = nome.String, interesse.String, cidade.String, estado.String, em.String
	l.Age = int(idade.Int64)
	return l, nil
}

// ListCities returns the city of every stored lead, "" when NULL.
func (r *LeadRepository) ListCities(ctx context.Context) ([]StoredCity, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT session_id, cidade
		FROM leads
		ORDER BY criado_em
	`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	var list []StoredCity
	for rows.Next() {
		var (
			c    StoredCity
			city sql.NullString
		)
		if err := rows.Scan(&c.SessionID, &city); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		c.City = city.String
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *LeadRepository) UpdateCity(ctx context.Context, sessionID, city string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE leads
		SET cidade = $1
		WHERE session_id = $2
	`, city, sessionID)
	if err != nil {
		return fmt.Errorf("update city %s: %w", sessionID, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}
