package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is satisfied by *pgxpool.Pool and *pgx.Conn.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type CityCount struct {
	City  string
	Total int
}

type ReportRepository struct {
	DB Querier
}

// CountByCity groups stored leads by city, largest first. NULL cities count as "".
func (r *ReportRepository) CountByCity(ctx context.Context) ([]CityCount, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT COALESCE(cidade, ''), COUNT(*)
		FROM leads
		GROUP BY 1
		ORDER BY 2 DESC, 1
	`)
	if err != nil {
		return nil, fmt.Errorf("count by city: %w", err)
	}
	defer rows.Close()

	var out []CityCount
	for rows.Next() {
		var c CityCount
		if err := rows.Scan(&c.City, &c.Total); err != nil {
			return nil, fmt.Errorf("scan city count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
