// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rmc/internal/platform/database/schema"
	"github.com/taibuivan/rmc/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for chart aggregates.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GenderCounts groups users.student by gender.
func (repository *PostgresRepository) GenderCounts(context context.Context) (map[int16]int, error) {
	student := schema.UserStudent
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s GROUP BY %s`, student.Gender, student.Table, student.Gender)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_stats_repo_gender_failed")
	}
	defer rows.Close()

	counts := make(map[int16]int, 2)
	for rows.Next() {
		var (
			gender int16
			count  int
		)
		if err := rows.Scan(&gender, &count); err != nil {
			return nil, dberr.Wrap(err, "postgres_stats_repo_scan_failed")
		}
		counts[gender] = count
	}

	return counts, dberr.Wrap(rows.Err(), "postgres_stats_repo_gender_failed")
}

/*
Enrolment counts students per degree programme.

Returns:
  - []Enrolment: One entry per programme, in programme ID order
  - error: Database errors
*/
func (repository *PostgresRepository) Enrolment(context context.Context) ([]Enrolment, error) {
	programme, student := schema.AcademicDegreeProgramme, schema.UserStudent
	query := fmt.Sprintf(`
		SELECT p.%s, COUNT(s.%s)
		FROM %s p
		LEFT JOIN %s s ON s.%s = p.%s
		GROUP BY p.%s, p.%s
		ORDER BY p.%s ASC`,
		programme.Name, student.ID,
		programme.Table,
		student.Table, student.DegreeProgramme, programme.Name,
		programme.ID, programme.Name,
		programme.ID,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_stats_repo_enrolment_failed")
	}
	defer rows.Close()

	var enrolment []Enrolment
	for rows.Next() {
		var entry Enrolment
		if err := rows.Scan(&entry.Programme, &entry.Students); err != nil {
			return nil, dberr.Wrap(err, "postgres_stats_repo_scan_failed")
		}
		enrolment = append(enrolment, entry)
	}

	return enrolment, dberr.Wrap(rows.Err(), "postgres_stats_repo_enrolment_failed")
}
