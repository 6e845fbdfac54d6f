// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package programme

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rmc/internal/platform/database/schema"
	"github.com/taibuivan/rmc/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Programme, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.AcademicDegreeProgramme.ID,
		schema.AcademicDegreeProgramme.Name,
		schema.AcademicDegreeProgramme.Level,
		schema.AcademicDegreeProgramme.Table,
		schema.AcademicDegreeProgramme.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_programmes")
	}
	defer rows.Close()

	var programmes []*Programme
	for rows.Next() {
		p := &Programme{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Level); err != nil {
			return nil, dberr.Wrap(err, "scan_programme")
		}
		programmes = append(programmes, p)
	}

	return programmes, dberr.Wrap(rows.Err(), "list_programmes")
}

func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Programme, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.AcademicDegreeProgramme.ID,
		schema.AcademicDegreeProgramme.Name,
		schema.AcademicDegreeProgramme.Level,
		schema.AcademicDegreeProgramme.Table,
		schema.AcademicDegreeProgramme.Name,
	)

	p := &Programme{}
	err := repository.db.QueryRow(context, query, name).Scan(&p.ID, &p.Name, &p.Level)
	if err != nil {
		return nil, dberr.Wrap(err, "get_programme")
	}
	return p, nil
}
