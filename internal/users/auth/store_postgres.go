// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth (Postgres) implements the account repositories on pgx.

# Schema Table Mapping
  - users.student: Student accounts, keyed by a unique email.
  - users.staff: Staff accounts, keyed by a unique email.

Storage errors are mapped through [dberr.Wrap], so a missing row surfaces as
dberr.ErrNotFound and a duplicate email as a CONFLICT.
*/
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rmc/internal/platform/database/schema"
	"github.com/taibuivan/rmc/internal/platform/dberr"
)

// # Student Repository

// PostgresStudentRepository implements [StudentRepository] using pgx.
type PostgresStudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new PostgreSQL implementation of [StudentRepository].
func NewStudentRepository(pool *pgxpool.Pool) *PostgresStudentRepository {
	return &PostgresStudentRepository{pool: pool}
}

// StudentSelect is the SELECT clause matching [ScanStudent].
var StudentSelect = "SELECT " + strings.Join(schema.UserStudent.Columns(), ", ") + " FROM " + schema.UserStudent.Table

// ScanStudent hydrates a student from a row selected with [StudentSelect].
func ScanStudent(row pgx.Row) (*Student, error) {
	student := &Student{}
	err := row.Scan(
		&student.ID,
		&student.Email,
		&student.Name,
		&student.PasswordHash,
		&student.Gender,
		&student.Age,
		&student.EntryDate,
		&student.DegreeProgramme,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

/*
FindByEmail retrieves a student by email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Student: Hydrated entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresStudentRepository) FindByEmail(context context.Context, email string) (*Student, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, StudentSelect, schema.UserStudent.Email)

	student, err := ScanStudent(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_student_repo_find_by_email_failed")
	}
	return student, nil
}

/*
Create inserts a student row and stores the generated ID on the entity.

Parameters:
  - context: context.Context
  - student: *Student (PasswordHash must already be set)

Returns:
  - error: CONFLICT on duplicate email, or database errors
*/
func (repository *PostgresStudentRepository) Create(context context.Context, student *Student) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		schema.UserStudent.Table,
		schema.UserStudent.Email, schema.UserStudent.Name, schema.UserStudent.Password,
		schema.UserStudent.Gender, schema.UserStudent.Age, schema.UserStudent.EntryDate,
		schema.UserStudent.DegreeProgramme,
		schema.UserStudent.ID,
	)

	err := repository.pool.QueryRow(context, query,
		student.Email,
		student.Name,
		student.PasswordHash,
		student.Gender,
		student.Age,
		student.EntryDate,
		student.DegreeProgramme,
	).Scan(&student.ID)

	return dberr.Wrap(err, "postgres_student_repo_create_failed")
}

// # Staff Repository

// PostgresStaffRepository implements [StaffRepository] using pgx.
type PostgresStaffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a new PostgreSQL implementation of [StaffRepository].
func NewStaffRepository(pool *pgxpool.Pool) *PostgresStaffRepository {
	return &PostgresStaffRepository{pool: pool}
}

// StaffSelect is the SELECT clause matching [ScanStaff].
var StaffSelect = "SELECT " + strings.Join(schema.UserStaff.Columns(), ", ") + " FROM " + schema.UserStaff.Table

// ScanStaff hydrates a staff member from a row selected with [StaffSelect].
func ScanStaff(row pgx.Row) (*Staff, error) {
	staff := &Staff{}
	if err := row.Scan(&staff.ID, &staff.Email, &staff.Name, &staff.PasswordHash, &staff.Gender); err != nil {
		return nil, err
	}
	return staff, nil
}

// FindByEmail retrieves a staff member by email address.
func (repository *PostgresStaffRepository) FindByEmail(context context.Context, email string) (*Staff, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, StaffSelect, schema.UserStaff.Email)

	staff, err := ScanStaff(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_staff_repo_find_by_email_failed")
	}
	return staff, nil
}

// Create inserts a staff row and stores the generated ID on the entity.
func (repository *PostgresStaffRepository) Create(context context.Context, staff *Staff) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`,
		schema.UserStaff.Table,
		schema.UserStaff.Email, schema.UserStaff.Name, schema.UserStaff.Password, schema.UserStaff.Gender,
		schema.UserStaff.ID,
	)

	err := repository.pool.QueryRow(context, query,
		staff.Email,
		staff.Name,
		staff.PasswordHash,
		staff.Gender,
	).Scan(&staff.ID)

	return dberr.Wrap(err, "postgres_staff_repo_create_failed")
}
