// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account (Postgres) implements the storage layer for profiles.

# Schema Table Mapping
  - users.student: Profile fields and password hash.
  - users.staff: Password hash.
  - academic.coursereview: Read only, to flag students who have reviewed.
*/
package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rmc/internal/platform/database/schema"
	"github.com/taibuivan/rmc/internal/platform/dberr"
	"github.com/taibuivan/rmc/internal/users/auth"
)

// # Repository Implementations

// PostgresStudentRepository implements [StudentRepository] using pgx.
type PostgresStudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new Postgres implementation for student profiles.
func NewStudentRepository(pool *pgxpool.Pool) *PostgresStudentRepository {
	return &PostgresStudentRepository{pool: pool}
}

// PostgresStaffRepository implements [StaffRepository] using pgx.
type PostgresStaffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a new Postgres implementation for staff accounts.
func NewStaffRepository(pool *pgxpool.Pool) *PostgresStaffRepository {
	return &PostgresStaffRepository{pool: pool}
}

// # StudentRepository Methods

/*
FindByID retrieves a student from the users.student table.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *auth.Student: Hydrated entity
  - error: dberr.ErrNotFound or database execution failure
*/
func (repository *PostgresStudentRepository) FindByID(context context.Context, id int64) (*auth.Student, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, auth.StudentSelect, schema.UserStudent.ID)

	student, err := auth.ScanStudent(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_student_repo_find_by_id_failed")
	}
	return student, nil
}

/*
UpdateProfile syncs the Name, Gender and Age fields.

Parameters:
  - context: context.Context
  - student: *auth.Student

Returns:
  - error: dberr.ErrNotFound when the row is gone, or database errors
*/
func (repository *PostgresStudentRepository) UpdateProfile(context context.Context, student *auth.Student) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3
		WHERE %s = $4`,
		schema.UserStudent.Table,
		schema.UserStudent.Name, schema.UserStudent.Gender, schema.UserStudent.Age,
		schema.UserStudent.ID,
	)

	tag, err := repository.pool.Exec(context, query, student.Name, student.Gender, student.Age, student.ID)
	if err != nil {
		return dberr.Wrap(err, "postgres_student_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the password hash of a student.
func (repository *PostgresStudentRepository) UpdatePassword(context context.Context, id int64, passwordHash string) error {
	return updatePassword(context, repository.pool, schema.UserStudent.Table, schema.UserStudent.Password, schema.UserStudent.ID, id, passwordHash)
}

// Count returns the number of students.
func (repository *PostgresStudentRepository) Count(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.UserStudent.Table)

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "postgres_student_repo_count_failed")
	}
	return total, nil
}

/*
List returns a page of students ordered by ID, flagging those with reviews.

Parameters:
  - context: context.Context
  - offset: int
  - limit: int

Returns:
  - []*StudentSummary: Rows in ID order
  - error: Database errors
*/
func (repository *PostgresStudentRepository) List(context context.Context, offset, limit int) ([]*StudentSummary, error) {
	student, review := schema.UserStudent, schema.AcademicCourseReview

	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
			EXISTS (SELECT 1 FROM %s r WHERE r.%s = s.%s)
		FROM %s s
		ORDER BY s.%s ASC
		LIMIT $1 OFFSET $2`,
		student.ID, student.Email, student.Name, student.Gender, student.Age, student.EntryDate, student.DegreeProgramme,
		review.Table, review.StudentID, student.ID,
		student.Table,
		student.ID,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_student_repo_list_failed")
	}
	defer rows.Close()

	summaries := make([]*StudentSummary, 0, limit)
	for rows.Next() {
		summary := &StudentSummary{}
		if err := rows.Scan(
			&summary.ID,
			&summary.Email,
			&summary.Name,
			&summary.Gender,
			&summary.Age,
			&summary.EntryDate,
			&summary.DegreeProgramme,
			&summary.Reviewed,
		); err != nil {
			return nil, dberr.Wrap(err, "postgres_student_repo_scan_failed")
		}
		summaries = append(summaries, summary)
	}

	return summaries, dberr.Wrap(rows.Err(), "postgres_student_repo_list_failed")
}

// # StaffRepository Methods

// FindByID retrieves a staff member from the users.staff table.
func (repository *PostgresStaffRepository) FindByID(context context.Context, id int64) (*auth.Staff, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, auth.StaffSelect, schema.UserStaff.ID)

	staff, err := auth.ScanStaff(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_staff_repo_find_by_id_failed")
	}
	return staff, nil
}

// UpdatePassword replaces the password hash of a staff member.
func (repository *PostgresStaffRepository) UpdatePassword(context context.Context, id int64, passwordHash string) error {
	return updatePassword(context, repository.pool, schema.UserStaff.Table, schema.UserStaff.Password, schema.UserStaff.ID, id, passwordHash)
}

func updatePassword(context context.Context, pool *pgxpool.Pool, table, passwordColumn, idColumn string, id int64, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, table, passwordColumn, idColumn)

	tag, err := pool.Exec(context, query, passwordHash, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_password_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
