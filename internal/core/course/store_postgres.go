// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package course (Postgres) implements the storage layer for courses.

# Schema Table Mapping
  - academic.course: Course identity and name.
  - academic.courseprogramme: Course to programme links.
  - academic.degreeprogramme: Programme names, joined for display.
  - academic.coursereview: Read only, for the reviewed flags.
*/
package course

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rmc/internal/platform/database/schema"
	"github.com/taibuivan/rmc/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for courses.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Query Builders

/*
summaryQuery builds the listing SELECT shared by every read.

Parameters:
  - reviewed: SQL boolean expression over alias c
  - filter: WHERE clause over alias c (may be empty)
  - tail: trailing clauses such as LIMIT/OFFSET

Returns:
  - string: Query yielding id, name, programme ids, programme names, reviewed
*/
func summaryQuery(reviewed, filter, tail string) string {
	course, link, programme := schema.AcademicCourse, schema.AcademicCourseProgramme, schema.AcademicDegreeProgramme

	return fmt.Sprintf(`
		SELECT c.%s, c.%s,
			COALESCE(array_agg(p.%s ORDER BY p.%s) FILTER (WHERE p.%s IS NOT NULL), '{}'),
			COALESCE(array_agg(p.%s ORDER BY p.%s) FILTER (WHERE p.%s IS NOT NULL), '{}'),
			%s
		FROM %s c
		LEFT JOIN %s cp ON cp.%s = c.%s
		LEFT JOIN %s p ON p.%s = cp.%s
		%s
		GROUP BY c.%s
		ORDER BY c.%s ASC
		%s`,
		course.ID, course.Name,
		programme.ID, programme.ID, programme.ID,
		programme.Name, programme.ID, programme.ID,
		reviewed,
		course.Table,
		link.Table, link.CourseID, course.ID,
		programme.Table, programme.ID, link.ProgrammeID,
		filter,
		course.ID,
		course.ID,
		tail,
	)
}

// reviewedBy returns the EXISTS expression for reviews of c, optionally by one student placeholder.
func reviewedBy(studentPlaceholder string) string {
	review := schema.AcademicCourseReview

	expression := fmt.Sprintf(`EXISTS (SELECT 1 FROM %s r WHERE r.%s = c.%s`, review.Table, review.CourseID, schema.AcademicCourse.ID)
	if studentPlaceholder != "" {
		expression += fmt.Sprintf(` AND r.%s = %s`, review.StudentID, studentPlaceholder)
	}
	return expression + `)`
}

// studentProgrammeFilter restricts c to the courses of the student bound to $1.
func studentProgrammeFilter() string {
	link, programme, student := schema.AcademicCourseProgramme, schema.AcademicDegreeProgramme, schema.UserStudent

	return fmt.Sprintf(`
		WHERE c.%s IN (
			SELECT l.%s FROM %s l
			JOIN %s dp ON dp.%s = l.%s
			JOIN %s s ON s.%s = dp.%s
			WHERE s.%s = $1
		)`,
		schema.AcademicCourse.ID,
		link.CourseID, link.Table,
		programme.Table, programme.ID, link.ProgrammeID,
		student.Table, student.DegreeProgramme, programme.Name,
		student.ID,
	)
}

func scanSummaries(rows pgx.Rows, capacity int) ([]*Summary, error) {
	defer rows.Close()

	summaries := make([]*Summary, 0, capacity)
	for rows.Next() {
		summary := &Summary{}
		if err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.ProgrammeIDs,
			&summary.ProgrammeNames,
			&summary.Reviewed,
		); err != nil {
			return nil, dberr.Wrap(err, "postgres_course_repo_scan_failed")
		}
		summaries = append(summaries, summary)
	}

	return summaries, dberr.Wrap(rows.Err(), "postgres_course_repo_list_failed")
}

// # Reads

/*
FindByID retrieves a course with its programmes.

Returns:
  - *Course: Hydrated entity
  - error: dberr.ErrNotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Course, error) {
	query := summaryQuery("FALSE", fmt.Sprintf("WHERE c.%s = $1", schema.AcademicCourse.ID), "")

	rows, err := repository.pool.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_course_repo_find_by_id_failed")
	}

	summaries, err := scanSummaries(rows, 1)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, dberr.ErrNotFound
	}
	return &summaries[0].Course, nil
}

// Count returns the number of courses.
func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.AcademicCourse.Table)

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "postgres_course_repo_count_failed")
	}
	return total, nil
}

// List returns a page of courses, flagging those reviewed by anyone.
func (repository *PostgresRepository) List(context context.Context, offset, limit int) ([]*Summary, error) {
	query := summaryQuery(reviewedBy(""), "", "LIMIT $1 OFFSET $2")

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_course_repo_list_failed")
	}
	return scanSummaries(rows, limit)
}

// CountForStudent returns the number of courses in the student's programme.
func (repository *PostgresRepository) CountForStudent(context context.Context, studentID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s c %s`, schema.AcademicCourse.Table, studentProgrammeFilter())

	var total int
	if err := repository.pool.QueryRow(context, query, studentID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "postgres_course_repo_count_for_student_failed")
	}
	return total, nil
}

/*
ListForStudent returns a page of the courses in the student's programme.

Parameters:
  - context: context.Context
  - studentID: int64 (also scopes the Reviewed flag)
  - offset: int
  - limit: int

Returns:
  - []*Summary: Rows in course ID order
  - error: Database errors
*/
func (repository *PostgresRepository) ListForStudent(context context.Context, studentID int64, offset, limit int) ([]*Summary, error) {
	query := summaryQuery(reviewedBy("$1"), studentProgrammeFilter(), "LIMIT $2 OFFSET $3")

	rows, err := repository.pool.Query(context, query, studentID, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_course_repo_list_for_student_failed")
	}
	return scanSummaries(rows, limit)
}

// # Writes

/*
Create inserts a course and its programme links in one transaction.

Parameters:
  - context: context.Context
  - course: *Course (ID is filled on success)

Returns:
  - error: Transactional or database failures
*/
func (repository *PostgresRepository) Create(context context.Context, course *Course) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_course_create_tx")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.AcademicCourse.Table, schema.AcademicCourse.Name, schema.AcademicCourse.ID,
	)
	if err := transaction.QueryRow(context, query, course.Name).Scan(&course.ID); err != nil {
		return dberr.Wrap(err, "insert_course")
	}

	if err := linkProgrammes(context, transaction, course); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_course_create_tx")
}

/*
Update renames a course and replaces its programme links.

Returns:
  - error: dberr.ErrNotFound when the course is gone, or database errors
*/
func (repository *PostgresRepository) Update(context context.Context, course *Course) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_course_update_tx")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.AcademicCourse.Table, schema.AcademicCourse.Name, schema.AcademicCourse.ID,
	)
	tag, err := transaction.Exec(context, query, course.Name, course.ID)
	if err != nil {
		return dberr.Wrap(err, "update_course")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.AcademicCourseProgramme.Table, schema.AcademicCourseProgramme.CourseID,
	)
	if _, err := transaction.Exec(context, unlink, course.ID); err != nil {
		return dberr.Wrap(err, "clear_course_programmes")
	}

	if err := linkProgrammes(context, transaction, course); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_course_update_tx")
}

// Delete removes a course; links and reviews go with it. Deleting a missing course is a no-op.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.AcademicCourse.Table, schema.AcademicCourse.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "postgres_course_repo_delete_failed")
	}
	return nil
}

func linkProgrammes(context context.Context, transaction pgx.Tx, course *Course) error {
	if len(course.ProgrammeIDs) == 0 {
		return nil
	}

	link := schema.AcademicCourseProgramme
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`,
		link.Table, link.CourseID, link.ProgrammeID,
	)

	if _, err := transaction.Exec(context, query, course.ID, course.ProgrammeIDs); err != nil {
		return dberr.Wrap(err, "insert_course_programmes")
	}
	return nil
}
