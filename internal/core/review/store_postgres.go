// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review (Postgres) implements the storage layer for reviews.

# Schema Table Mapping
  - academic.coursereview: Scores and comments, unique per (student, course).
  - users.student, academic.course: Joined for display names.
*/
package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rmc/internal/platform/database/schema"
	"github.com/taibuivan/rmc/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for reviews.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// listQuery selects the review columns plus both display names, filtered on one review column.
func listQuery(column string) string {
	review, student, course := schema.AcademicCourseReview, schema.UserStudent, schema.AcademicCourse

	columns := review.Columns()
	for index, name := range columns {
		columns[index] = "r." + name
	}

	return fmt.Sprintf(`
		SELECT %s, s.%s, c.%s
		FROM %s r
		JOIN %s s ON s.%s = r.%s
		JOIN %s c ON c.%s = r.%s
		WHERE r.%s = $1
		ORDER BY r.%s ASC
		LIMIT $2 OFFSET $3`,
		strings.Join(columns, ", "), student.Name, course.Name,
		review.Table,
		student.Table, student.ID, review.StudentID,
		course.Table, course.ID, review.CourseID,
		column,
		review.ID,
	)
}

func (repository *PostgresRepository) list(context context.Context, column string, id int64, offset, limit int) ([]*Review, error) {
	rows, err := repository.pool.Query(context, listQuery(column), id, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_review_repo_list_failed")
	}
	defer rows.Close()

	reviews := make([]*Review, 0, limit)
	for rows.Next() {
		review := &Review{}
		if err := rows.Scan(
			&review.ID,
			&review.StudentID,
			&review.CourseID,
			&review.Overall,
			&review.Easiness,
			&review.Interest,
			&review.Usefulness,
			&review.Teaching,
			&review.Comment,
			&review.CreatedAt,
			&review.StudentName,
			&review.CourseName,
		); err != nil {
			return nil, dberr.Wrap(err, "postgres_review_repo_scan_failed")
		}
		reviews = append(reviews, review)
	}

	return reviews, dberr.Wrap(rows.Err(), "postgres_review_repo_list_failed")
}

func (repository *PostgresRepository) count(context context.Context, column string, id int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.AcademicCourseReview.Table, column)

	var total int
	if err := repository.pool.QueryRow(context, query, id).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "postgres_review_repo_count_failed")
	}
	return total, nil
}

// # Repository Methods

// Exists reports whether the student already reviewed the course.
func (repository *PostgresRepository) Exists(context context.Context, studentID, courseID int64) (bool, error) {
	review := schema.AcademicCourseReview
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		review.Table, review.StudentID, review.CourseID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, studentID, courseID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "postgres_review_repo_exists_failed")
	}
	return exists, nil
}

/*
Create persists a review.

Parameters:
  - context: context.Context
  - review: *Review (ID and CreatedAt are filled on success)

Returns:
  - error: A CONFLICT when the pair was already reviewed, or database errors
*/
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	table := schema.AcademicCourseReview
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s`,
		table.Table,
		table.StudentID, table.CourseID,
		table.OverallScore, table.EasinessScore, table.InterestScore, table.UsefulnessScore, table.TeachingScore,
		table.Comment,
		table.ID, table.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		review.StudentID, review.CourseID,
		review.Overall, review.Easiness, review.Interest, review.Usefulness, review.Teaching,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt)

	return dberr.Wrap(err, "postgres_review_repo_create_failed")
}

// CountByStudent returns the number of reviews written by a student.
func (repository *PostgresRepository) CountByStudent(context context.Context, studentID int64) (int, error) {
	return repository.count(context, schema.AcademicCourseReview.StudentID, studentID)
}

// ListByStudent returns a page of a student's reviews in ID order.
func (repository *PostgresRepository) ListByStudent(context context.Context, studentID int64, offset, limit int) ([]*Review, error) {
	return repository.list(context, schema.AcademicCourseReview.StudentID, studentID, offset, limit)
}

// CountByCourse returns the number of reviews of a course.
func (repository *PostgresRepository) CountByCourse(context context.Context, courseID int64) (int, error) {
	return repository.count(context, schema.AcademicCourseReview.CourseID, courseID)
}

// ListByCourse returns a page of a course's reviews in ID order.
func (repository *PostgresRepository) ListByCourse(context context.Context, courseID int64, offset, limit int) ([]*Review, error) {
	return repository.list(context, schema.AcademicCourseReview.CourseID, courseID, offset, limit)
}

// StudentName returns the display name of a student.
func (repository *PostgresRepository) StudentName(context context.Context, studentID int64) (string, error) {
	return repository.name(context, schema.UserStudent.Table, schema.UserStudent.Name, schema.UserStudent.ID, studentID)
}

// CourseName returns the name of a course.
func (repository *PostgresRepository) CourseName(context context.Context, courseID int64) (string, error) {
	return repository.name(context, schema.AcademicCourse.Table, schema.AcademicCourse.Name, schema.AcademicCourse.ID, courseID)
}

func (repository *PostgresRepository) name(context context.Context, table, nameColumn, idColumn string, id int64) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, nameColumn, table, idColumn)

	var name string
	if err := repository.pool.QueryRow(context, query, id).Scan(&name); err != nil {
		return "", dberr.Wrap(err, "postgres_review_repo_name_failed")
	}
	return name, nil
}
