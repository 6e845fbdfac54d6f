// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/pkg/pagination"
)

// # Service Layer

// Service orchestrates review submission and listings.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new review [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Submission

/*
Eligible checks that the course exists and that the student has not reviewed it yet.

Returns:
  - error: NOT_FOUND for an unknown course, [ErrAlreadyReviewed], or storage failures
*/
func (service *Service) Eligible(context context.Context, studentID, courseID int64) error {
	if _, err := service.repo.CourseName(context, courseID); err != nil {
		return fmt.Errorf("review_service_course_lookup_failed: %w", err)
	}

	exists, err := service.repo.Exists(context, studentID, courseID)
	if err != nil {
		return fmt.Errorf("review_service_exists_failed: %w", err)
	}
	if exists {
		return ErrAlreadyReviewed
	}
	return nil
}

/*
Submit records a student's review of a course.

Parameters:
  - context: context.Context
  - studentID: int64
  - courseID: int64
  - submission: Submission (already validated)

Returns:
  - *Review: The stored review
  - error: [ErrAlreadyReviewed] when a concurrent submission won, or storage failures
*/
func (service *Service) Submit(context context.Context, studentID, courseID int64, submission Submission) (*Review, error) {
	review := &Review{
		StudentID: studentID,
		CourseID:  courseID,
		Scores:    submission.Scores,
		Comment:   submission.Comment,
	}

	if err := service.repo.Create(context, review); err != nil {
		if apperr.IsCode(err, apperr.CodeConflict) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("review_service_create_failed: %w", err)
	}

	service.logger.Info("review_submitted",
		slog.Int64("review_id", review.ID),
		slog.Int64("student_id", studentID),
		slog.Int64("course_id", courseID),
	)
	return review, nil
}

// # Listings

// ByStudent exposes a student's reviews as a paginated source.
func (service *Service) ByStudent(studentID int64) pagination.Source[*Review] {
	return pagination.Funcs[*Review]{
		CountFunc: func(context context.Context) (int, error) {
			return service.repo.CountByStudent(context, studentID)
		},
		ListFunc: func(context context.Context, offset, limit int) ([]*Review, error) {
			return service.repo.ListByStudent(context, studentID, offset, limit)
		},
	}
}

// ByCourse exposes a course's reviews as a paginated source.
func (service *Service) ByCourse(courseID int64) pagination.Source[*Review] {
	return pagination.Funcs[*Review]{
		CountFunc: func(context context.Context) (int, error) {
			return service.repo.CountByCourse(context, courseID)
		},
		ListFunc: func(context context.Context, offset, limit int) ([]*Review, error) {
			return service.repo.ListByCourse(context, courseID, offset, limit)
		},
	}
}

// StudentName returns the name shown above a student's reviews.
func (service *Service) StudentName(context context.Context, studentID int64) (string, error) {
	name, err := service.repo.StudentName(context, studentID)
	if err != nil {
		return "", fmt.Errorf("review_service_student_lookup_failed: %w", err)
	}
	return name, nil
}

// CourseName returns the name shown above a course's reviews.
func (service *Service) CourseName(context context.Context, courseID int64) (string, error) {
	name, err := service.repo.CourseName(context, courseID)
	if err != nil {
		return "", fmt.Errorf("review_service_course_lookup_failed: %w", err)
	}
	return name, nil
}
