// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/sec"
	"github.com/taibuivan/rmc/internal/users/auth"
	"github.com/taibuivan/rmc/pkg/pagination"
)

// MessageSamePassword is shown when a reset would keep the current password.
const MessageSamePassword = "The new password should not be the same as the old one."

// # Service Layer

// Service orchestrates profile edits and password resets.
type Service struct {
	studentRepository StudentRepository
	staffRepository   StaffRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(students StudentRepository, staff StaffRepository, logger *slog.Logger) *Service {
	return &Service{
		studentRepository: students,
		staffRepository:   staff,
		logger:            logger,
	}
}

// # Profile Management

/*
Profile retrieves a student's profile.

Parameters:
  - context: context.Context
  - studentID: int64

Returns:
  - *auth.Student: The hydrated profile
  - error: Not found or execution failures
*/
func (service *Service) Profile(context context.Context, studentID int64) (*auth.Student, error) {
	student, err := service.studentRepository.FindByID(context, studentID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return student, nil
}

/*
UpdateProfile applies name, gender and age to a student.

Returns:
  - *auth.Student: The updated profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, studentID int64, input ProfileUpdate) (*auth.Student, error) {
	student, err := service.studentRepository.FindByID(context, studentID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	student.Name = input.Name
	student.Gender = input.Gender
	student.Age = input.Age

	if err := service.studentRepository.UpdateProfile(context, student); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("student_profile_updated", slog.Int64("student_id", studentID))

	return student, nil
}

// # Password Reset

/*
ResetStudentPassword replaces a student's password.

Description: The new password must differ from the current one; the check
runs against the stored bcrypt hash.

Returns:
  - error: A password field error, Not found, or storage failures
*/
func (service *Service) ResetStudentPassword(context context.Context, studentID int64, password string) error {
	student, err := service.studentRepository.FindByID(context, studentID)
	if err != nil {
		return fmt.Errorf("account_service_reset_lookup_failed: %w", err)
	}

	hash, err := newPasswordHash(password, student.PasswordHash)
	if err != nil {
		return err
	}

	if err := service.studentRepository.UpdatePassword(context, studentID, hash); err != nil {
		return fmt.Errorf("account_service_reset_failed: %w", err)
	}

	service.logger.Info("student_password_reset", slog.Int64("student_id", studentID))
	return nil
}

// ResetStaffPassword replaces a staff member's password, with the rules of [Service.ResetStudentPassword].
func (service *Service) ResetStaffPassword(context context.Context, staffID int64, password string) error {
	staff, err := service.staffRepository.FindByID(context, staffID)
	if err != nil {
		return fmt.Errorf("account_service_reset_lookup_failed: %w", err)
	}

	hash, err := newPasswordHash(password, staff.PasswordHash)
	if err != nil {
		return err
	}

	if err := service.staffRepository.UpdatePassword(context, staffID, hash); err != nil {
		return fmt.Errorf("account_service_reset_failed: %w", err)
	}

	service.logger.Info("staff_password_reset", slog.Int64("staff_id", staffID))
	return nil
}

func newPasswordHash(password, currentHash string) (string, error) {
	if sec.CheckPasswordHash(password, currentHash) {
		return "", apperr.Field(auth.FieldPassword, MessageSamePassword)
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("account_service_hash_failed: %w", err))
	}
	return hash, nil
}

// # Staff Views

// StaffName returns the display name of a staff member.
func (service *Service) StaffName(context context.Context, staffID int64) (string, error) {
	staff, err := service.staffRepository.FindByID(context, staffID)
	if err != nil {
		return "", fmt.Errorf("account_service_get_staff_failed: %w", err)
	}
	return staff.Name, nil
}

// Students exposes every student, with the review flag, as a paginated source.
func (service *Service) Students() pagination.Source[*StudentSummary] {
	return pagination.Funcs[*StudentSummary]{
		CountFunc: service.studentRepository.Count,
		ListFunc:  service.studentRepository.List,
	}
}
