// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/dberr"
	"github.com/taibuivan/rmc/internal/platform/sec"
)

// Service implements the login and registration use cases.
//
// # Review Process
//
// Credential checks live here only. Any change to hashing or to the
// messages returned on failure must keep unknown emails and wrong passwords
// indistinguishable.
type Service struct {
	studentRepository StudentRepository
	staffRepository   StaffRepository
	programmes        ProgrammeCatalog
}

// NewService constructs a new [Service] with its repositories.
func NewService(students StudentRepository, staff StaffRepository, programmes ProgrammeCatalog) *Service {
	return &Service{
		studentRepository: students,
		staffRepository:   staff,
		programmes:        programmes,
	}
}

// # Authentication Flow

/*
LoginStudent checks student credentials.

Parameters:
  - context: context.Context
  - email: string
  - password: string (plain text)

Returns:
  - *Student: The authenticated account
  - error: A password field error for bad credentials, or storage errors
*/
func (service *Service) LoginStudent(context context.Context, email, password string) (*Student, error) {
	student, err := service.studentRepository.FindByEmail(context, email)
	if err != nil {
		return nil, credentialError(err, password)
	}

	if !sec.CheckPasswordHash(password, student.PasswordHash) {
		return nil, apperr.Field(FieldPassword, MessageBadCredentials)
	}
	return student, nil
}

// LoginStaff checks staff credentials, with the same error contract as [Service.LoginStudent].
func (service *Service) LoginStaff(context context.Context, email, password string) (*Staff, error) {
	staff, err := service.staffRepository.FindByEmail(context, email)
	if err != nil {
		return nil, credentialError(err, password)
	}

	if !sec.CheckPasswordHash(password, staff.PasswordHash) {
		return nil, apperr.Field(FieldPassword, MessageBadCredentials)
	}
	return staff, nil
}

// credentialError hides whether the email exists; other failures pass through.
func credentialError(err error, password string) error {
	if dberr.IsNotFound(err) {
		sec.BurnPasswordCheck(password)
		return apperr.Field(FieldPassword, MessageBadCredentials)
	}
	return err
}

// # Registration Flow

// StudentRegistration holds the data required to enrol a student.
type StudentRegistration struct {
	Email           string
	Name            string
	Password        string
	Gender          int16
	Age             int
	EntryDate       time.Time
	DegreeProgramme string
}

/*
RegisterStudent hashes the password and persists a new student.

Description: The degree programme must exist and the email must be unused.
A duplicate detected by the unique index is reported the same way as one
found by the lookup.

Returns:
  - *Student: Created entity with its ID
  - error: Field errors (email, degree_programme) or storage errors
*/
func (service *Service) RegisterStudent(context context.Context, input StudentRegistration) (*Student, error) {
	exists, err := service.programmes.Exists(context, input.DegreeProgramme)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.Field(FieldDegreeProgramme, MessageUnknownProgramme)
	}

	if _, err := service.studentRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Field(FieldEmail, MessageEmailExists)
	} else if !dberr.IsNotFound(err) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	student := &Student{
		Email:           input.Email,
		Name:            input.Name,
		PasswordHash:    hashedPassword,
		Gender:          input.Gender,
		Age:             input.Age,
		EntryDate:       input.EntryDate,
		DegreeProgramme: input.DegreeProgramme,
	}

	if err := service.studentRepository.Create(context, student); err != nil {
		return nil, duplicateEmail(err)
	}
	return student, nil
}

// StaffRegistration holds the data required to enrol a staff member.
type StaffRegistration struct {
	Email    string
	Name     string
	Password string
	Gender   int16
}

// RegisterStaff hashes the password and persists a new staff member.
func (service *Service) RegisterStaff(context context.Context, input StaffRegistration) (*Staff, error) {
	if _, err := service.staffRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Field(FieldEmail, MessageEmailExists)
	} else if !dberr.IsNotFound(err) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	staff := &Staff{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		Gender:       input.Gender,
	}

	if err := service.staffRepository.Create(context, staff); err != nil {
		return nil, duplicateEmail(err)
	}
	return staff, nil
}

// ProgrammeNames lists the degree programmes offered on the registration form.
func (service *Service) ProgrammeNames(context context.Context) ([]string, error) {
	return service.programmes.Names(context)
}

func duplicateEmail(err error) error {
	if apperr.IsCode(err, apperr.CodeConflict) {
		return apperr.Field(FieldEmail, MessageEmailExists)
	}
	return err
}
