// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles profile pages, password resets and the staff view of
enrolled students.

# Architecture

  - Entities: StudentSummary (listing row). Accounts themselves come from auth.
  - Domain: This package depends on the auth package for the account entities.
  - Security: A password can only be reset by the account that owns it.
*/
package account

import (
	"context"

	"github.com/taibuivan/rmc/internal/users/auth"
)

// # Domain Entities

// StudentSummary is a row of the staff student list.
type StudentSummary struct {
	auth.Student

	// Reviewed is true once the student has submitted at least one review.
	Reviewed bool `json:"reviewed"`
}

// ProfileUpdate holds the fields a student may change on their profile.
type ProfileUpdate struct {
	Name   string
	Gender int16
	Age    int
}

// # Repository Contracts

// StudentRepository defines the persistence contract for student accounts.
type StudentRepository interface {
	/*
		FindByID retrieves a student by ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *auth.Student: Loaded account entity
		  - error: dberr.ErrNotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*auth.Student, error)

	/*
		UpdateProfile persists name, gender and age.

		Parameters:
		  - context: context.Context
		  - student: *auth.Student (Hydrated entity with changes)

		Returns:
		  - error: Storage failures
	*/
	UpdateProfile(context context.Context, student *auth.Student) error

	// UpdatePassword replaces only the password hash.
	UpdatePassword(context context.Context, id int64, passwordHash string) error

	// Count returns the number of registered students.
	Count(context context.Context) (int, error)

	/*
		List returns one page of students ordered by ID.

		Parameters:
		  - context: context.Context
		  - offset: int
		  - limit: int

		Returns:
		  - []*StudentSummary: Rows with their review flag
		  - error: Storage failures
	*/
	List(context context.Context, offset, limit int) ([]*StudentSummary, error)
}

// StaffRepository defines the persistence contract for staff accounts.
type StaffRepository interface {
	FindByID(context context.Context, id int64) (*auth.Staff, error)
	UpdatePassword(context context.Context, id int64, passwordHash string) error
}
