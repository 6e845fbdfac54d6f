// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # Account Data Access

// StudentRepository defines the data access contract for student accounts.
type StudentRepository interface {

	/*
		FindByEmail returns the student with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Student: Hydrated entity
		  - error: dberr.ErrNotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Student, error)

	/*
		Create persists a new student and assigns its ID.

		Parameters:
		  - context: context.Context
		  - student: *Student

		Returns:
		  - error: Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, student *Student) error
}

// StaffRepository defines the data access contract for staff accounts.
type StaffRepository interface {

	/*
		FindByEmail returns the staff member with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Staff: Hydrated entity
		  - error: dberr.ErrNotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Staff, error)

	// Create persists a new staff member and assigns its ID.
	Create(context context.Context, staff *Staff) error
}

// ProgrammeCatalog checks degree programme names offered on the registration form.
type ProgrammeCatalog interface {
	Names(context context.Context) ([]string, error)
	Exists(context context.Context, name string) (bool, error)
}
