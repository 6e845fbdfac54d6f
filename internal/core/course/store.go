// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"

	"github.com/taibuivan/rmc/internal/core/programme"
)

// Repository defines the data access contract for courses.
//
// List methods take an OFFSET/LIMIT pair and order rows by course ID.
type Repository interface {
	FindByID(context context.Context, id int64) (*Course, error)
	Create(context context.Context, course *Course) error
	Update(context context.Context, course *Course) error
	Delete(context context.Context, id int64) error

	// Count and List cover every course; Reviewed means reviewed by anyone.
	Count(context context.Context) (int, error)
	List(context context.Context, offset, limit int) ([]*Summary, error)

	// CountForStudent and ListForStudent cover the courses of the student's
	// degree programme; Reviewed means reviewed by that student.
	CountForStudent(context context.Context, studentID int64) (int, error)
	ListForStudent(context context.Context, studentID int64, offset, limit int) ([]*Summary, error)
}

// ProgrammeCatalog lists the programmes a course may be attached to.
type ProgrammeCatalog interface {
	List(context context.Context) ([]*programme.Programme, error)
}
