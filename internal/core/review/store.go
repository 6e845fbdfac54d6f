// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// Repository defines the data access contract for reviews.
type Repository interface {
	Exists(context context.Context, studentID, courseID int64) (bool, error)
	Create(context context.Context, review *Review) error

	CountByStudent(context context.Context, studentID int64) (int, error)
	ListByStudent(context context.Context, studentID int64, offset, limit int) ([]*Review, error)
	CountByCourse(context context.Context, courseID int64) (int, error)
	ListByCourse(context context.Context, courseID int64, offset, limit int) ([]*Review, error)

	// StudentName and CourseName title the staff listings.
	StudentName(context context.Context, studentID int64) (string, error)
	CourseName(context context.Context, courseID int64) (string, error)
}
