// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review records course reviews and lists them.

A student reviews each course at most once, scoring it on five axes from 1
to 10 and leaving a short comment. Students see their own reviews; staff
browse them per student and per course.
*/
package review

import (
	"time"

	"github.com/taibuivan/rmc/internal/platform/apperr"
)

// Scores are bounded to this range on every axis.
const (
	MinScore = 1
	MaxScore = 10
)

// Form field names of the review dialog.
const (
	FieldOverall    = "overall_score"
	FieldEasiness   = "easiness_score"
	FieldInterest   = "interest_score"
	FieldUsefulness = "usefulness_score"
	FieldTeaching   = "teaching_score"
	FieldComment    = "comment"
)

// MessageAlreadyReviewed is the tip returned for a second review of a course.
const MessageAlreadyReviewed = "You have already commented"

// ErrAlreadyReviewed reports a second review of the same course by the same student.
var ErrAlreadyReviewed = apperr.Conflict(MessageAlreadyReviewed)

// Scores holds the five ratings of a review.
type Scores struct {
	Overall    int16 `json:"overall_score"`
	Easiness   int16 `json:"easiness_score"`
	Interest   int16 `json:"interest_score"`
	Usefulness int16 `json:"usefulness_score"`
	Teaching   int16 `json:"teaching_score"`
}

// Review is one student's review of one course.
type Review struct {
	ID        int64 `json:"id"`
	StudentID int64 `json:"student_id"`
	CourseID  int64 `json:"course_id"`

	// StudentName and CourseName are joined in for listings.
	StudentName string `json:"student_name"`
	CourseName  string `json:"course_name"`

	Scores
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission is the input of a new review.
type Submission struct {
	Scores
	Comment string
}
