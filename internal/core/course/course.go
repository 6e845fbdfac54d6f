// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package course manages the course catalogue.

Staff create, edit and delete courses and attach each one to the degree
programmes that teach it. Students see the courses of their own programme,
flagged once they have reviewed them.
*/
package course

// Form field names shared by the course form and its errors.
const (
	FieldName       = "name"
	FieldProgrammes = "associated_degree_programmes"
)

// MessageUnknownProgramme is shown when a submitted programme ID does not exist.
const MessageUnknownProgramme = "Select a valid choice. That choice is not one of the available choices."

// Course is a taught course and the programmes it belongs to.
type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// ProgrammeIDs and ProgrammeNames are aligned, in programme ID order.
	ProgrammeIDs   []int64  `json:"programme_ids"`
	ProgrammeNames []string `json:"programme_names"`
}

// HasProgramme reports whether the course is attached to the programme.
func (course *Course) HasProgramme(id int64) bool {
	for _, candidate := range course.ProgrammeIDs {
		if candidate == id {
			return true
		}
	}
	return false
}

// Summary is a listing row: a course plus whether it has been reviewed.
//
// For staff listings Reviewed means "by anyone"; for a student's listing it
// means "by that student".
type Summary struct {
	Course
	Reviewed bool `json:"reviewed"`
}

// Input is the editable part of a course.
type Input struct {
	Name         string
	ProgrammeIDs []int64
}
