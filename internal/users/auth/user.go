// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements login, logout and registration for students and staff.

It defines the two account entities and the flows that turn valid credentials
into a session record under the "info" key.

# Architecture

  - Entities: [Student] and [Staff], stored in separate tables.
  - Service: credential checks and enrolment.
  - Handler: the login, registration and captcha pages.
*/
package auth

import (
	"time"

	"github.com/taibuivan/rmc/internal/platform/sec"
	"github.com/taibuivan/rmc/internal/platform/session"
)

// # Domain Entities

// Gender codes shared by students and staff.
const (
	GenderMale   int16 = 1
	GenderFemale int16 = 2
)

// Student is a registered student account.
type Student struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	PasswordHash    string    `json:"-"`
	Gender          int16     `json:"gender"`
	Age             int       `json:"age"`
	EntryDate       time.Time `json:"entry_date"`
	DegreeProgramme string    `json:"degree_programme"`
}

// Record returns the session identity of the student.
func (student *Student) Record() session.Record {
	return session.Record{ID: student.ID, Name: student.Name, Email: student.Email, Role: sec.RoleStudent}
}

// Staff is an administrator account.
type Staff struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Gender       int16  `json:"gender"`
}

// Record returns the session identity of the staff member.
func (staff *Staff) Record() session.Record {
	return session.Record{ID: staff.ID, Name: staff.Name, Email: staff.Email, Role: sec.RoleStaff}
}

// # Field Identifiers

// Form field names, shared by validation errors and templates.
const (
	FieldEmail            = "email"
	FieldName             = "name"
	FieldPassword         = "password"
	FieldConfirmPassword  = "confirm_password"
	FieldGender           = "gender"
	FieldAge              = "age"
	FieldEntryDate        = "entry_date"
	FieldDegreeProgramme  = "degree_programme"
	FieldVerificationCode = "verification_code"
)
