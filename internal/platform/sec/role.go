// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "github.com/taibuivan/rmc/internal/platform/constants"

// # User Roles

// Role tags the kind of account a session belongs to.
type Role string

const (
	// RoleStudent is a registered student who reviews courses.
	RoleStudent Role = "student"

	// RoleStaff manages courses and reads aggregate statistics.
	RoleStaff Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleStaff
}

// HomePath returns the landing page a freshly logged-in user is sent to.
func (r Role) HomePath() string {
	if r == RoleStaff {
		return constants.StaffHomePath
	}
	return constants.StudentHomePath
}
