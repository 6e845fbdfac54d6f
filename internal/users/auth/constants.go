// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # User Facing Messages

const (
	// MessageWrongCaptcha is shown when the verification code does not match.
	MessageWrongCaptcha = "Wrong verification code"

	// MessageBadCredentials is deliberately identical for unknown emails and wrong passwords.
	MessageBadCredentials = "Incorrect email or password"

	// MessageEmailExists is shown when registering an email that is already taken.
	MessageEmailExists = "This email already exists."

	// MessageUnknownProgramme is shown when the selected degree programme does not exist.
	MessageUnknownProgramme = "Select a valid choice."
)

// # Templates

// Student and staff variants share a template and differ by a flag.
const (
	templateLogin        = "login.tmpl"
	templateRegistration = "registration.tmpl"
)

// entryDateLayout is the HTML date input format.
const entryDateLayout = "2006-01-02"
