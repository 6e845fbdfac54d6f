// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package stats aggregates student numbers for the staff charts.
package stats

// Chart titles.
const (
	TitleGender    = "Gender Distribution in SoCS"
	TitleEnrolment = "Number of Students Enrolled"
)

// Chart is the JSON payload drawn by the data visualisation page.
//
// Labels and Values are aligned.
type Chart struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Enrolment is the number of students of one programme.
type Enrolment struct {
	Programme string
	Students  int
}
