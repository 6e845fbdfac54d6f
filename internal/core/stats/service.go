// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"

	"github.com/taibuivan/rmc/pkg/slice"
)

// Gender codes as stored on student rows.
const (
	genderMale   int16 = 1
	genderFemale int16 = 2
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GenderDistribution returns the male and female student counts.
func (service *Service) GenderDistribution(context context.Context) (*Chart, error) {
	counts, err := service.repo.GenderCounts(context)
	if err != nil {
		return nil, fmt.Errorf("stats_service_gender_failed: %w", err)
	}

	return &Chart{
		Title:  TitleGender,
		Labels: []string{"Male", "Female"},
		Values: []int{counts[genderMale], counts[genderFemale]},
	}, nil
}

// ProgrammeEnrolment returns the number of students of every programme.
func (service *Service) ProgrammeEnrolment(context context.Context) (*Chart, error) {
	enrolment, err := service.repo.Enrolment(context)
	if err != nil {
		return nil, fmt.Errorf("stats_service_enrolment_failed: %w", err)
	}

	return &Chart{
		Title:  TitleEnrolment,
		Labels: slice.Map(enrolment, func(entry Enrolment) string { return entry.Programme }),
		Values: slice.Map(enrolment, func(entry Enrolment) int { return entry.Students }),
	}, nil
}
