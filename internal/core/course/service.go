// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/taibuivan/rmc/internal/core/programme"
	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/pkg/pagination"
	"github.com/taibuivan/rmc/pkg/slice"
)

// # Service Layer

// Service orchestrates the course catalogue.
type Service struct {
	repo       Repository
	programmes ProgrammeCatalog
	logger     *slog.Logger
}

// NewService constructs a new course [Service].
func NewService(repo Repository, programmes ProgrammeCatalog, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		programmes: programmes,
		logger:     logger,
	}
}

// # Listings

// Courses exposes every course as a paginated source.
func (service *Service) Courses() pagination.Source[*Summary] {
	return pagination.Funcs[*Summary]{
		CountFunc: service.repo.Count,
		ListFunc:  service.repo.List,
	}
}

// StudentCourses exposes the courses of the student's programme as a paginated source.
func (service *Service) StudentCourses(studentID int64) pagination.Source[*Summary] {
	return pagination.Funcs[*Summary]{
		CountFunc: func(context context.Context) (int, error) {
			return service.repo.CountForStudent(context, studentID)
		},
		ListFunc: func(context context.Context, offset, limit int) ([]*Summary, error) {
			return service.repo.ListForStudent(context, studentID, offset, limit)
		},
	}
}

// Programmes lists the programmes a course may be attached to.
func (service *Service) Programmes(context context.Context) ([]*programme.Programme, error) {
	programmes, err := service.programmes.List(context)
	if err != nil {
		return nil, fmt.Errorf("course_service_list_programmes_failed: %w", err)
	}
	return programmes, nil
}

// # Catalogue Management

// Get retrieves a course with its programmes.
func (service *Service) Get(context context.Context, id int64) (*Course, error) {
	course, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("course_service_get_failed: %w", err)
	}
	return course, nil
}

/*
Create adds a course to the catalogue.

Parameters:
  - context: context.Context
  - input: Input (name and programme IDs)

Returns:
  - *Course: The created course
  - error: A programme field error, or storage failures
*/
func (service *Service) Create(context context.Context, input Input) (*Course, error) {
	course, err := service.build(context, input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, course); err != nil {
		return nil, fmt.Errorf("course_service_create_failed: %w", err)
	}

	service.logger.Info("course_created", slog.Int64("course_id", course.ID), slog.String("name", course.Name))
	return course, nil
}

// Update renames a course and replaces its programmes, with the rules of [Service.Create].
func (service *Service) Update(context context.Context, id int64, input Input) (*Course, error) {
	course, err := service.build(context, input)
	if err != nil {
		return nil, err
	}
	course.ID = id

	if err := service.repo.Update(context, course); err != nil {
		return nil, fmt.Errorf("course_service_update_failed: %w", err)
	}

	service.logger.Info("course_updated", slog.Int64("course_id", id))
	return course, nil
}

// Delete removes a course with its links and reviews.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return fmt.Errorf("course_service_delete_failed: %w", err)
	}

	service.logger.Info("course_deleted", slog.Int64("course_id", id))
	return nil
}

// build checks the programme IDs against the catalogue and resolves their names.
func (service *Service) build(context context.Context, input Input) (*Course, error) {
	programmes, err := service.Programmes(context)
	if err != nil {
		return nil, err
	}

	names := slice.Index(programmes, func(p *programme.Programme) (int64, string) { return p.ID, p.Name })

	ids := slices.Clone(input.ProgrammeIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	course := &Course{Name: input.Name, ProgrammeIDs: ids, ProgrammeNames: make([]string, 0, len(ids))}
	for _, id := range ids {
		name, found := names[id]
		if !found {
			return nil, apperr.Field(FieldProgrammes, MessageUnknownProgramme)
		}
		course.ProgrammeNames = append(course.ProgrammeNames, name)
	}

	return course, nil
}
