// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package course_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/taibuivan/rmc/internal/core/course"
	"github.com/taibuivan/rmc/internal/core/review"
	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/dberr"
	"github.com/taibuivan/rmc/internal/platform/postgres/pgtest"
	"github.com/taibuivan/rmc/internal/users/auth"
)

// Seeded programme IDs, in migration order.
const (
	computingScience int64 = 1
	dataScience      int64 = 2
)

type CourseRepositorySuite struct {
	suite.Suite
	database *pgtest.Database
	repo     *course.PostgresRepository
}

func (s *CourseRepositorySuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	s.Require().NoError(err)

	s.database = database
	s.repo = course.NewPostgresRepository(database.Pool)
}

func (s *CourseRepositorySuite) TearDownSuite() {
	if s.database != nil {
		s.database.Close()
	}
}

func (s *CourseRepositorySuite) SetupTest() {
	s.Require().NoError(s.database.Reset(context.Background()))
}

func (s *CourseRepositorySuite) create(name string, programmes ...int64) *course.Course {
	entry := &course.Course{Name: name, ProgrammeIDs: programmes}
	s.Require().NoError(s.repo.Create(context.Background(), entry))
	return entry
}

func (s *CourseRepositorySuite) enrol(programme string) int64 {
	student := &auth.Student{
		Email:           "amy@example.com",
		Name:            "Amy",
		PasswordHash:    "hash",
		Gender:          auth.GenderFemale,
		Age:             24,
		EntryDate:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DegreeProgramme: programme,
	}
	s.Require().NoError(auth.NewStudentRepository(s.database.Pool).Create(context.Background(), student))
	return student.ID
}

func (s *CourseRepositorySuite) TestCreateAndFind() {
	created := s.create("Algorithms", dataScience, computingScience)
	s.NotZero(created.ID)

	found, err := s.repo.FindByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal("Algorithms", found.Name)
	s.Equal([]int64{computingScience, dataScience}, found.ProgrammeIDs)
	s.Equal([]string{"Computing Science MSc", "Data Science MSc"}, found.ProgrammeNames)

	_, err = s.repo.FindByID(context.Background(), created.ID+100)
	s.ErrorIs(err, dberr.ErrNotFound)
}

func (s *CourseRepositorySuite) TestCreateWithUnknownProgrammeRollsBack() {
	err := s.repo.Create(context.Background(), &course.Course{Name: "Ghost", ProgrammeIDs: []int64{99}})
	s.True(apperr.IsCode(err, apperr.CodeNotFound))

	total, err := s.repo.Count(context.Background())
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *CourseRepositorySuite) TestUpdateReplacesProgrammes() {
	created := s.create("Algorithms", computingScience)

	created.Name = "Advanced Algorithms"
	created.ProgrammeIDs = []int64{dataScience}
	s.Require().NoError(s.repo.Update(context.Background(), created))

	found, err := s.repo.FindByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal("Advanced Algorithms", found.Name)
	s.Equal([]int64{dataScience}, found.ProgrammeIDs)

	missing := &course.Course{ID: created.ID + 100, Name: "Nope", ProgrammeIDs: []int64{dataScience}}
	s.True(dberr.IsNotFound(s.repo.Update(context.Background(), missing)))
}

func (s *CourseRepositorySuite) TestStudentCatalogue() {
	studentID := s.enrol("Data Science MSc")

	statistics := s.create("Statistics", dataScience)
	s.create("Compilers", computingScience)
	databases := s.create("Databases", computingScience, dataScience)

	entry := &review.Review{
		StudentID: studentID,
		CourseID:  databases.ID,
		Scores:    review.Scores{Overall: 8, Easiness: 5, Interest: 9, Usefulness: 7, Teaching: 6},
		Comment:   "Solid.",
	}
	s.Require().NoError(review.NewPostgresRepository(s.database.Pool).Create(context.Background(), entry))

	total, err := s.repo.CountForStudent(context.Background(), studentID)
	s.Require().NoError(err)
	s.Equal(2, total)

	rows, err := s.repo.ListForStudent(context.Background(), studentID, 0, 10)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(statistics.ID, rows[0].ID)
	s.False(rows[0].Reviewed)
	s.Equal(databases.ID, rows[1].ID)
	s.True(rows[1].Reviewed)

	all, err := s.repo.List(context.Background(), 1, 2)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Compilers", all[0].Name)
	s.False(all[0].Reviewed)
	s.True(all[1].Reviewed)
}

func (s *CourseRepositorySuite) TestDeleteCascadesAndIsIdempotent() {
	created := s.create("Algorithms", computingScience)

	s.Require().NoError(s.repo.Delete(context.Background(), created.ID))
	s.Require().NoError(s.repo.Delete(context.Background(), created.ID))

	var links int
	s.Require().NoError(s.database.Pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM academic.courseprogramme WHERE courseid = $1`, created.ID).Scan(&links))
	s.Zero(links)
}

func TestCourseRepositorySuite(t *testing.T) {
	suite.Run(t, new(CourseRepositorySuite))
}
