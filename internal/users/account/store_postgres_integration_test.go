// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/dberr"
	"github.com/taibuivan/rmc/internal/platform/postgres/pgtest"
	"github.com/taibuivan/rmc/internal/users/account"
	"github.com/taibuivan/rmc/internal/users/auth"
)

// AccountStoreSuite covers both halves of the users schema: the login-side
// repositories in auth and the profile-side repositories in account.
type AccountStoreSuite struct {
	suite.Suite
	database *pgtest.Database

	registry *auth.PostgresStudentRepository
	staff    *auth.PostgresStaffRepository
	students *account.PostgresStudentRepository
	admins   *account.PostgresStaffRepository
}

func (s *AccountStoreSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	s.Require().NoError(err)

	s.database = database
	s.registry = auth.NewStudentRepository(database.Pool)
	s.staff = auth.NewStaffRepository(database.Pool)
	s.students = account.NewStudentRepository(database.Pool)
	s.admins = account.NewStaffRepository(database.Pool)
}

func (s *AccountStoreSuite) TearDownSuite() {
	if s.database != nil {
		s.database.Close()
	}
}

func (s *AccountStoreSuite) SetupTest() {
	s.Require().NoError(s.database.Reset(context.Background()))
}

func (s *AccountStoreSuite) register(email string) *auth.Student {
	student := &auth.Student{
		Email:           email,
		Name:            "Amy",
		PasswordHash:    "hash",
		Gender:          auth.GenderFemale,
		Age:             24,
		EntryDate:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DegreeProgramme: "Software Development MSc",
	}
	s.Require().NoError(s.registry.Create(context.Background(), student))
	return student
}

func (s *AccountStoreSuite) TestStudentRegistration() {
	created := s.register("amy@example.com")

	found, err := s.registry.FindByEmail(context.Background(), "amy@example.com")
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal("Software Development MSc", found.DegreeProgramme)
	s.True(found.EntryDate.Equal(created.EntryDate))

	duplicate := *created
	s.True(apperr.IsCode(s.registry.Create(context.Background(), &duplicate), apperr.CodeConflict))

	_, err = s.registry.FindByEmail(context.Background(), "nobody@example.com")
	s.ErrorIs(err, dberr.ErrNotFound)
}

func (s *AccountStoreSuite) TestUnknownProgrammeIsRejected() {
	student := &auth.Student{
		Email:           "ghost@example.com",
		Name:            "Ghost",
		PasswordHash:    "hash",
		Gender:          auth.GenderMale,
		Age:             30,
		EntryDate:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DegreeProgramme: "Alchemy MSc",
	}
	s.True(apperr.IsCode(s.registry.Create(context.Background(), student), apperr.CodeNotFound))
}

func (s *AccountStoreSuite) TestProfileAndPassword() {
	created := s.register("amy@example.com")

	created.Name = "Amelia"
	created.Age = 25
	s.Require().NoError(s.students.UpdateProfile(context.Background(), created))
	s.Require().NoError(s.students.UpdatePassword(context.Background(), created.ID, "new-hash"))

	found, err := s.students.FindByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal("Amelia", found.Name)
	s.Equal(25, found.Age)
	s.Equal("new-hash", found.PasswordHash)
	s.Equal("amy@example.com", found.Email)

	missing := *created
	missing.ID += 100
	s.True(dberr.IsNotFound(s.students.UpdateProfile(context.Background(), &missing)))
}

func (s *AccountStoreSuite) TestStudentList() {
	amy := s.register("amy@example.com")
	s.register("ben@example.com")

	var courseID int64
	s.Require().NoError(s.database.Pool.QueryRow(context.Background(),
		`INSERT INTO academic.course (name) VALUES ('Algorithms') RETURNING id`).Scan(&courseID))
	_, err := s.database.Pool.Exec(context.Background(), `
		INSERT INTO academic.coursereview
			(studentid, courseid, overallscore, easinessscore, interestscore, usefulnessscore, teachingscore, comment)
		VALUES ($1, $2, 8, 5, 9, 7, 6, 'Solid.')`, amy.ID, courseID)
	s.Require().NoError(err)

	total, err := s.students.Count(context.Background())
	s.Require().NoError(err)
	s.Equal(2, total)

	rows, err := s.students.List(context.Background(), 0, 10)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.True(rows[0].Reviewed)
	s.False(rows[1].Reviewed)
	s.Equal("ben@example.com", rows[1].Email)
}

func (s *AccountStoreSuite) TestStaff() {
	staff := &auth.Staff{Email: "boss@example.com", Name: "Boss", PasswordHash: "hash", Gender: auth.GenderMale}
	s.Require().NoError(s.staff.Create(context.Background(), staff))

	s.Require().NoError(s.admins.UpdatePassword(context.Background(), staff.ID, "new-hash"))

	found, err := s.admins.FindByID(context.Background(), staff.ID)
	s.Require().NoError(err)
	s.Equal("new-hash", found.PasswordHash)

	byEmail, err := s.staff.FindByEmail(context.Background(), "boss@example.com")
	s.Require().NoError(err)
	s.Equal(staff.ID, byEmail.ID)
}

func TestAccountStoreSuite(t *testing.T) {
	suite.Run(t, new(AccountStoreSuite))
}
