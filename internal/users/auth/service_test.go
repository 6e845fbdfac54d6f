// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/dberr"
	"github.com/taibuivan/rmc/internal/platform/sec"
)

// # Fakes

type fakeStudents struct {
	byEmail   map[string]*Student
	findErr   error
	createErr error
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{byEmail: map[string]*Student{}}
}

func (fake *fakeStudents) FindByEmail(_ context.Context, email string) (*Student, error) {
	if fake.findErr != nil {
		return nil, fake.findErr
	}
	student, found := fake.byEmail[email]
	if !found {
		return nil, dberr.ErrNotFound
	}
	return student, nil
}

func (fake *fakeStudents) Create(_ context.Context, student *Student) error {
	if fake.createErr != nil {
		return fake.createErr
	}
	student.ID = int64(len(fake.byEmail) + 1)
	fake.byEmail[student.Email] = student
	return nil
}

type fakeStaff struct {
	byEmail map[string]*Staff
}

func (fake *fakeStaff) FindByEmail(_ context.Context, email string) (*Staff, error) {
	staff, found := fake.byEmail[email]
	if !found {
		return nil, dberr.ErrNotFound
	}
	return staff, nil
}

func (fake *fakeStaff) Create(_ context.Context, staff *Staff) error {
	staff.ID = int64(len(fake.byEmail) + 1)
	fake.byEmail[staff.Email] = staff
	return nil
}

type fakeProgrammes []string

func (fake fakeProgrammes) Names(context.Context) ([]string, error) { return fake, nil }

func (fake fakeProgrammes) Exists(_ context.Context, name string) (bool, error) {
	for _, candidate := range fake {
		if candidate == name {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(t *testing.T) (*Service, *fakeStudents, *fakeStaff) {
	t.Helper()
	students := newFakeStudents()
	staff := &fakeStaff{byEmail: map[string]*Staff{}}
	return NewService(students, staff, fakeProgrammes{"Data Science MSc"}), students, staff
}

func studentInput() StudentRegistration {
	return StudentRegistration{
		Email:           "amy@example.com",
		Name:            "Amy",
		Password:        "s3cret-pass",
		Gender:          GenderFemale,
		Age:             23,
		EntryDate:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DegreeProgramme: "Data Science MSc",
	}
}

// # Tests

/*
TestRegisterStudent_HashesPassword verifies the stored hash and returned ID.
*/
func TestRegisterStudent_HashesPassword(t *testing.T) {
	service, students, _ := newTestService(t)

	student, err := service.RegisterStudent(context.Background(), studentInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), student.ID)
	stored := students.byEmail["amy@example.com"]
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("s3cret-pass", stored.PasswordHash))
}

/*
TestRegisterStudent_DuplicateEmail reports the email field whichever layer detects it.
*/
func TestRegisterStudent_DuplicateEmail(t *testing.T) {
	service, students, _ := newTestService(t)
	_, err := service.RegisterStudent(context.Background(), studentInput())
	require.NoError(t, err)

	// Found by lookup
	_, err = service.RegisterStudent(context.Background(), studentInput())
	assert.Equal(t, map[string]string{FieldEmail: MessageEmailExists}, apperr.FieldMessages(err))

	// Raced past the lookup and hit the unique index
	students.createErr = apperr.Conflict("Record already exists")
	input := studentInput()
	input.Email = "other@example.com"
	_, err = service.RegisterStudent(context.Background(), input)
	assert.Equal(t, map[string]string{FieldEmail: MessageEmailExists}, apperr.FieldMessages(err))
}

/*
TestRegisterStudent_UnknownProgramme rejects programmes that do not exist.
*/
func TestRegisterStudent_UnknownProgramme(t *testing.T) {
	service, _, _ := newTestService(t)

	input := studentInput()
	input.DegreeProgramme = "Astrology MSc"

	_, err := service.RegisterStudent(context.Background(), input)
	assert.Equal(t, map[string]string{FieldDegreeProgramme: MessageUnknownProgramme}, apperr.FieldMessages(err))
}

/*
TestLoginStudent covers success and both indistinguishable failures.
*/
func TestLoginStudent(t *testing.T) {
	service, _, _ := newTestService(t)
	_, err := service.RegisterStudent(context.Background(), studentInput())
	require.NoError(t, err)

	student, err := service.LoginStudent(context.Background(), "amy@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleStudent, student.Record().Role)

	_, wrongPassword := service.LoginStudent(context.Background(), "amy@example.com", "nope")
	_, unknownEmail := service.LoginStudent(context.Background(), "bob@example.com", "s3cret-pass")

	expected := map[string]string{FieldPassword: MessageBadCredentials}
	assert.Equal(t, expected, apperr.FieldMessages(wrongPassword))
	assert.Equal(t, expected, apperr.FieldMessages(unknownEmail))
}

/*
TestLoginStudent_StorageFailure passes storage errors through instead of blaming credentials.
*/
func TestLoginStudent_StorageFailure(t *testing.T) {
	service, students, _ := newTestService(t)
	students.findErr = apperr.Internal(errors.New("connection refused"))

	_, err := service.LoginStudent(context.Background(), "amy@example.com", "x")
	assert.True(t, apperr.IsCode(err, apperr.CodeInternal))
}

/*
TestStaffFlow registers and logs in a staff member.
*/
func TestStaffFlow(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.RegisterStaff(context.Background(), StaffRegistration{
		Email: "boss@example.com", Name: "Boss", Password: "pa55word", Gender: GenderMale,
	})
	require.NoError(t, err)

	staff, err := service.LoginStaff(context.Background(), "boss@example.com", "pa55word")
	require.NoError(t, err)
	assert.Equal(t, created.ID, staff.ID)
	assert.Equal(t, sec.RoleStaff, staff.Record().Role)

	_, err = service.RegisterStaff(context.Background(), StaffRegistration{
		Email: "boss@example.com", Name: "Again", Password: "pa55word", Gender: GenderMale,
	})
	assert.Equal(t, map[string]string{FieldEmail: MessageEmailExists}, apperr.FieldMessages(err))
}
