// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/dberr"
	"github.com/taibuivan/rmc/internal/platform/sec"
	"github.com/taibuivan/rmc/internal/users/auth"
	"github.com/taibuivan/rmc/pkg/pagination"
)

// # Fakes

type fakeStudents struct {
	rows []*StudentSummary
}

func (fake *fakeStudents) find(id int64) *StudentSummary {
	for _, row := range fake.rows {
		if row.ID == id {
			return row
		}
	}
	return nil
}

func (fake *fakeStudents) FindByID(_ context.Context, id int64) (*auth.Student, error) {
	row := fake.find(id)
	if row == nil {
		return nil, dberr.ErrNotFound
	}
	copied := row.Student
	return &copied, nil
}

func (fake *fakeStudents) UpdateProfile(_ context.Context, student *auth.Student) error {
	row := fake.find(student.ID)
	if row == nil {
		return dberr.ErrNotFound
	}
	row.Student = *student
	return nil
}

func (fake *fakeStudents) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	row := fake.find(id)
	if row == nil {
		return dberr.ErrNotFound
	}
	row.PasswordHash = passwordHash
	return nil
}

func (fake *fakeStudents) Count(context.Context) (int, error) { return len(fake.rows), nil }

func (fake *fakeStudents) List(_ context.Context, offset, limit int) ([]*StudentSummary, error) {
	end := min(offset+limit, len(fake.rows))
	if offset >= end {
		return nil, nil
	}
	return fake.rows[offset:end], nil
}

type fakeStaff struct {
	staff map[int64]*auth.Staff
}

func (fake *fakeStaff) FindByID(_ context.Context, id int64) (*auth.Staff, error) {
	staff, found := fake.staff[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	return staff, nil
}

func (fake *fakeStaff) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	staff, found := fake.staff[id]
	if !found {
		return dberr.ErrNotFound
	}
	staff.PasswordHash = passwordHash
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func newTestService(t *testing.T, students int) (*Service, *fakeStudents, *fakeStaff) {
	t.Helper()

	studentRepo := &fakeStudents{}
	hash := mustHash(t, "old-password")
	for id := int64(1); id <= int64(students); id++ {
		studentRepo.rows = append(studentRepo.rows, &StudentSummary{
			Student:  auth.Student{ID: id, Name: "Student", PasswordHash: hash, Gender: auth.GenderMale, Age: 20},
			Reviewed: id%2 == 0,
		})
	}

	staffRepo := &fakeStaff{staff: map[int64]*auth.Staff{
		7: {ID: 7, Name: "Boss", PasswordHash: hash},
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(studentRepo, staffRepo, logger), studentRepo, staffRepo
}

// # Tests

/*
TestUpdateProfile applies the three editable fields.
*/
func TestUpdateProfile(t *testing.T) {
	service, students, _ := newTestService(t, 1)

	updated, err := service.UpdateProfile(context.Background(), 1, ProfileUpdate{Name: "Renamed", Gender: auth.GenderFemale, Age: 31})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, auth.GenderFemale, students.rows[0].Gender)
	assert.Equal(t, 31, students.rows[0].Age)
}

/*
TestUpdateProfile_Missing surfaces NOT_FOUND.
*/
func TestUpdateProfile_Missing(t *testing.T) {
	service, _, _ := newTestService(t, 1)

	_, err := service.UpdateProfile(context.Background(), 99, ProfileUpdate{Name: "x", Gender: 1, Age: 1})
	assert.True(t, dberr.IsNotFound(err))
}

/*
TestResetStudentPassword rejects the current password and stores a new hash otherwise.
*/
func TestResetStudentPassword(t *testing.T) {
	service, students, _ := newTestService(t, 1)

	err := service.ResetStudentPassword(context.Background(), 1, "old-password")
	assert.Equal(t, map[string]string{auth.FieldPassword: MessageSamePassword}, apperr.FieldMessages(err))

	require.NoError(t, service.ResetStudentPassword(context.Background(), 1, "new-password"))
	assert.True(t, sec.CheckPasswordHash("new-password", students.rows[0].PasswordHash))
}

/*
TestResetStaffPassword mirrors the student rules for staff.
*/
func TestResetStaffPassword(t *testing.T) {
	service, _, staff := newTestService(t, 0)

	err := service.ResetStaffPassword(context.Background(), 7, "old-password")
	assert.Equal(t, map[string]string{auth.FieldPassword: MessageSamePassword}, apperr.FieldMessages(err))

	require.NoError(t, service.ResetStaffPassword(context.Background(), 7, "another"))
	assert.True(t, sec.CheckPasswordHash("another", staff.staff[7].PasswordHash))

	name, err := service.StaffName(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Boss", name)
}

/*
TestStudents_Paginates feeds the repository through the paginator.
*/
func TestStudents_Paginates(t *testing.T) {
	service, _, _ := newTestService(t, 23)

	page, err := pagination.New(context.Background(), url.Values{"page": {"3"}}, service.Students(), pagination.Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 3, page.PageCount)
	require.Len(t, page.Rows, 3)
	assert.Equal(t, int64(21), page.Rows[0].ID)
	assert.True(t, page.Rows[1].Reviewed)
}
