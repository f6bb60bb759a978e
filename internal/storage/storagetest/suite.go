// Package storagetest holds behaviour checks shared by every storage.Store backend.
package storagetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/employee-be/internal/models"
	"github.com/hongminglow/employee-be/internal/storage"
)

// Run exercises s against the storage.Store contract. Records are tagged with a
// unique suffix so the suite can run against a database that already holds data.
func Run(t *testing.T, s storage.Store) {
	t.Helper()
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	t.Run("accounts", func(t *testing.T) { accounts(t, s, suffix) })
	t.Run("employees", func(t *testing.T) { employees(t, s, suffix) })
	t.Run("unknown ids", func(t *testing.T) { unknownIDs(t, s) })
}

func accounts(t *testing.T, s storage.Store, suffix string) {
	ctx := context.Background()
	username := "user_" + suffix
	email := username + "@example.com"

	created, err := s.CreateAccount(ctx, models.Account{Username: username, Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, username, created.Username)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = s.CreateAccount(ctx, models.Account{Username: username, Email: "other_" + email, PasswordHash: "hash"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	_, err = s.CreateAccount(ctx, models.Account{Username: "other_" + username, Email: email, PasswordHash: "hash"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	byName, err := s.FindAccountByIdentifier(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)

	byEmail, err := s.FindAccountByIdentifier(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = s.FindAccountByIdentifier(ctx, "missing_"+suffix)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	exists, err := s.AccountExists(ctx, "nobody_"+suffix, email)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = s.AccountExists(ctx, "nobody_"+suffix, "nobody_"+email)
	require.NoError(t, err)
	assert.False(t, exists)
}

func employees(t *testing.T, s storage.Store, suffix string) {
	ctx := context.Background()
	designation := "Engineer " + suffix
	department := "R&D " + suffix

	newEmployee := func(local, designation string) models.Employee {
		return models.Employee{
			FirstName:     "Ada",
			LastName:      "Lovelace",
			Email:         local + "_" + suffix + "@example.com",
			Gender:        models.GenderFemale,
			Designation:   designation,
			Salary:        5000,
			DateOfJoining: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			Department:    department,
		}
	}

	first, err := s.CreateEmployee(ctx, newEmployee("first", designation))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.CreateEmployee(ctx, newEmployee("second", "Manager "+suffix))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = s.CreateEmployee(ctx, newEmployee("first", designation))
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	found, err := s.FindEmployeeByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, found.Email)
	assert.Equal(t, 5000.0, found.Salary)
	assert.True(t, found.DateOfJoining.Equal(first.DateOfJoining))

	byDept, err := s.ListEmployees(ctx, storage.EmployeeFilter{Department: department})
	require.NoError(t, err)
	require.Len(t, byDept, 2)
	assert.Equal(t, second.ID, byDept[0].ID)
	assert.Equal(t, first.ID, byDept[1].ID)

	upper, err := s.ListEmployees(ctx, storage.EmployeeFilter{Designation: "ENGINEER " + suffix, Department: department})
	require.NoError(t, err)
	require.Len(t, upper, 1)
	assert.Equal(t, first.ID, upper[0].ID)

	taken, err := s.EmployeeEmailTaken(ctx, first.Email, first.ID)
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = s.EmployeeEmailTaken(ctx, first.Email, second.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	dup := first.Email
	_, err = s.UpdateEmployee(ctx, second.ID, storage.EmployeePatch{Email: &dup})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	salary := 9000.0
	department2 := "Ops " + suffix
	updated, err := s.UpdateEmployee(ctx, first.ID, storage.EmployeePatch{Salary: &salary, Department: &department2})
	require.NoError(t, err)
	assert.Equal(t, 9000.0, updated.Salary)
	assert.Equal(t, department2, updated.Department)
	assert.Equal(t, first.Email, updated.Email)
	assert.False(t, updated.UpdatedAt.Before(first.UpdatedAt))

	deleted, err := s.DeleteEmployee(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, deleted.ID)
	assert.Equal(t, second.Email, deleted.Email)

	_, err = s.FindEmployeeByID(ctx, second.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.DeleteEmployee(ctx, second.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.DeleteEmployee(ctx, first.ID)
	require.NoError(t, err)
}

func unknownIDs(t *testing.T, s storage.Store) {
	ctx := context.Background()
	salary := 2000.0
	for _, id := range []string{"", "not-an-id", "999999999"} {
		_, err := s.FindEmployeeByID(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotFound, "find %q", id)
		_, err = s.UpdateEmployee(ctx, id, storage.EmployeePatch{Salary: &salary})
		assert.ErrorIs(t, err, storage.ErrNotFound, "update %q", id)
		_, err = s.DeleteEmployee(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotFound, "delete %q", id)
	}
}
