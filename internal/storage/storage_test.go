package storage

import (
	"testing"
	"time"

	"github.com/hongminglow/employee-be/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEmployeePatch_ApplyOnlyTouchesSetFields(t *testing.T) {
	joined := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	e := models.Employee{
		ID:            "1",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Gender:        models.GenderFemale,
		Designation:   "Engineer",
		Salary:        5000,
		DateOfJoining: joined,
		Department:    "R&D",
		EmployeePhoto: "https://x/y.png",
	}
	before := e

	salary := 7500.0
	patch := EmployeePatch{Salary: &salary}
	patch.Apply(&e)

	before.Salary = 7500
	assert.Equal(t, before, e)
}
