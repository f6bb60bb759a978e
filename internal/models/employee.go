package models

import "time"

// Gender values accepted for an employee.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// MinSalary is the lowest salary an employee record may carry.
const MinSalary = 1000

// Employee is the stored employee record.
type Employee struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Gender        string
	Designation   string
	Salary        float64
	DateOfJoining time.Time
	Department    string
	EmployeePhoto string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
