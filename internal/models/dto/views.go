package dto

import (
	"time"

	"github.com/hongminglow/employee-be/internal/models"
)

// TimestampLayout renders timestamps as ISO-8601 UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// AccountView is the public shape of an account.
type AccountView struct {
	ID        string  `json:"_id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

// EmployeeView is the public shape of an employee.
type EmployeeView struct {
	ID            string  `json:"_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Gender        string  `json:"gender"`
	Designation   string  `json:"designation"`
	Salary        float64 `json:"salary"`
	DateOfJoining *string `json:"date_of_joining"`
	Department    string  `json:"department"`
	EmployeePhoto string  `json:"employee_photo"`
	CreatedAt     *string `json:"created_at"`
	UpdatedAt     *string `json:"updated_at"`
}

// FormatTimestamp renders t in TimestampLayout, or nil for the zero time.
func FormatTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(TimestampLayout)
	return &s
}

// NewAccountView strips the password hash and formats timestamps.
func NewAccountView(a models.Account) AccountView {
	return AccountView{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: FormatTimestamp(a.CreatedAt),
		UpdatedAt: FormatTimestamp(a.UpdatedAt),
	}
}

// NewEmployeeView formats an employee record for output.
func NewEmployeeView(e models.Employee) EmployeeView {
	return EmployeeView{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Gender:        e.Gender,
		Designation:   e.Designation,
		Salary:        e.Salary,
		DateOfJoining: FormatTimestamp(e.DateOfJoining),
		Department:    e.Department,
		EmployeePhoto: e.EmployeePhoto,
		CreatedAt:     FormatTimestamp(e.CreatedAt),
		UpdatedAt:     FormatTimestamp(e.UpdatedAt),
	}
}

// NewEmployeeViews formats a list; the result is never nil so it encodes as [].
func NewEmployeeViews(list []models.Employee) []EmployeeView {
	out := make([]EmployeeView, 0, len(list))
	for _, e := range list {
		out = append(out, NewEmployeeView(e))
	}
	return out
}
