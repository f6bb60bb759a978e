package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hongminglow/employee-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// AccountStore captures persistence operations for accounts. Username and
// email are unique; CreatedAt/UpdatedAt are set by the store.
type AccountStore interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	// FindAccountByIdentifier matches identifier against username or email.
	FindAccountByIdentifier(ctx context.Context, identifier string) (models.Account, error)
	// AccountExists reports whether any account already uses username or email.
	AccountExists(ctx context.Context, username, email string) (bool, error)
}

// EmployeeFilter selects employees by case-insensitive exact match. Empty
// fields are ignored; non-empty fields are ANDed.
type EmployeeFilter struct {
	Designation string
	Department  string
}

// EmployeePatch lists the fields to change; nil fields are left untouched.
type EmployeePatch struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Gender        *string
	Designation   *string
	Salary        *float64
	DateOfJoining *time.Time
	Department    *string
	EmployeePhoto *string
}

// Apply copies the patched fields onto e.
func (p EmployeePatch) Apply(e *models.Employee) {
	if p.FirstName != nil {
		e.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		e.LastName = *p.LastName
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Gender != nil {
		e.Gender = *p.Gender
	}
	if p.Designation != nil {
		e.Designation = *p.Designation
	}
	if p.Salary != nil {
		e.Salary = *p.Salary
	}
	if p.DateOfJoining != nil {
		e.DateOfJoining = *p.DateOfJoining
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.EmployeePhoto != nil {
		e.EmployeePhoto = *p.EmployeePhoto
	}
}

// EmployeeStore captures persistence operations for employees. Email is unique.
// Lookups by an identifier the backend cannot parse return ErrNotFound.
type EmployeeStore interface {
	CreateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	FindEmployeeByID(ctx context.Context, id string) (models.Employee, error)
	// EmployeeEmailTaken reports whether an employee other than excludeID uses email.
	EmployeeEmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	// ListEmployees returns matches, most recently created first.
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, patch EmployeePatch) (models.Employee, error)
	// DeleteEmployee removes the record and returns it as it was.
	DeleteEmployee(ctx context.Context, id string) (models.Employee, error)
}

// Store is the full persistence surface used by the service.
type Store interface {
	AccountStore
	EmployeeStore
	Ping(ctx context.Context) error
	Close()
}
