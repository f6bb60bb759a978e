// Package service implements the employee directory operations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/employee-be/internal/apperr"
	"github.com/hongminglow/employee-be/internal/auth"
	"github.com/hongminglow/employee-be/internal/logging"
	"github.com/hongminglow/employee-be/internal/media"
	"github.com/hongminglow/employee-be/internal/models"
	"github.com/hongminglow/employee-be/internal/models/dto"
	"github.com/hongminglow/employee-be/internal/storage"
	"github.com/hongminglow/employee-be/internal/validation"
)

const (
	msgInvalidCredentials = "Invalid credentials."
	msgAccountExists      = "username or email already exists."
	msgEmployeeNotFound   = "Employee not found."
	msgEmployeeEmailTaken = "Employee email already exists."
)

// Directory runs account and employee operations against a store. Every
// employee operation requires an identity on the context.
type Directory struct {
	store  storage.Store
	tokens *auth.TokenManager
	photos *media.Resolver
	log    logging.Logger
}

// NewDirectory wires a Directory.
func NewDirectory(store storage.Store, tokens *auth.TokenManager, photos *media.Resolver, log logging.Logger) *Directory {
	if log == nil {
		log = logging.Discard()
	}
	return &Directory{
		store:  store,
		tokens: tokens,
		photos: photos,
		log:    log.With("component", "directory"),
	}
}

// Signup registers an account and returns a signed token for it.
func (d *Directory) Signup(ctx context.Context, in dto.SignupInput) (dto.AuthPayload, error) {
	reg, err := validation.Signup(in)
	if err != nil {
		return dto.AuthPayload{}, err
	}

	exists, err := d.store.AccountExists(ctx, reg.Username, reg.Email)
	if err != nil {
		return dto.AuthPayload{}, fmt.Errorf("check account: %w", err)
	}
	if exists {
		return dto.AuthPayload{}, apperr.BadInput(msgAccountExists)
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return dto.AuthPayload{}, fmt.Errorf("hash password: %w", err)
	}

	account, err := d.store.CreateAccount(ctx, models.Account{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return dto.AuthPayload{}, apperr.BadInput(msgAccountExists)
		}
		return dto.AuthPayload{}, fmt.Errorf("create account: %w", err)
	}

	d.log.Info(ctx, "account created", "account_id", account.ID)
	return d.authPayload(account, "Signup successful")
}

// Login verifies credentials. Unknown identifiers and wrong passwords fail identically.
func (d *Directory) Login(ctx context.Context, in dto.LoginInput) (dto.AuthPayload, error) {
	creds, err := validation.Login(in)
	if err != nil {
		return dto.AuthPayload{}, err
	}

	account, err := d.store.FindAccountByIdentifier(ctx, creds.Identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.AuthPayload{}, apperr.BadInput(msgInvalidCredentials)
		}
		return dto.AuthPayload{}, fmt.Errorf("find account: %w", err)
	}
	if !auth.CheckPassword(account.PasswordHash, creds.Password) {
		return dto.AuthPayload{}, apperr.BadInput(msgInvalidCredentials)
	}

	return d.authPayload(account, "Login successful")
}

func (d *Directory) authPayload(account models.Account, message string) (dto.AuthPayload, error) {
	token, err := d.tokens.Generate(account)
	if err != nil {
		return dto.AuthPayload{}, fmt.Errorf("issue token: %w", err)
	}
	view := dto.NewAccountView(account)
	return dto.AuthPayload{Success: true, Message: message, Token: token, User: &view}, nil
}

// GetAllEmployees lists every employee, newest first.
func (d *Directory) GetAllEmployees(ctx context.Context) (dto.EmployeesPayload, error) {
	if err := auth.RequireAuthenticated(ctx); err != nil {
		return dto.EmployeesPayload{}, err
	}
	return d.list(ctx, storage.EmployeeFilter{})
}

// SearchEmployeeByDesignationOrDepartment lists employees matching the given
// designation and/or department, ignoring case.
func (d *Directory) SearchEmployeeByDesignationOrDepartment(ctx context.Context, in dto.SearchInput) (dto.EmployeesPayload, error) {
	if err := auth.RequireAuthenticated(ctx); err != nil {
		return dto.EmployeesPayload{}, err
	}
	filter, err := validation.Search(in)
	if err != nil {
		return dto.EmployeesPayload{}, err
	}
	return d.list(ctx, filter)
}

func (d *Directory) list(ctx context.Context, filter storage.EmployeeFilter) (dto.EmployeesPayload, error) {
	employees, err := d.store.ListEmployees(ctx, filter)
	if err != nil {
		return dto.EmployeesPayload{}, fmt.Errorf("list employees: %w", err)
	}
	return dto.EmployeesPayload{
		Success:   true,
		Message:   "Employees fetched successfully",
		Employees: dto.NewEmployeeViews(employees),
	}, nil
}

// SearchEmployeeByEid fetches one employee.
func (d *Directory) SearchEmployeeByEid(ctx context.Context, eid string) (dto.EmployeePayload, error) {
	if err := auth.RequireAuthenticated(ctx); err != nil {
		return dto.EmployeePayload{}, err
	}

	employee, err := d.store.FindEmployeeByID(ctx, eid)
	if err != nil {
		return dto.EmployeePayload{}, employeeError("find employee", err)
	}
	return employeePayload(employee, "Employee fetched successfully"), nil
}

// AddEmployee validates and stores a new employee, uploading the photo when needed.
func (d *Directory) AddEmployee(ctx context.Context, in dto.EmployeeInput) (dto.EmployeePayload, error) {
	if err := auth.RequireAuthenticated(ctx); err != nil {
		return dto.EmployeePayload{}, err
	}

	draft, err := validation.NewEmployee(in)
	if err != nil {
		return dto.EmployeePayload{}, err
	}

	taken, err := d.store.EmployeeEmailTaken(ctx, draft.Employee.Email, "")
	if err != nil {
		return dto.EmployeePayload{}, fmt.Errorf("check employee email: %w", err)
	}
	if taken {
		return dto.EmployeePayload{}, apperr.BadInput(msgEmployeeEmailTaken)
	}

	if draft.Employee.EmployeePhoto, err = d.photos.Resolve(ctx, draft.Photo); err != nil {
		return dto.EmployeePayload{}, err
	}

	created, err := d.store.CreateEmployee(ctx, draft.Employee)
	if err != nil {
		return dto.EmployeePayload{}, employeeError("create employee", err)
	}

	d.log.Info(ctx, "employee created", "employee_id", created.ID)
	return employeePayload(created, "Employee created successfully"), nil
}

// UpdateEmployeeByEid applies the fields present in the input and leaves the rest untouched.
func (d *Directory) UpdateEmployeeByEid(ctx context.Context, eid string, in dto.EmployeeInput) (dto.EmployeePayload, error) {
	if err := auth.RequireAuthenticated(ctx); err != nil {
		return dto.EmployeePayload{}, err
	}

	changes, err := validation.Changes(in)
	if err != nil {
		return dto.EmployeePayload{}, err
	}

	if changes.Patch.Email != nil {
		taken, err := d.store.EmployeeEmailTaken(ctx, *changes.Patch.Email, eid)
		if err != nil {
			return dto.EmployeePayload{}, fmt.Errorf("check employee email: %w", err)
		}
		if taken {
			return dto.EmployeePayload{}, apperr.BadInput(msgEmployeeEmailTaken)
		}
	}

	if changes.Photo != nil {
		// No upload for a missing record.
		if _, err := d.store.FindEmployeeByID(ctx, eid); err != nil {
			return dto.EmployeePayload{}, employeeError("find employee", err)
		}
		photo, err := d.photos.Resolve(ctx, *changes.Photo)
		if err != nil {
			return dto.EmployeePayload{}, err
		}
		changes.Patch.EmployeePhoto = &photo
	}

	updated, err := d.store.UpdateEmployee(ctx, eid, changes.Patch)
	if err != nil {
		return dto.EmployeePayload{}, employeeError("update employee", err)
	}

	d.log.Info(ctx, "employee updated", "employee_id", updated.ID)
	return employeePayload(updated, "Employee updated successfully"), nil
}

// DeleteEmployeeByEid removes an employee and reports its identifier.
func (d *Directory) DeleteEmployeeByEid(ctx context.Context, eid string) (dto.DeletePayload, error) {
	if err := auth.RequireAuthenticated(ctx); err != nil {
		return dto.DeletePayload{}, err
	}

	deleted, err := d.store.DeleteEmployee(ctx, eid)
	if err != nil {
		return dto.DeletePayload{}, employeeError("delete employee", err)
	}

	d.log.Info(ctx, "employee deleted", "employee_id", deleted.ID)
	return dto.DeletePayload{
		Success:   true,
		Message:   "Employee deleted successfully",
		DeletedID: deleted.ID,
	}, nil
}

func employeePayload(e models.Employee, message string) dto.EmployeePayload {
	view := dto.NewEmployeeView(e)
	return dto.EmployeePayload{Success: true, Message: message, Employee: &view}
}

// employeeError turns store sentinels into caller-facing errors and wraps the rest.
func employeeError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperr.BadInput(msgEmployeeNotFound)
	case errors.Is(err, storage.ErrAlreadyExists):
		return apperr.BadInput(msgEmployeeEmailTaken)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
