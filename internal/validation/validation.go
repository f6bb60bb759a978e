// Package validation checks operation inputs and converts them into store-ready values.
// Every failure is an apperr BAD_USER_INPUT carrying the message shown to the caller.
package validation

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/hongminglow/employee-be/internal/apperr"
	"github.com/hongminglow/employee-be/internal/models"
	"github.com/hongminglow/employee-be/internal/models/dto"
	"github.com/hongminglow/employee-be/internal/storage"
)

const (
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Credentials is a validated login request.
type Credentials struct {
	Identifier string
	Password   string
}

// Registration is a validated signup request.
type Registration struct {
	Username string
	Email    string
	Password string
}

// EmployeeDraft is a validated create request. Photo is the raw photo value,
// still to be resolved into a stored link.
type EmployeeDraft struct {
	Employee models.Employee
	Photo    string
}

// EmployeeChanges is a validated partial update. Photo is non-nil when the
// caller supplied employee_photo.
type EmployeeChanges struct {
	Patch storage.EmployeePatch
	Photo *string
}

// Login checks a login request. The identifier is the username, or the email when
// no username is given. A blank username does not fall back to the email.
func Login(in dto.LoginInput) (Credentials, error) {
	identifier := in.Username
	if identifier == "" {
		identifier = in.Email
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Credentials{}, apperr.BadInput("username or email is required.")
	}
	if in.Password == "" {
		return Credentials{}, apperr.BadInput("password is required.")
	}
	return Credentials{Identifier: identifier, Password: in.Password}, nil
}

// Signup checks a signup request.
func Signup(in dto.SignupInput) (Registration, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" {
		return Registration{}, apperr.BadInput("username is required.")
	}
	if email == "" {
		return Registration{}, apperr.BadInput("email is required.")
	}
	if !IsEmail(email) {
		return Registration{}, apperr.BadInput("Invalid email.")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return Registration{}, apperr.BadInput("password must be at least 6 characters.")
	}
	if len(in.Password) > maxPasswordBytes {
		return Registration{}, apperr.BadInput("password must be at most 72 bytes.")
	}
	return Registration{Username: username, Email: email, Password: in.Password}, nil
}

// Search checks a search request and returns the store filter.
func Search(in dto.SearchInput) (storage.EmployeeFilter, error) {
	filter := storage.EmployeeFilter{
		Designation: strings.TrimSpace(in.Designation),
		Department:  strings.TrimSpace(in.Department),
	}
	if filter.Designation == "" && filter.Department == "" {
		return storage.EmployeeFilter{}, apperr.BadInput("Provide designation or department.")
	}
	return filter, nil
}

// NewEmployee checks a create request. Checks run in a fixed order and the first failure is returned.
func NewEmployee(in dto.EmployeeInput) (EmployeeDraft, error) {
	e := models.Employee{
		FirstName:   strings.TrimSpace(in.FirstName.Value),
		LastName:    strings.TrimSpace(in.LastName.Value),
		Email:       strings.TrimSpace(in.Email.Value),
		Designation: strings.TrimSpace(in.Designation.Value),
		Department:  strings.TrimSpace(in.Department.Value),
	}

	if e.FirstName == "" {
		return EmployeeDraft{}, apperr.BadInput("first_name is required.")
	}
	if e.LastName == "" {
		return EmployeeDraft{}, apperr.BadInput("last_name is required.")
	}
	if e.Email == "" {
		return EmployeeDraft{}, apperr.BadInput("email is required.")
	}
	if !IsEmail(e.Email) {
		return EmployeeDraft{}, apperr.BadInput("Invalid email.")
	}
	if e.Designation == "" {
		return EmployeeDraft{}, apperr.BadInput("designation is required.")
	}
	if e.Department == "" {
		return EmployeeDraft{}, apperr.BadInput("department is required.")
	}

	salary, err := parseSalary(in.Salary.Value)
	if err != nil {
		return EmployeeDraft{}, err
	}
	e.Salary = salary

	rawDate := strings.TrimSpace(in.DateOfJoining.Value)
	if rawDate == "" {
		return EmployeeDraft{}, apperr.BadInput("date_of_joining is required.")
	}
	if e.DateOfJoining, err = parseDate(rawDate); err != nil {
		return EmployeeDraft{}, err
	}

	if e.Gender, err = parseGender(in.Gender.Value); err != nil {
		return EmployeeDraft{}, err
	}

	return EmployeeDraft{Employee: e, Photo: in.EmployeePhoto.Value}, nil
}

// Changes checks a partial update. Only fields present in the input are staged.
func Changes(in dto.EmployeeInput) (EmployeeChanges, error) {
	var out EmployeeChanges
	var err error

	if out.Patch.FirstName, err = nonEmpty(in.FirstName, "first_name"); err != nil {
		return EmployeeChanges{}, err
	}
	if out.Patch.LastName, err = nonEmpty(in.LastName, "last_name"); err != nil {
		return EmployeeChanges{}, err
	}
	if out.Patch.Email, err = nonEmpty(in.Email, "email"); err != nil {
		return EmployeeChanges{}, err
	}
	if out.Patch.Email != nil && !IsEmail(*out.Patch.Email) {
		return EmployeeChanges{}, apperr.BadInput("Invalid email.")
	}
	if in.Gender.Set {
		gender, err := parseGender(in.Gender.Value)
		if err != nil {
			return EmployeeChanges{}, err
		}
		out.Patch.Gender = &gender
	}
	if out.Patch.Designation, err = nonEmpty(in.Designation, "designation"); err != nil {
		return EmployeeChanges{}, err
	}
	if in.Salary.Set {
		salary, err := parseSalary(in.Salary.Value)
		if err != nil {
			return EmployeeChanges{}, err
		}
		out.Patch.Salary = &salary
	}
	if in.DateOfJoining.Set {
		raw := strings.TrimSpace(in.DateOfJoining.Value)
		if raw == "" {
			return EmployeeChanges{}, apperr.BadInput("date_of_joining cannot be empty.")
		}
		date, err := parseDate(raw)
		if err != nil {
			return EmployeeChanges{}, err
		}
		out.Patch.DateOfJoining = &date
	}
	if out.Patch.Department, err = nonEmpty(in.Department, "department"); err != nil {
		return EmployeeChanges{}, err
	}
	if in.EmployeePhoto.Set {
		photo := in.EmployeePhoto.Value
		out.Photo = &photo
	}
	return out, nil
}

// IsEmail reports whether s is a well-formed email address.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func nonEmpty(f dto.Field[string], name string) (*string, error) {
	if !f.Set {
		return nil, nil
	}
	v := strings.TrimSpace(f.Value)
	if v == "" {
		return nil, apperr.BadInput(name + " cannot be empty.")
	}
	return &v, nil
}

func parseSalary(n dto.Numeric) (float64, error) {
	v, ok := n.Float()
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v < models.MinSalary {
		return 0, apperr.BadInput("salary must be >= 1000.")
	}
	return v, nil
}

func parseGender(raw string) (string, error) {
	g := strings.TrimSpace(raw)
	if g == "" {
		return models.GenderOther, nil
	}
	if !models.ValidGender(g) {
		return "", apperr.BadInput("gender must be Male/Female/Other.")
	}
	return g, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperr.BadInput("date_of_joining must be a valid date.")
}
