package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hongminglow/employee-be/internal/models"
	"github.com/hongminglow/employee-be/internal/storage"
	"github.com/hongminglow/employee-be/internal/storage/postgres/migrations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

const uniqueViolation = "23505"

const accountColumns = `id, username, email, password_hash, created_at, updated_at`

const employeeColumns = `id, first_name, last_name, email, gender, designation, salary,
	date_of_joining, department, employee_photo, created_at, updated_at`

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Store provides Postgres-backed persistence for accounts and employees.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to databaseURL, applies migrations and returns a ready Store.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if err := Migrate(ctx, databaseURL); err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Migrate applies the embedded goose migrations using a short-lived database/sql handle.
func Migrate(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// CreateAccount inserts a new account row.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	const query = `
		INSERT INTO accounts (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + accountColumns
	row := s.pool.QueryRow(ctx, query, account.Username, account.Email, account.PasswordHash)
	created, err := scanAccount(row)
	if err != nil {
		return models.Account{}, mapWriteError(err)
	}
	return created, nil
}

// FindAccountByIdentifier fetches the first account matching the identifier as username or email.
func (s *Store) FindAccountByIdentifier(ctx context.Context, identifier string) (models.Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE username = $1 OR email = $1
		ORDER BY id
		LIMIT 1`
	return scanAccount(s.pool.QueryRow(ctx, query, identifier))
}

// AccountExists reports whether username or email is already registered.
func (s *Store) AccountExists(ctx context.Context, username, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1 OR email = $2)`
	var exists bool
	if err := s.pool.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check account: %w", err)
	}
	return exists, nil
}

// CreateEmployee inserts a new employee row.
func (s *Store) CreateEmployee(ctx context.Context, e models.Employee) (models.Employee, error) {
	const query = `
		INSERT INTO employees (first_name, last_name, email, gender, designation, salary,
			date_of_joining, department, employee_photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + employeeColumns
	row := s.pool.QueryRow(ctx, query,
		e.FirstName, e.LastName, e.Email, e.Gender, e.Designation, e.Salary,
		e.DateOfJoining, e.Department, e.EmployeePhoto)
	created, err := scanEmployee(row)
	if err != nil {
		return models.Employee{}, mapWriteError(err)
	}
	return created, nil
}

// FindEmployeeByID fetches an employee by identifier.
func (s *Store) FindEmployeeByID(ctx context.Context, id string) (models.Employee, error) {
	key, ok := parseID(id)
	if !ok {
		return models.Employee{}, storage.ErrNotFound
	}
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(s.pool.QueryRow(ctx, query, key))
}

// EmployeeEmailTaken reports whether another employee uses email.
func (s *Store) EmployeeEmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	exclude, ok := parseID(excludeID)
	if !ok {
		exclude = 0
	}
	const query = `SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1 AND id <> $2)`
	var taken bool
	if err := s.pool.QueryRow(ctx, query, email, exclude).Scan(&taken); err != nil {
		return false, fmt.Errorf("check employee email: %w", err)
	}
	return taken, nil
}

// ListEmployees returns employees matching filter, newest first.
func (s *Store) ListEmployees(ctx context.Context, filter storage.EmployeeFilter) ([]models.Employee, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Designation != "" {
		args = append(args, filter.Designation)
		conds = append(conds, fmt.Sprintf("lower(designation) = lower($%d)", len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conds = append(conds, fmt.Sprintf("lower(department) = lower($%d)", len(args)))
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	out := make([]models.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

// UpdateEmployee applies patch in a single statement and returns the updated row.
func (s *Store) UpdateEmployee(ctx context.Context, id string, patch storage.EmployeePatch) (models.Employee, error) {
	key, ok := parseID(id)
	if !ok {
		return models.Employee{}, storage.ErrNotFound
	}

	args := []any{key}
	sets := []string{"updated_at = NOW()"}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.FirstName != nil {
		set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		set("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.Gender != nil {
		set("gender", *patch.Gender)
	}
	if patch.Designation != nil {
		set("designation", *patch.Designation)
	}
	if patch.Salary != nil {
		set("salary", *patch.Salary)
	}
	if patch.DateOfJoining != nil {
		set("date_of_joining", *patch.DateOfJoining)
	}
	if patch.Department != nil {
		set("department", *patch.Department)
	}
	if patch.EmployeePhoto != nil {
		set("employee_photo", *patch.EmployeePhoto)
	}

	query := `UPDATE employees SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + employeeColumns
	updated, err := scanEmployee(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Employee{}, mapWriteError(err)
	}
	return updated, nil
}

// DeleteEmployee removes an employee and returns the deleted row.
func (s *Store) DeleteEmployee(ctx context.Context, id string) (models.Employee, error) {
	key, ok := parseID(id)
	if !ok {
		return models.Employee{}, storage.ErrNotFound
	}
	const query = `DELETE FROM employees WHERE id = $1 RETURNING ` + employeeColumns
	return scanEmployee(s.pool.QueryRow(ctx, query, key))
}

func parseID(id string) (int64, bool) {
	key, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || key <= 0 {
		return 0, false
	}
	return key, true
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return storage.ErrAlreadyExists
	}
	return err
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var (
		a  models.Account
		id int64
	)
	if err := row.Scan(&id, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, storage.ErrNotFound
		}
		return models.Account{}, err
	}
	a.ID = strconv.FormatInt(id, 10)
	return a, nil
}

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var (
		e  models.Employee
		id int64
	)
	if err := row.Scan(&id, &e.FirstName, &e.LastName, &e.Email, &e.Gender, &e.Designation, &e.Salary,
		&e.DateOfJoining, &e.Department, &e.EmployeePhoto, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, storage.ErrNotFound
		}
		return models.Employee{}, err
	}
	e.ID = strconv.FormatInt(id, 10)
	return e, nil
}
