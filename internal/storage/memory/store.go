// Package memory provides an in-process Store used for local development and tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/employee-be/internal/models"
	"github.com/hongminglow/employee-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps accounts and employees in maps guarded by a single mutex.
// Unique constraints mirror the database backends.
type Store struct {
	mu        sync.RWMutex
	seq       int64
	accounts  map[string]models.Account
	employees map[string]models.Employee
	now       func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]models.Account),
		employees: make(map[string]models.Employee),
		now:       time.Now,
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() {}

// nextTime returns a strictly increasing timestamp so creation order is stable
// even when the clock does not advance between calls.
func (s *Store) nextTime() time.Time {
	s.seq++
	return s.now().UTC().Add(time.Duration(s.seq) * time.Nanosecond)
}

func (s *Store) nextID() string {
	return strconv.FormatInt(s.seq, 10)
}

func (s *Store) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Username == account.Username || existing.Email == account.Email {
			return models.Account{}, storage.ErrAlreadyExists
		}
	}

	now := s.nextTime()
	account.ID = s.nextID()
	account.CreatedAt = now
	account.UpdatedAt = now
	s.accounts[account.ID] = account
	return account, nil
}

func (s *Store) FindAccountByIdentifier(_ context.Context, identifier string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.Username == identifier || a.Email == identifier {
			return a, nil
		}
	}
	return models.Account{}, storage.ErrNotFound
}

func (s *Store) AccountExists(_ context.Context, username, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateEmployee(_ context.Context, employee models.Employee) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(employee.Email, "") {
		return models.Employee{}, storage.ErrAlreadyExists
	}

	now := s.nextTime()
	employee.ID = s.nextID()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	s.employees[employee.ID] = employee
	return employee, nil
}

func (s *Store) FindEmployeeByID(_ context.Context, id string) (models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return models.Employee{}, storage.ErrNotFound
	}
	return e, nil
}

func (s *Store) EmployeeEmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emailTakenLocked(email, excludeID), nil
}

func (s *Store) emailTakenLocked(email, excludeID string) bool {
	for id, e := range s.employees {
		if id != excludeID && e.Email == email {
			return true
		}
	}
	return false
}

func (s *Store) ListEmployees(_ context.Context, filter storage.EmployeeFilter) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if filter.Designation != "" && !strings.EqualFold(e.Designation, filter.Designation) {
			continue
		}
		if filter.Department != "" && !strings.EqualFold(e.Department, filter.Department) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateEmployee(_ context.Context, id string, patch storage.EmployeePatch) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return models.Employee{}, storage.ErrNotFound
	}
	if patch.Email != nil && s.emailTakenLocked(*patch.Email, id) {
		return models.Employee{}, storage.ErrAlreadyExists
	}

	patch.Apply(&e)
	e.UpdatedAt = s.nextTime()
	s.employees[id] = e
	return e, nil
}

func (s *Store) DeleteEmployee(_ context.Context, id string) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return models.Employee{}, storage.ErrNotFound
	}
	delete(s.employees, id)
	return e, nil
}
