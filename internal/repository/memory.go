package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Dan9191/emi-service/internal/models"
)

// MemoryRepository is an in-memory implementation of the service store
type MemoryRepository struct {
	mu           sync.RWMutex
	users        map[int64]models.User
	nextUserID   int64
	calculations map[string]models.Calculation
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[int64]models.User),
		calculations: make(map[string]models.Calculation),
	}
}

// CreateUser stores the user and assigns its id
func (r *MemoryRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("email %s %w", user.Email, ErrAlreadyExists)
		}
	}

	r.nextUserID++
	user.ID = r.nextUserID
	user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	r.users[user.ID] = *user
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *MemoryRepository) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %w", ErrNotFound)
}

// FindUserByID retrieves a user by id
func (r *MemoryRepository) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	return &u, nil
}

// SaveCalculation stores a copy of the snapshot
func (r *MemoryRepository) SaveCalculation(_ context.Context, calc *models.Calculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calculations[calc.ID] = cloneCalculation(calc)
	return nil
}

// FindCalculation returns a copy of the stored snapshot
func (r *MemoryRepository) FindCalculation(_ context.Context, id string) (*models.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calc, ok := r.calculations[id]
	if !ok {
		return nil, fmt.Errorf("calculation %w", ErrNotFound)
	}
	out := cloneCalculation(&calc)
	return &out, nil
}

// DeleteCalculation discards a stored snapshot
func (r *MemoryRepository) DeleteCalculation(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.calculations[id]; !ok {
		return fmt.Errorf("calculation %w", ErrNotFound)
	}
	delete(r.calculations, id)
	return nil
}

// cloneCalculation copies the slices and pointers so callers never share state with the store
func cloneCalculation(calc *models.Calculation) models.Calculation {
	out := *calc
	out.Request = cloneRequest(calc.Request)
	out.Schedule = append([]models.AmortizationRow(nil), calc.Schedule...)
	out.Offers = append([]models.BankOffer(nil), calc.Offers...)
	if calc.Eligibility != nil {
		v := *calc.Eligibility
		out.Eligibility = &v
	}
	if calc.Prepayment != nil {
		v := *calc.Prepayment
		out.Prepayment = &v
	}
	return out
}

func cloneRequest(req models.LoanRequest) models.LoanRequest {
	out := req
	out.MonthlyIncome = cloneFloat(req.MonthlyIncome)
	out.ExistingObligations = cloneFloat(req.ExistingObligations)
	out.PrepaymentAmount = cloneFloat(req.PrepaymentAmount)
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
