package accounts

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/dmitrijs2005/speechauth/internal/common"
	"github.com/dmitrijs2005/speechauth/internal/server/models"
)

// InMemoryRepository keeps accounts for the lifetime of the process.
// Nothing is persisted, so a restart starts with an empty store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	byKey map[string]*models.Account
	order []string
	now   func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byKey: make(map[string]*models.Account),
		now:   time.Now,
	}
}

// WithClock replaces the time source used for CreatedAt.
func (r *InMemoryRepository) WithClock(now func() time.Time) *InMemoryRepository {
	r.now = now
	return r
}

func (r *InMemoryRepository) Create(ctx context.Context, email, name, passwordHash string) (*models.Account, error) {
	if err := validateNew(email, name, passwordHash); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	account := &models.Account{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    r.now().UTC(),
	}
	r.byKey[email] = account
	r.order = append(r.order, email)

	return clone(account), nil
}

func (r *InMemoryRepository) Find(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byKey[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(account), nil
}

func (r *InMemoryRepository) VerifyCredential(ctx context.Context, email, candidateHash string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byKey[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if subtle.ConstantTimeCompare([]byte(account.PasswordHash), []byte(candidateHash)) != 1 {
		return nil, common.ErrorNotFound
	}
	return clone(account), nil
}

func (r *InMemoryRepository) ListAll(ctx context.Context) ([]*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Account, 0, len(r.order))
	for _, email := range r.order {
		result = append(result, clone(r.byKey[email]))
	}
	return result, nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}

func clone(a *models.Account) *models.Account {
	c := *a
	return &c
}
