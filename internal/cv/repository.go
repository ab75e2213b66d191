package cv

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotFound covers both a missing CV and a CV owned by someone else.
// Callers cannot tell the two apart, so ids never leak across accounts.
var ErrNotFound = errors.New("cv not found")

type Repository interface {
	Create(cv CV) (CV, error)
	Update(userID, cvID int, cv CV) (CV, error)
	Delete(userID, cvID int) error
	GetByID(userID, cvID int) (CV, error)
	// ListByUser returns the owner's CVs, newest created first.
	ListByUser(userID int) ([]CV, error)
}

// InMemoryRepository for tests
type InMemoryRepository struct {
	mu     sync.RWMutex
	cvs    []CV
	nextID int
}

func NewInMemoryRepository(seed []CV) *InMemoryRepository {
	repo := &InMemoryRepository{
		cvs:    make([]CV, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, c := range seed {
		repo.cvs = append(repo.cvs, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) Create(cv CV) (CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cv.ID == 0 {
		cv.ID = r.nextID
		r.nextID++
	}

	r.cvs = append(r.cvs, cv)
	return cv, nil
}

func (r *InMemoryRepository) Update(userID, cvID int, cv CV) (CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.cvs {
		if existing.ID == cvID && existing.UserID == userID {
			cv.ID = existing.ID
			cv.UserID = existing.UserID
			cv.CreatedAt = existing.CreatedAt
			r.cvs[i] = cv
			return cv, nil
		}
	}

	return CV{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(userID, cvID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.cvs {
		if existing.ID == cvID && existing.UserID == userID {
			r.cvs = append(r.cvs[:i], r.cvs[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (r *InMemoryRepository) GetByID(userID, cvID int) (CV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.cvs {
		if existing.ID == cvID && existing.UserID == userID {
			return existing, nil
		}
	}

	return CV{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]CV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]CV, 0)
	for _, existing := range r.cvs {
		if existing.UserID == userID {
			out = append(out, existing)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt == out[j].CreatedAt {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})

	return out, nil
}
