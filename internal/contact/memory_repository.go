package contact

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	entries []Entry // append-only order doubles as creation order
}

// NewMemoryRepository builds an in-memory contact store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.OwnerID == entry.OwnerID && e.ContactPhone == entry.ContactPhone {
			return ErrDuplicateEntry
		}
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, ownerID, contactPhone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.OwnerID == ownerID && e.ContactPhone == contactPhone {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Entry
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Entry
	for _, e := range r.entries {
		if e.ContactPhone == phone {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryRepository) Exists(_ context.Context, ownerID, contactPhone string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.OwnerID == ownerID && e.ContactPhone == contactPhone {
			return true, nil
		}
	}
	return false, nil
}
