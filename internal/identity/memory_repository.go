package identity

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ringbook/ringbook/internal/trigram"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User // keyed by id
}

// NewMemoryRepository builds an in-memory user store for testing. Fuzzy search
// uses the same trigram scoring pg_trgm applies in the SQL path.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Phone == user.Phone {
			return ErrPhoneTaken
		}
		if user.Email != "" && existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) SearchByNamePrefix(_ context.Context, query string) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefix := strings.ToLower(query)
	var users []User
	for _, user := range r.users {
		if strings.HasPrefix(strings.ToLower(user.Name), prefix) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r *memoryRepository) SearchByNameSimilarity(_ context.Context, query string, threshold float64, excludeIDs []string) ([]ScoredUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	var scored []ScoredUser
	for _, user := range r.users {
		if _, skip := excluded[user.ID]; skip {
			continue
		}
		score := trigram.Similarity(user.Name, query)
		if score > threshold {
			scored = append(scored, ScoredUser{User: user, Similarity: score})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		if scored[i].Name != scored[j].Name {
			return scored[i].Name < scored[j].Name
		}
		return scored[i].ID < scored[j].ID
	})
	return scored, nil
}

func (r *memoryRepository) UpdateTokenVersion(_ context.Context, id string, version int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.TokenVersion = version
	r.users[id] = user
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}
