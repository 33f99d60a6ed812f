package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ringbook/ringbook/internal/phone"
)

// ErrNameRequired indicates an entry with a blank contact name.
var ErrNameRequired = errors.New("contact name is required")

// Service manages an owner's address book.
type Service struct {
	repo   Repository
	phones phone.Normalizer
}

// NewService builds a contact service instance.
func NewService(repo Repository, phones phone.Normalizer) *Service {
	return &Service{repo: repo, phones: phones}
}

// Add saves a contact in the owner's address book. The number is
// canonicalized first so the same person saved in different input forms still
// collapses onto one entry.
func (s *Service) Add(ctx context.Context, ownerID, rawPhone, name string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrNameRequired
	}

	canonical, err := s.phones.Canonicalize(rawPhone)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		ContactPhone: canonical,
		ContactName:  name,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Remove deletes the owner's entry for the given number.
func (s *Service) Remove(ctx context.Context, ownerID, rawPhone string) error {
	canonical, err := s.phones.Canonicalize(rawPhone)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, ownerID, canonical)
}

// List returns the owner's address book in creation order.
func (s *Service) List(ctx context.Context, ownerID string) ([]Entry, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
