package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ringbook/ringbook/internal/phone"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository(), phone.NewNormalizer("91"))
}

func TestAddCanonicalizesPhone(t *testing.T) {
	svc := newTestService()
	owner := uuid.New().String()

	entry, err := svc.Add(context.Background(), owner, "9876543210", "Bob")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if entry.ContactPhone != "+919876543210" {
		t.Fatalf("expected canonical phone, got %s", entry.ContactPhone)
	}
}

func TestAddDuplicateAcrossInputForms(t *testing.T) {
	svc := newTestService()
	owner := uuid.New().String()
	ctx := context.Background()

	if _, err := svc.Add(ctx, owner, "9876543210", "Bob"); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Same number in a different accepted form must hit the uniqueness rule.
	if _, err := svc.Add(ctx, owner, "+919876543210", "Robert"); !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}
}

func TestDifferentOwnersMaySaveSamePhone(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Add(ctx, uuid.New().String(), "9876543210", "Bob"); err != nil {
		t.Fatalf("first owner: %v", err)
	}
	if _, err := svc.Add(ctx, uuid.New().String(), "9876543210", "Robert"); err != nil {
		t.Fatalf("second owner: %v", err)
	}
}

func TestRemove(t *testing.T) {
	svc := newTestService()
	owner := uuid.New().String()
	ctx := context.Background()

	if _, err := svc.Add(ctx, owner, "9876543210", "Bob"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Remove(ctx, owner, "9876543210"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Remove(ctx, owner, "9876543210"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	entries, err := svc.List(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty book, got %d entries", len(entries))
	}
}
