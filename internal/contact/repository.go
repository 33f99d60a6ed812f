package contact

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrDuplicateEntry indicates the owner already saved this phone number.
	ErrDuplicateEntry = errors.New("contact already exists")
	// ErrEntryNotFound indicates no entry matches the lookup key.
	ErrEntryNotFound = errors.New("contact not found")
)

// Repository persists per-owner address-book entries.
type Repository interface {
	Create(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, ownerID, contactPhone string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Entry, error)
	// FindByPhone returns entries across all owners pointing at phone, in
	// creation order. This is what turns private address books into a
	// crowd-sourced caller-ID directory.
	FindByPhone(ctx context.Context, phone string) ([]Entry, error)
	// Exists reports whether owner has saved contactPhone. The email
	// visibility policy is built on this single fact.
	Exists(ctx context.Context, ownerID, contactPhone string) (bool, error)
}

// PostgresRepository stores contacts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a contact entry, enforcing one entry per (owner, phone).
func (r *PostgresRepository) Create(ctx context.Context, entry Entry) error {
	entryID, err := uuid.Parse(entry.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(entry.OwnerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO contacts (id, owner_id, contact_phone, contact_name, created_at)
        VALUES ($1, $2, $3, $4, $5)`,
		entryID, ownerID, entry.ContactPhone, entry.ContactName, entry.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

// Delete removes the owner's entry for contactPhone.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, contactPhone string) error {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return ErrEntryNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE owner_id = $1 AND contact_phone = $2`, owner, contactPhone)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ListByOwner returns the owner's address book in creation order.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Entry, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, ErrEntryNotFound
	}
	return r.queryEntries(ctx, `SELECT id, owner_id, contact_phone, contact_name, created_at
        FROM contacts WHERE owner_id = $1 ORDER BY created_at, id`, owner)
}

// FindByPhone returns every owner's entry for phone, in creation order.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) ([]Entry, error) {
	return r.queryEntries(ctx, `SELECT id, owner_id, contact_phone, contact_name, created_at
        FROM contacts WHERE contact_phone = $1 ORDER BY created_at, id`, phone)
}

// Exists reports whether owner has an entry for contactPhone.
func (r *PostgresRepository) Exists(ctx context.Context, ownerID, contactPhone string) (bool, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return false, nil
	}
	var exists bool
	err = r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM contacts WHERE owner_id = $1 AND contact_phone = $2)`,
		owner, contactPhone).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			id        uuid.UUID
			owner     uuid.UUID
			createdAt time.Time
		)
		if err := rows.Scan(&id, &owner, &e.ContactPhone, &e.ContactName, &createdAt); err != nil {
			return nil, err
		}
		e.ID = id.String()
		e.OwnerID = owner.String()
		e.CreatedAt = createdAt.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
