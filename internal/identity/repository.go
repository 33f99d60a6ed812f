package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrPhoneTaken indicates the phone number is already registered.
	ErrPhoneTaken = errors.New("phone number already registered")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// Repository persists registered users and answers the name-search queries the
// search engine is built on.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByPhone(ctx context.Context, phone string) (User, error)
	// SearchByNamePrefix returns users whose name starts with query,
	// case-insensitively, ordered by name then id.
	SearchByNamePrefix(ctx context.Context, query string) ([]User, error)
	// SearchByNameSimilarity returns users whose name scores above threshold
	// against query, skipping excludeIDs, ordered by score descending with
	// name then id as tie-breakers.
	SearchByNameSimilarity(ctx context.Context, query string, threshold float64, excludeIDs []string) ([]ScoredUser, error)
	UpdateTokenVersion(ctx context.Context, id string, version int) error
	// Delete removes the user; owned contacts and spam reports cascade.
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL. Fuzzy matching
// relies on the pg_trgm extension's similarity().
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, phone, name, email, password_hash, token_version, created_at`

// Create inserts a new user, mapping unique violations to sentinel errors.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	var email any
	if user.Email != "" {
		email = user.Email
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, phone, name, email, password_hash, token_version, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, user.Phone, user.Name, email, user.PasswordHash, user.TokenVersion, user.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return ErrEmailTaken
			}
			return ErrPhoneTaken
		}
		return err
	}
	return nil
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// FindByPhone fetches a user by canonical phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
	return scanUser(row)
}

// SearchByNamePrefix matches names case-insensitively on the query prefix.
func (r *PostgresRepository) SearchByNamePrefix(ctx context.Context, query string) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users
        WHERE name ILIKE $1 ORDER BY name, id`, escapeLike(query)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SearchByNameSimilarity matches names on trigram similarity above threshold.
func (r *PostgresRepository) SearchByNameSimilarity(ctx context.Context, query string, threshold float64, excludeIDs []string) ([]ScoredUser, error) {
	exclude := make([]uuid.UUID, 0, len(excludeIDs))
	for _, id := range excludeIDs {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		exclude = append(exclude, parsed)
	}

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+`, similarity(name, $1) AS score FROM users
        WHERE similarity(name, $1) > $2 AND NOT (id = ANY($3))
        ORDER BY score DESC, name, id`, query, threshold, exclude)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scored []ScoredUser
	for rows.Next() {
		var (
			s         ScoredUser
			id        uuid.UUID
			email     *string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &s.Phone, &s.Name, &email, &s.PasswordHash, &s.TokenVersion, &createdAt, &s.Similarity); err != nil {
			return nil, err
		}
		s.ID = id.String()
		if email != nil {
			s.Email = *email
		}
		s.CreatedAt = createdAt.UTC()
		scored = append(scored, s)
	}
	return scored, rows.Err()
}

// UpdateTokenVersion bumps the token version used to invalidate issued tokens.
func (r *PostgresRepository) UpdateTokenVersion(ctx context.Context, id string, version int) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET token_version = $1 WHERE id = $2`, version, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user row; contacts and spam reports cascade via FK.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		user      User
		id        uuid.UUID
		email     *string
		createdAt time.Time
	)
	if err := row.Scan(&id, &user.Phone, &user.Name, &email, &user.PasswordHash, &user.TokenVersion, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = id.String()
	if email != nil {
		user.Email = *email
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

// escapeLike neutralizes LIKE metacharacters so user input only ever matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
