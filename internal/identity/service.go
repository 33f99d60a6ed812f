package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ringbook/ringbook/internal/phone"
)

const minPasswordLength = 8

var (
	// ErrInvalidCredentials indicates the phone/password pair does not match a user.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNameRequired indicates a registration with a blank name.
	ErrNameRequired = errors.New("name is required")
	// ErrPasswordTooShort indicates a registration password below the minimum length.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)
)

// Service manages the registered-user lifecycle.
type Service struct {
	repo   Repository
	phones phone.Normalizer
}

// NewService creates a new identity service.
func NewService(repo Repository, phones phone.Normalizer) *Service {
	return &Service{repo: repo, phones: phones}
}

// Register creates a new user with a hashed password and canonical phone.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	name := strings.TrimSpace(creds.Name)
	if name == "" {
		return User{}, ErrNameRequired
	}
	if len(creds.Password) < minPasswordLength {
		return User{}, ErrPasswordTooShort
	}

	canonical, err := s.phones.Canonicalize(creds.Phone)
	if err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Phone:        canonical,
		Name:         name,
		Email:        strings.TrimSpace(creds.Email),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies a phone/password pair and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, rawPhone, password string) (User, error) {
	canonical, err := s.phones.Canonicalize(rawPhone)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	user, err := s.repo.FindByPhone(ctx, canonical)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// Profile returns the user for the given id.
func (s *Service) Profile(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// Deactivate deletes the account; owned contacts and reports go with it.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
