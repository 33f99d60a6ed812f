package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ringbook/ringbook/internal/config"
	"github.com/ringbook/ringbook/internal/identity"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:       "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
}

func seedUser(t *testing.T, repo identity.Repository) identity.User {
	t.Helper()
	user := identity.User{
		ID:        uuid.New().String(),
		Phone:     "+919876543210",
		Name:      "Ramesh",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLoginAndVerify(t *testing.T) {
	repo := identity.NewMemoryRepository()
	svc := NewService(testConfig(), repo)
	user := seedUser(t, repo)

	pair, err := svc.Login(user)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("expected subject %s, got %s", user.ID, claims.Subject)
	}
	if claims.Phone != user.Phone {
		t.Fatalf("expected phone in claims, got %s", claims.Phone)
	}
}

func TestVerifyRejectsRefreshSecret(t *testing.T) {
	repo := identity.NewMemoryRepository()
	svc := NewService(testConfig(), repo)
	user := seedUser(t, repo)

	pair, err := svc.Login(user)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Refresh tokens are signed with a different secret and must not pass as
	// access tokens.
	if _, err := svc.Verify(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshHonorsTokenVersion(t *testing.T) {
	repo := identity.NewMemoryRepository()
	svc := NewService(testConfig(), repo)
	user := seedUser(t, repo)
	ctx := context.Background()

	pair, err := svc.Login(user)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, _, err := svc.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("refresh before logout: %v", err)
	}

	if err := svc.Logout(ctx, user.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}
