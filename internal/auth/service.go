package auth

import (
	"context"
	"time"

	"github.com/ringbook/ringbook/internal/config"
	"github.com/ringbook/ringbook/internal/identity"
)

// Service issues and verifies bearer tokens for registered users.
type Service struct {
	cfg    config.Config
	idRepo identity.Repository
}

// NewService builds the token service.
func NewService(cfg config.Config, idRepo identity.Repository) *Service {
	return &Service{cfg: cfg, idRepo: idRepo}
}

// TokenPair bundles an access/refresh token set.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login issues a token pair for an already-authenticated user.
func (s *Service) Login(user identity.User) (TokenPair, error) {
	now := time.Now()

	access, err := sign(newClaims(user.ID, user.Phone, user.TokenVersion, now, s.cfg.AccessTokenTTL), []byte(s.cfg.JWTSecret))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := sign(newClaims(user.ID, user.Phone, user.TokenVersion, now, s.cfg.RefreshTokenTTL), []byte(s.cfg.RefreshSecret))
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.AccessTokenTTL.Seconds()),
	}, nil
}

// Refresh verifies the refresh token and returns a new access token if the
// user's token version still matches.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, int64, error) {
	claims, err := parse(refreshToken, []byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", 0, ErrInvalidToken
	}

	user, err := s.idRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return "", 0, ErrInvalidToken
	}
	if user.TokenVersion != claims.Ver {
		return "", 0, ErrInvalidToken
	}

	access, err := sign(newClaims(user.ID, user.Phone, user.TokenVersion, time.Now(), s.cfg.AccessTokenTTL), []byte(s.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return access, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}

// Logout bumps the token version so previously issued tokens stop verifying.
func (s *Service) Logout(ctx context.Context, userID string) error {
	user, err := s.idRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.idRepo.UpdateTokenVersion(ctx, user.ID, user.TokenVersion+1)
}

// Verify validates an access token and returns its claims.
func (s *Service) Verify(token string) (Claims, error) {
	return parse(token, []byte(s.cfg.JWTSecret))
}
