package search

import (
	"context"
	"errors"
	"strings"

	"github.com/ringbook/ringbook/internal/contact"
	"github.com/ringbook/ringbook/internal/identity"
	"github.com/ringbook/ringbook/internal/phone"
)

// ErrEmptyQuery indicates a name search with nothing to match on.
var ErrEmptyQuery = errors.New("search query is required")

// IdentityDirectory is the slice of the identity store the search engine reads.
type IdentityDirectory interface {
	FindByID(ctx context.Context, id string) (identity.User, error)
	FindByPhone(ctx context.Context, phone string) (identity.User, error)
	SearchByNamePrefix(ctx context.Context, query string) ([]identity.User, error)
	SearchByNameSimilarity(ctx context.Context, query string, threshold float64, excludeIDs []string) ([]identity.ScoredUser, error)
}

// ContactDirectory is the slice of the contact store the search engine reads.
type ContactDirectory interface {
	FindByPhone(ctx context.Context, phone string) ([]contact.Entry, error)
	Exists(ctx context.Context, ownerID, contactPhone string) (bool, error)
}

// SpamCounter answers the per-phone aggregate lookup attached to every hit.
type SpamCounter interface {
	Count(ctx context.Context, phone string) (int, error)
}

// Service resolves search queries against registered identities and
// crowd-sourced contact entries, ranks them, and applies the visibility policy.
type Service struct {
	users     IdentityDirectory
	contacts  ContactDirectory
	spam      SpamCounter
	phones    phone.Normalizer
	threshold float64
}

// NewService builds the search engine. threshold is the minimum trigram
// similarity for the fuzzy tier.
func NewService(users IdentityDirectory, contacts ContactDirectory, spam SpamCounter, phones phone.Normalizer, threshold float64) *Service {
	return &Service{users: users, contacts: contacts, spam: spam, phones: phones, threshold: threshold}
}

// ByName searches registered identities by name. Results are two strictly
// ordered tiers: every prefix match first, then fuzzy matches by descending
// similarity. A prefix hit outranks any fuzzy hit no matter the score.
func (s *Service) ByName(ctx context.Context, requesterID, query string) ([]MatchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	prefixTier, err := s.users.SearchByNamePrefix(ctx, query)
	if err != nil {
		return nil, err
	}

	seen := make([]string, 0, len(prefixTier))
	for _, u := range prefixTier {
		seen = append(seen, u.ID)
	}

	fuzzyTier, err := s.users.SearchByNameSimilarity(ctx, query, s.threshold, seen)
	if err != nil {
		return nil, err
	}

	vis := newVisibilityCache(s.contacts, requester.Phone)
	results := make([]MatchResult, 0, len(prefixTier)+len(fuzzyTier))

	for _, u := range prefixTier {
		match, err := s.registeredMatch(ctx, u, vis)
		if err != nil {
			return nil, err
		}
		results = append(results, match)
	}
	for _, scored := range fuzzyTier {
		match, err := s.registeredMatch(ctx, scored.User, vis)
		if err != nil {
			return nil, err
		}
		results = append(results, match)
	}

	return results, nil
}

// ByPhone answers "who is this number". A registered identity is
// authoritative and short-circuits to a single result; otherwise every
// address-book entry for the number is returned in creation order.
func (s *Service) ByPhone(ctx context.Context, requesterID, query string) ([]MatchResult, error) {
	canonical, err := s.phones.Canonicalize(query)
	if err != nil {
		return nil, err
	}

	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByPhone(ctx, canonical)
	switch {
	case err == nil:
		vis := newVisibilityCache(s.contacts, requester.Phone)
		match, err := s.registeredMatch(ctx, owner, vis)
		if err != nil {
			return nil, err
		}
		return []MatchResult{match}, nil
	case errors.Is(err, identity.ErrNotFound):
		// fall through to the crowd-sourced directory
	default:
		return nil, err
	}

	entries, err := s.contacts.FindByPhone(ctx, canonical)
	if err != nil {
		return nil, err
	}

	count, err := s.spam.Count(ctx, canonical)
	if err != nil {
		return nil, err
	}

	results := make([]MatchResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, contactBookMatch{entry: e, spamCount: count}.render())
	}
	return results, nil
}

func (s *Service) registeredMatch(ctx context.Context, user identity.User, vis *visibilityCache) (MatchResult, error) {
	count, err := s.spam.Count(ctx, user.Phone)
	if err != nil {
		return MatchResult{}, err
	}
	visible, err := vis.emailVisible(ctx, user.ID)
	if err != nil {
		return MatchResult{}, err
	}
	return registeredMatch{user: user, spamCount: count, showEmail: visible}.render(), nil
}
