package spam

import (
	"context"
	"fmt"

	"github.com/ringbook/ringbook/internal/notification"
	"github.com/ringbook/ringbook/internal/phone"
)

// Outcome is what a mark request reports back to the caller.
type Outcome struct {
	TargetPhone   string
	AlreadyMarked bool
}

// Service validates and records spam reports on top of a Store.
type Service struct {
	store          Store
	phones         phone.Normalizer
	notifier       notification.Notifier
	alertThreshold int
}

// NewService constructs a spam service. alertThreshold <= 0 disables alerts.
func NewService(store Store, phones phone.Normalizer, notifier notification.Notifier, alertThreshold int) *Service {
	return &Service{store: store, phones: phones, notifier: notifier, alertThreshold: alertThreshold}
}

// Mark records that reporter considers rawPhone spam. A duplicate report is
// not an error; it comes back with AlreadyMarked set and no side effect.
func (s *Service) Mark(ctx context.Context, reporterID, rawPhone string) (Outcome, error) {
	canonical, err := s.phones.Canonicalize(rawPhone)
	if err != nil {
		return Outcome{}, err
	}

	res, err := s.store.Mark(ctx, reporterID, canonical)
	if err != nil {
		return Outcome{}, err
	}

	if res.Created && s.notifier != nil && s.alertThreshold > 0 && res.ReportCount == s.alertThreshold {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindSpamAlert,
			Destination: canonical,
			Body:        fmt.Sprintf("%s reached %d spam reports", canonical, res.ReportCount),
		})
	}

	return Outcome{TargetPhone: canonical, AlreadyMarked: !res.Created}, nil
}

// Count returns the aggregate report count for a canonical phone number.
func (s *Service) Count(ctx context.Context, canonicalPhone string) (int, error) {
	return s.store.Count(ctx, canonicalPhone)
}
