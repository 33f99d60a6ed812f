package spam

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/ringbook/ringbook/internal/notification"
	"github.com/ringbook/ringbook/internal/phone"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (n *recordingNotifier) Send(_ context.Context, m notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, m)
	return nil
}

func newTestService(notifier notification.Notifier, threshold int) *Service {
	return NewService(NewMemoryStore(), phone.NewNormalizer("91"), notifier, threshold)
}

func TestMarkIsIdempotent(t *testing.T) {
	svc := newTestService(nil, 0)
	ctx := context.Background()
	reporter := uuid.New().String()

	first, err := svc.Mark(ctx, reporter, "+919999999999")
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if first.AlreadyMarked {
		t.Fatalf("first mark reported as duplicate")
	}

	second, err := svc.Mark(ctx, reporter, "9999999999")
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if !second.AlreadyMarked {
		t.Fatalf("second mark not reported as duplicate")
	}

	count, err := svc.Count(ctx, "+919999999999")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1 after duplicate mark, got %d", count)
	}
}

func TestAggregateCountsDistinctReporters(t *testing.T) {
	svc := newTestService(nil, 0)
	ctx := context.Background()

	const reporters = 5
	ids := make([]string, reporters)
	for i := range ids {
		ids[i] = uuid.New().String()
		if _, err := svc.Mark(ctx, ids[i], "+919999999999"); err != nil {
			t.Fatalf("mark %d: %v", i, err)
		}
	}

	// A few of them try again; the count must not move.
	for _, id := range ids[:3] {
		out, err := svc.Mark(ctx, id, "+919999999999")
		if err != nil {
			t.Fatalf("re-mark: %v", err)
		}
		if !out.AlreadyMarked {
			t.Fatalf("re-mark not treated as duplicate")
		}
	}

	count, err := svc.Count(ctx, "+919999999999")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != reporters {
		t.Fatalf("expected count %d, got %d", reporters, count)
	}
}

func TestCountIsZeroForUnreportedPhone(t *testing.T) {
	svc := newTestService(nil, 0)

	count, err := svc.Count(context.Background(), "+911234567890")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}
}

func TestMarkRejectsInvalidPhone(t *testing.T) {
	svc := newTestService(nil, 0)

	if _, err := svc.Mark(context.Background(), uuid.New().String(), "not-a-number"); !errors.Is(err, phone.ErrInvalidNumber) {
		t.Fatalf("expected ErrInvalidNumber, got %v", err)
	}
}

func TestAlertFiresOnceAtThreshold(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestService(notifier, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Mark(ctx, uuid.New().String(), "+919999999999"); err != nil {
			t.Fatalf("mark %d: %v", i, err)
		}
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.messages) != 1 {
		t.Fatalf("expected exactly one alert, got %d", len(notifier.messages))
	}
	if notifier.messages[0].Kind != notification.KindSpamAlert {
		t.Fatalf("unexpected notification kind %s", notifier.messages[0].Kind)
	}
}

func TestConcurrentMarksDoNotLoseUpdates(t *testing.T) {
	svc := newTestService(nil, 0)
	ctx := context.Background()

	const reporters = 32
	var wg sync.WaitGroup
	errs := make(chan error, reporters)
	for i := 0; i < reporters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Mark(ctx, uuid.New().String(), "+919999999999")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("mark: %v", err)
		}
	}

	count, err := svc.Count(ctx, "+919999999999")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != reporters {
		t.Fatalf("expected %d, got %d", reporters, count)
	}
}
