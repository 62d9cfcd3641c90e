package notify

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSources struct {
	mu       sync.Mutex
	pending  int
	payments map[string]int
	fail     bool
}

func (f *fakeSources) PendingCount() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return 0, errors.New("backend caído")
	}
	return f.pending, nil
}

func (f *fakeSources) NotificationCount(userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return 0, errors.New("backend caído")
	}
	return f.payments[userID], nil
}

func (f *fakeSources) set(pending int, payments map[string]int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = pending
	f.payments = payments
}

func waitUpdate(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case update, ok := <-ch:
		if !ok {
			t.Fatal("channel closed while waiting for update")
		}
		return update
	case <-time.After(2 * time.Second):
		t.Fatal("no update within 2s")
	}
	return Update{}
}

func TestSubscriberGetsInitialAndChangedCounts(t *testing.T) {
	sources := &fakeSources{pending: 3, payments: map[string]int{"u-1": 1}}
	notifier := New(sources, sources, 10*time.Millisecond)
	notifier.Start()
	defer notifier.Close()

	ch, cancel := notifier.Subscribe("u-1", true)
	defer cancel()

	first := waitUpdate(t, ch)
	if first.ResenasPendientes != 3 || first.PagosPendientes != 1 {
		t.Fatalf("first = %+v", first)
	}

	sources.set(5, map[string]int{"u-1": 0})
	second := waitUpdate(t, ch)
	if second.ResenasPendientes != 5 || second.PagosPendientes != 0 {
		t.Fatalf("second = %+v", second)
	}
}

func TestNonAdminNeverSeesReviewBacklog(t *testing.T) {
	sources := &fakeSources{pending: 9, payments: map[string]int{"u-2": 2}}
	notifier := New(sources, sources, 10*time.Millisecond)
	notifier.Start()
	defer notifier.Close()

	ch, cancel := notifier.Subscribe("u-2", false)
	defer cancel()

	update := waitUpdate(t, ch)
	if update.ResenasPendientes != 0 {
		t.Fatalf("non-admin got review backlog: %+v", update)
	}
	if update.PagosPendientes != 2 {
		t.Fatalf("update = %+v", update)
	}
}

func TestUnchangedCountsAreNotResent(t *testing.T) {
	sources := &fakeSources{pending: 1, payments: map[string]int{}}
	notifier := New(sources, sources, 10*time.Millisecond)
	notifier.Start()
	defer notifier.Close()

	ch, cancel := notifier.Subscribe("u-3", true)
	defer cancel()

	waitUpdate(t, ch)
	select {
	case update := <-ch:
		t.Fatalf("unexpected resend: %+v", update)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCloseStopsEverything(t *testing.T) {
	sources := &fakeSources{payments: map[string]int{}}
	notifier := New(sources, sources, 10*time.Millisecond)
	notifier.Start()

	ch, cancel := notifier.Subscribe("u-4", false)
	waitUpdate(t, ch)

	notifier.Close()
	select {
	case _, open := <-ch:
		if open {
			// drain any buffered update, channel must close next
			if _, stillOpen := <-ch; stillOpen {
				t.Fatal("channel still open after Close")
			}
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after Close")
	}

	// cancel after Close is a no-op
	cancel()

	// subscribing after Close yields a closed channel
	ch2, _ := notifier.Subscribe("u-5", false)
	if _, open := <-ch2; open {
		t.Fatal("subscribe after Close returned live channel")
	}
}

func TestSampleFailuresAreSkipped(t *testing.T) {
	sources := &fakeSources{pending: 2, payments: map[string]int{"u-6": 1}}
	notifier := New(sources, sources, 10*time.Millisecond)
	notifier.Start()
	defer notifier.Close()

	ch, cancel := notifier.Subscribe("u-6", true)
	defer cancel()
	waitUpdate(t, ch)

	sources.mu.Lock()
	sources.fail = true
	sources.mu.Unlock()
	time.Sleep(50 * time.Millisecond)

	// recovery resumes updates
	sources.mu.Lock()
	sources.fail = false
	sources.pending = 7
	sources.mu.Unlock()

	update := waitUpdate(t, ch)
	if update.ResenasPendientes != 7 {
		t.Fatalf("after recovery = %+v", update)
	}
}
