package notify

import (
	"log"
	"sync"
	"time"
)

// ReviewSource exposes the admin moderation backlog.
type ReviewSource interface {
	PendingCount() (int, error)
}

// PaymentSource exposes per-user pending installments.
type PaymentSource interface {
	NotificationCount(userID string) (int, error)
}

// Update is what badge subscribers receive. ResenasPendientes is only
// populated for admin subscribers.
type Update struct {
	ResenasPendientes int `json:"resenasPendientes"`
	PagosPendientes   int `json:"pagosPendientes"`
}

type subscriber struct {
	userID string
	admin  bool
	ch     chan Update
	last   Update
	primed bool
}

// Notifier owns the single polling ticker for all badge counts and fans
// changed counts out to subscribers. One instance per process; Close stops
// the ticker and closes every subscriber channel.
type Notifier struct {
	reviews  ReviewSource
	payments PaymentSource
	interval time.Duration

	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	done   chan struct{}
	closed bool
}

func New(reviews ReviewSource, payments PaymentSource, interval time.Duration) *Notifier {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Notifier{
		reviews:  reviews,
		payments: payments,
		interval: interval,
		subs:     make(map[*subscriber]struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop. Call once.
func (n *Notifier) Start() {
	go func() {
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n.poll()
			case <-n.done:
				return
			}
		}
	}()
}

// Subscribe registers a badge listener. The first sample is delivered
// immediately; afterwards only changed counts are sent. The returned cancel
// is idempotent and safe after Close.
func (n *Notifier) Subscribe(userID string, admin bool) (<-chan Update, func()) {
	sub := &subscriber{userID: userID, admin: admin, ch: make(chan Update, 4)}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	n.subs[sub] = struct{}{}
	n.mu.Unlock()

	n.notify(sub)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			if _, ok := n.subs[sub]; ok {
				delete(n.subs, sub)
				close(sub.ch)
			}
			n.mu.Unlock()
		})
	}
	return sub.ch, cancel
}

func (n *Notifier) poll() {
	n.mu.Lock()
	subs := make([]*subscriber, 0, len(n.subs))
	for sub := range n.subs {
		subs = append(subs, sub)
	}
	n.mu.Unlock()

	for _, sub := range subs {
		n.notify(sub)
	}
}

func (n *Notifier) sample(sub *subscriber) (Update, error) {
	var update Update
	if sub.admin {
		count, err := n.reviews.PendingCount()
		if err != nil {
			return Update{}, err
		}
		update.ResenasPendientes = count
	}
	count, err := n.payments.NotificationCount(sub.userID)
	if err != nil {
		return Update{}, err
	}
	update.PagosPendientes = count
	return update, nil
}

func (n *Notifier) notify(sub *subscriber) {
	update, err := n.sample(sub)
	if err != nil {
		// skip this tick; next poll retries
		log.Printf("notify: sample failed for %s: %v", sub.userID, err)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.subs[sub]; !ok {
		return
	}
	if sub.primed && update == sub.last {
		return
	}
	sub.last = update
	sub.primed = true
	select {
	case sub.ch <- update:
	default:
		// slow consumer keeps only the freshest updates
	}
}

// Close stops polling and closes all subscriber channels.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	close(n.done)
	for sub := range n.subs {
		close(sub.ch)
		delete(n.subs, sub)
	}
}
