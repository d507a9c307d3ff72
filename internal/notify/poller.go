package notify

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atelierhq/atelier/pkg/domain"
)

// fetchTimeout is the maximum time allowed for a single fetch.
const fetchTimeout = 20 * time.Second

// DefaultPollInterval is how often the inbox refreshes when the
// config does not override it.
const DefaultPollInterval = 30 * time.Second

// FetchedMsg is a tea.Msg sent when a background fetch completes.
// The receiver passes it to Store.ApplyFetch, which enforces the
// sequence guard.
type FetchedMsg struct {
	Seq    uint64
	Notifs []domain.Notification
	Err    error
}

// FetchFunc loads the member's notifications from the server.
type FetchFunc func(ctx context.Context) ([]domain.Notification, error)

// Poller refreshes a Store on a fixed interval, with manual refresh
// on demand. Results are delivered to the Bubble Tea runtime as
// FetchedMsg values, never applied directly, so the single-threaded
// update loop stays in charge of state transitions.
type Poller struct {
	store     *Store
	fetch     FetchFunc
	interval  time.Duration
	resultCh  chan tea.Msg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      sync.Mutex
	running bool
}

// NewPoller creates a poller for the given store. A non-positive
// interval falls back to DefaultPollInterval.
func NewPoller(store *Store, fetch FetchFunc, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		store:     store,
		fetch:     fetch,
		interval:  interval,
		resultCh:  make(chan tea.Msg, 4),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns the subscription
// command that waits for the first result. Calling Start twice is a
// no-op returning the subscription again.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if !p.running {
		p.running = true
		go p.loop()
	}
	p.mu.Unlock()

	return p.waitForResult()
}

// Stop halts the polling goroutine. Safe to call once.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	close(p.stopCh)
	p.running = false
}

// Refresh requests an immediate fetch. If one is already pending the
// request is coalesced.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// WaitForNext returns a tea.Cmd that waits for the next fetch result.
// Call it after handling a FetchedMsg to keep the subscription alive.
func (p *Poller) WaitForNext() tea.Cmd {
	return p.waitForResult()
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Initial fetch so the inbox populates without waiting a full tick.
	p.fetchOnce()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetchOnce()
		case <-p.triggerCh:
			p.fetchOnce()
		}
	}
}

func (p *Poller) fetchOnce() {
	seq := p.store.BeginFetch()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	notifs, err := p.fetch(ctx)
	p.sendResult(FetchedMsg{Seq: seq, Notifs: notifs, Err: err})
}

// sendResult delivers a result without blocking; if the channel is
// full the result is dropped and the next tick re-fetches anyway.
func (p *Poller) sendResult(msg tea.Msg) {
	select {
	case p.resultCh <- msg:
	default:
	}
}

func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return msg
	}
}
