package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/atelierhq/atelier/pkg/client"
	"github.com/atelierhq/atelier/pkg/domain"
)

// writeTimeout bounds the fire-and-forget API writes behind the
// optimistic mutations.
const writeTimeout = 10 * time.Second

// WriteFailedMsg is a tea.Msg sent when a background write-back
// (mark read, mark all, delete) fails on the server.
type WriteFailedMsg struct {
	Op  string
	Err error
}

// Store holds the in-memory notification state for one member. Reads
// come from background fetches applied through a sequence guard so a
// slow response can never clobber a newer one; writes mutate locally
// first and reconcile with the server best-effort.
type Store struct {
	mu      sync.Mutex
	items   []domain.Notification
	seq     uint64
	loaded  bool
	lastErr error

	api    *client.Client
	userID string
	log    *zap.Logger
}

// NewStore creates a store backed by the given API client.
func NewStore(api *client.Client, userID string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{api: api, userID: userID, log: log}
}

// BeginFetch registers a new fetch attempt and returns its sequence
// token. Only the fetch holding the latest token may apply its result.
func (s *Store) BeginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// ApplyFetch installs a fetch result. Results carrying a stale token
// are discarded, and errors leave the previous items in place so a
// flaky poll never blanks the inbox. Returns true if the result was
// applied.
func (s *Store) ApplyFetch(seq uint64, notifs []domain.Notification, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.log.Debug("discarding stale fetch", zap.Uint64("seq", seq), zap.Uint64("latest", s.seq))
		return false
	}
	if err != nil {
		s.lastErr = err
		s.log.Warn("notification fetch failed", zap.Error(err))
		return false
	}

	items := make([]domain.Notification, len(notifs))
	copy(items, notifs)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	s.items = items
	s.loaded = true
	s.lastErr = nil
	return true
}

// Snapshot returns a copy of the current notifications, newest first.
func (s *Store) Snapshot() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// UnreadCount returns how many notifications are unread.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// Loaded reports whether at least one fetch has been applied.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// LastErr returns the error from the most recent failed fetch, or nil
// once a fetch succeeds again.
func (s *Store) LastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// MarkRead marks a notification read locally and returns a command
// that reconciles with the server. Marking an already-read or unknown
// ID is a no-op locally but the write-back still runs for unknown IDs
// that a newer fetch may have brought in elsewhere.
func (s *Store) MarkRead(id string) tea.Cmd {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID.String() == id {
			s.items[i].Read = true
			break
		}
	}
	s.mu.Unlock()

	return s.writeBack("mark read", func(ctx context.Context) error {
		return s.api.MarkNotificationRead(ctx, id)
	})
}

// MarkAllRead marks every notification read locally and returns a
// command that reconciles with the server.
func (s *Store) MarkAllRead() tea.Cmd {
	s.mu.Lock()
	for i := range s.items {
		s.items[i].Read = true
	}
	s.mu.Unlock()

	return s.writeBack("mark all read", func(ctx context.Context) error {
		return s.api.MarkAllNotificationsRead(ctx, s.userID)
	})
}

// Delete removes a notification locally and returns a command that
// reconciles with the server.
func (s *Store) Delete(id string) tea.Cmd {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID.String() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	return s.writeBack("delete", func(ctx context.Context) error {
		return s.api.DeleteNotification(ctx, id)
	})
}

// writeBack wraps a server write as a tea.Cmd. The local state has
// already changed; a failure is logged and surfaced as a WriteFailedMsg
// but never rolled back, since the next poll re-syncs from the server.
func (s *Store) writeBack(op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			s.log.Warn("notification write-back failed", zap.String("op", op), zap.Error(err))
			return WriteFailedMsg{Op: op, Err: err}
		}
		return nil
	}
}
