package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/notify"
	"github.com/atelierhq/atelier/pkg/client"
	"github.com/atelierhq/atelier/pkg/domain"
)

func newTestInbox(notifs []domain.Notification) inboxModel {
	store := notify.NewStore(client.New("http://127.0.0.1:0", "tok"), "u7", nil)
	store.ApplyFetch(store.BeginFetch(), notifs, nil)
	m := newInboxModel("https://atelier.community")
	m.attach(store, nil)
	m.width = 80
	m.height = 24
	return m
}

func makeNotification(typ domain.NotificationType, title string, read bool) domain.Notification {
	return domain.Notification{
		ID:         uuid.New(),
		Type:       typ,
		TargetType: domain.TargetWorkshop,
		TargetID:   "w1",
		Title:      title,
		Read:       read,
		CreatedAt:  time.Now(),
	}
}

func TestInboxLoading(t *testing.T) {
	m := newInboxModel("https://atelier.community")
	if !strings.Contains(m.View(), "loading inbox") {
		t.Errorf("expected loading state, got:\n%s", m.View())
	}
}

func TestInboxRendersNotifications(t *testing.T) {
	m := newTestInbox([]domain.Notification{
		makeNotification(domain.TypeStartingNow, "Letterpress is starting", false),
		makeNotification(domain.TypeCertificateIssued, "Certificate ready", true),
	})

	view := m.View()
	if !strings.Contains(view, "Letterpress is starting") {
		t.Errorf("expected view to contain notification title, got:\n%s", view)
	}
	if !strings.Contains(view, "1 unread") {
		t.Errorf("expected unread counter, got:\n%s", view)
	}
	if !strings.Contains(view, "Join Now") {
		t.Errorf("expected starting-now action label, got:\n%s", view)
	}
}

func TestInboxEmptyView(t *testing.T) {
	m := newTestInbox(nil)
	if !strings.Contains(m.View(), "nothing here") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}

func TestInboxCycleViews(t *testing.T) {
	m := newTestInbox([]domain.Notification{
		makeNotification(domain.TypeReminder24h, "Starts tomorrow", false),
		makeNotification(domain.TypeMention, "Someone mentioned you", true),
	})

	if m.view != notify.ViewAll {
		t.Fatalf("initial view = %q, want all", m.view)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	if m.view != notify.ViewUnread {
		t.Errorf("view after one cycle = %q, want unread", m.view)
	}
	if got := len(m.visible()); got != 1 {
		t.Errorf("unread view shows %d items, want 1", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	if m.view != notify.ViewReminders {
		t.Errorf("view after two cycles = %q, want reminders", m.view)
	}
}

func TestInboxNavigation(t *testing.T) {
	m := newTestInbox([]domain.Notification{
		makeNotification(domain.TypeReminder24h, "first", false),
		makeNotification(domain.TypeReminder1h, "second", false),
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.cursor != 1 {
		t.Errorf("cursor = %d, should clamp at last item", m.cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k, want 0", m.cursor)
	}
}

func TestInboxMarkAllRead(t *testing.T) {
	m := newTestInbox([]domain.Notification{
		makeNotification(domain.TypeReminder24h, "first", false),
		makeNotification(domain.TypeReminder1h, "second", false),
	})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if cmd == nil {
		t.Fatal("expected a write-back command from mark all")
	}
	if got := m.store.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount() = %d after mark all, want 0", got)
	}
}

func TestInboxDelete(t *testing.T) {
	m := newTestInbox([]domain.Notification{
		makeNotification(domain.TypeReminder24h, "first", false),
		makeNotification(domain.TypeReminder1h, "second", false),
	})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd == nil {
		t.Fatal("expected a write-back command from delete")
	}
	if got := len(m.store.Snapshot()); got != 1 {
		t.Errorf("store has %d items after delete, want 1", got)
	}
}

func TestInboxWriteFailureShown(t *testing.T) {
	m := newTestInbox([]domain.Notification{
		makeNotification(domain.TypeReminder24h, "first", false),
	})

	m, _ = m.Update(notify.WriteFailedMsg{Op: "mark read"})
	if !strings.Contains(m.View(), "sync failed") {
		t.Errorf("expected sync failure status, got:\n%s", m.View())
	}
}

func TestInboxFetchErrorKeepsItems(t *testing.T) {
	m := newTestInbox([]domain.Notification{
		makeNotification(domain.TypeReminder24h, "still here", false),
	})
	m.store.ApplyFetch(m.store.BeginFetch(), nil, &client.HTTPError{StatusCode: 500, Message: "boom"})

	view := m.View()
	if !strings.Contains(view, "still here") {
		t.Errorf("expected stale items to remain visible, got:\n%s", view)
	}
	if !strings.Contains(view, "refresh failed") {
		t.Errorf("expected refresh failure notice, got:\n%s", view)
	}
}

func TestInboxEnterOpensWorkshop(t *testing.T) {
	n := makeNotification(domain.TypeEnrollmentConfirmed, "You're in", false)
	m := newTestInbox([]domain.Notification{n})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}
	if got := m.store.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount() = %d after activate, want 0", got)
	}
}
