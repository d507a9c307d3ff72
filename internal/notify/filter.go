package notify

import (
	"strings"

	"github.com/atelierhq/atelier/pkg/domain"
)

// View selects which slice of the inbox is shown.
type View string

const (
	ViewAll          View = "all"
	ViewUnread       View = "unread"
	ViewReminders    View = "reminders"
	ViewCertificates View = "certificates"
)

// Views lists the selectable views in cycle order.
var Views = []View{ViewAll, ViewUnread, ViewReminders, ViewCertificates}

// FilterView returns the notifications matching the view, preserving
// input order. The input is never mutated. Unknown views behave like
// ViewAll so a stale persisted selection still shows everything.
func FilterView(notifs []domain.Notification, v View) []domain.Notification {
	switch v {
	case ViewUnread:
		return keep(notifs, func(n domain.Notification) bool { return !n.Read })
	case ViewReminders:
		return keep(notifs, isReminder)
	case ViewCertificates:
		return keep(notifs, isCertificate)
	default:
		out := make([]domain.Notification, len(notifs))
		copy(out, notifs)
		return out
	}
}

func keep(notifs []domain.Notification, pred func(domain.Notification) bool) []domain.Notification {
	out := make([]domain.Notification, 0, len(notifs))
	for _, n := range notifs {
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}

func isReminder(n domain.Notification) bool {
	return strings.Contains(string(n.Type), "reminder") || n.Type == domain.TypeStartingNow
}

func isCertificate(n domain.Notification) bool {
	return n.Type == domain.TypeCertificateIssued || n.Type == domain.TypeWorkshopCompleted
}
