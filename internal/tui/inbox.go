package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atelierhq/atelier/internal/browser"
	"github.com/atelierhq/atelier/internal/notify"
	"github.com/atelierhq/atelier/pkg/domain"
)

// openWorkshopMsg asks the app to show a workshop detail overlay.
type openWorkshopMsg struct {
	id string
}

// openCertificatesMsg asks the app to switch to the You tab's
// certificate shelf.
type openCertificatesMsg struct{}

type inboxModel struct {
	store  *notify.Store
	poller *notify.Poller
	webURL string
	view   notify.View
	cursor int
	status string
	width  int
	height int
}

func newInboxModel(webURL string) inboxModel {
	return inboxModel{webURL: webURL, view: notify.ViewAll}
}

// attach wires the inbox to the store and poller once identity is known.
func (m *inboxModel) attach(store *notify.Store, poller *notify.Poller) {
	m.store = store
	m.poller = poller
}

// visible returns the notifications for the current view.
func (m inboxModel) visible() []domain.Notification {
	if m.store == nil {
		return nil
	}
	return notify.FilterView(m.store.Snapshot(), m.view)
}

func (m inboxModel) Update(msg tea.Msg) (inboxModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case notify.WriteFailedMsg:
		m.status = "sync failed (" + msg.Op + "), next refresh reconciles"
		return m, nil

	case tea.KeyMsg:
		if m.store == nil {
			return m, nil
		}
		items := m.visible()
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "v":
			m.view = nextView(m.view)
			m.cursor = 0
			m.status = ""
		case "r":
			m.poller.Refresh()
			m.status = "refreshing…"
		case "m":
			m.status = ""
			return m, m.store.MarkAllRead()
		case "d":
			if m.cursor < len(items) {
				cmd := m.store.Delete(items[m.cursor].ID.String())
				if m.cursor > 0 {
					m.cursor--
				}
				return m, cmd
			}
		case "c":
			if m.cursor < len(items) {
				link := items[m.cursor].Meta.MeetingLink
				if link == "" {
					m.status = "nothing to copy"
					return m, nil
				}
				if err := clipboard.WriteAll(link); err != nil {
					m.status = "copy failed"
				} else {
					m.status = "meeting link copied"
				}
			}
		case "enter":
			if m.cursor < len(items) {
				return m.activate(items[m.cursor])
			}
		}
	}
	return m, nil
}

// activate marks the notification read and navigates to its destination.
func (m inboxModel) activate(n domain.Notification) (inboxModel, tea.Cmd) {
	markCmd := m.store.MarkRead(n.ID.String())
	dest := notify.ResolveDestination(n)

	switch {
	case dest.Kind == notify.DestExternal:
		browser.Open(dest.Value) //nolint:errcheck // best-effort browser open
		m.status = "opening meeting link…"
		return m, markCmd

	case strings.HasPrefix(dest.Value, "/workshops/"):
		id := strings.TrimPrefix(dest.Value, "/workshops/")
		return m, tea.Batch(markCmd, func() tea.Msg { return openWorkshopMsg{id: id} })

	case dest.Value == "/profile/certificates":
		return m, tea.Batch(markCmd, func() tea.Msg { return openCertificatesMsg{} })

	default:
		// Forum threads, member profiles and the web inbox live in the
		// browser app.
		browser.Open(m.webURL + dest.Value) //nolint:errcheck // best-effort browser open
		m.status = "opening in browser…"
		return m, markCmd
	}
}

func nextView(v notify.View) notify.View {
	for i, cur := range notify.Views {
		if cur == v {
			return notify.Views[(i+1)%len(notify.Views)]
		}
	}
	return notify.ViewAll
}

func (m inboxModel) View() string {
	if m.store == nil || !m.store.Loaded() {
		return " " + dimStyle.Render("loading inbox...")
	}

	var sb strings.Builder

	// View selector line: all · unread · reminders · certificates
	var selector strings.Builder
	for i, v := range notify.Views {
		if i > 0 {
			selector.WriteString(metaStyle.Render(" · "))
		}
		label := string(v)
		if v == m.view {
			selector.WriteString(accentStyle.Render(label))
		} else {
			selector.WriteString(dimStyle.Render(label))
		}
	}
	if unread := m.store.UnreadCount(); unread > 0 {
		selector.WriteString("   " + unreadDotStyle.Render("●") + dimStyle.Render(fmt.Sprintf(" %d unread", unread)))
	}
	sb.WriteString(" " + selector.String() + "\n")

	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	sb.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	items := m.visible()
	if len(items) == 0 {
		sb.WriteString(" " + dimStyle.Render("nothing here") + "\n")
		return sb.String()
	}
	if fetchErr := m.store.LastErr(); fetchErr != nil {
		sb.WriteString(" " + dimStyle.Render("refresh failed, showing last known inbox") + "\n")
	}

	maxRows := m.height - 4
	if maxRows < 5 {
		maxRows = 10
	}

	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(items) && i < start+maxRows; i++ {
		n := items[i]
		badge := notify.Classify(n)

		dot := " "
		if !n.Read {
			dot = unreadDotStyle.Render("●")
		}

		title := n.Title
		if title == "" {
			title = n.Message
		}
		titleStyle := bandStyle(badge.Band)
		if n.Read {
			titleStyle = dimStyle
		}

		row := fmt.Sprintf(" %s %s  %s  %s",
			dot,
			IconBadge(badge),
			metaStyle.Render(fmt.Sprintf("%8s", formatTime(n.CreatedAt))),
			titleStyle.Render(truncStr(title, m.width-30)),
		)
		if badge.Action != "" {
			row += "  " + accentStyle.Render("["+badge.Action+"]")
		}
		if n.Meta.WorkshopTitle != "" && n.Title == "" {
			row += "  " + goldStyle.Render(truncStr(n.Meta.WorkshopTitle, 30))
		}

		if i == m.cursor {
			pad := m.width - lipgloss.Width(row)
			if pad > 0 {
				row += strings.Repeat(" ", pad)
			}
			row = selectedRowBg.Render(row)
		}
		sb.WriteString(row + "\n")
	}

	if m.status != "" {
		sb.WriteString("\n " + dimStyle.Render(m.status) + "\n")
	}

	return sb.String()
}
