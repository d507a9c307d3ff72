package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atelierhq/atelier/internal/browser"
	"github.com/atelierhq/atelier/pkg/client"
	"github.com/atelierhq/atelier/pkg/domain"
)

type workshopLoadedMsg struct {
	workshop *domain.Workshop
	err      error
}

type enrollToggledMsg struct {
	id  string
	err error
}

// detailModel is the workshop detail overlay.
type detailModel struct {
	client   *client.Client
	workshop *domain.Workshop
	closed   bool
	status   string
	err      string
	width    int
}

func newDetailModel(c *client.Client) detailModel {
	return detailModel{client: c}
}

func (m detailModel) load(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		w, err := c.GetWorkshop(context.Background(), id)
		if err != nil {
			return workshopLoadedMsg{err: fmt.Errorf("client.GetWorkshop: %w", err)}
		}
		return workshopLoadedMsg{workshop: w}
	}
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case workshopLoadedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.workshop = msg.workshop
		}
		return m, nil

	case enrollToggledMsg:
		if msg.err != nil {
			m.status = "enrollment failed: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		// Re-fetch so seat counts and waitlist state come from the server.
		return m, m.load(msg.id)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			m.closed = true
		case "e":
			if m.workshop != nil {
				id := m.workshop.ID.String()
				enrolled := m.workshop.IsEnrolled || m.workshop.OnWaitlist
				c := m.client
				return m, func() tea.Msg {
					var err error
					if enrolled {
						err = c.Unenroll(context.Background(), id)
					} else {
						err = c.Enroll(context.Background(), id)
					}
					return enrollToggledMsg{id: id, err: err}
				}
			}
		case "c":
			if m.workshop != nil && m.workshop.MeetingLink != "" {
				if err := clipboard.WriteAll(m.workshop.MeetingLink); err != nil {
					m.status = "copy failed"
				} else {
					m.status = "meeting link copied"
				}
			}
		case "o":
			if m.workshop != nil && m.workshop.MeetingLink != "" {
				browser.Open(m.workshop.MeetingLink) //nolint:errcheck // best-effort browser open
				m.status = "opening meeting link…"
			}
		}
	}
	return m, nil
}

func (m detailModel) View() string {
	if m.err != "" {
		return "\n " + dimStyle.Render("workshop error: "+m.err)
	}
	if m.workshop == nil {
		return "\n " + dimStyle.Render("loading...")
	}

	w := m.workshop
	cardWidth := min(60, m.width-4)
	if cardWidth < 30 {
		cardWidth = 30
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(1, 2).
		Width(cardWidth)

	var sb strings.Builder

	sb.WriteString(selectedStyle.Render(w.Title) + "\n")
	sb.WriteString("   " + dimStyle.Render("hosted by ") + normalStyle.Render(w.HostLogin))
	if w.Topic != "" {
		sb.WriteString(" · " + TopicStyle(w.Topic).Render(w.Topic))
	}
	sb.WriteString("\n")

	sb.WriteString(metaStyle.Render("---") + "\n")
	switch w.Status {
	case domain.WorkshopLive:
		sb.WriteString(liveDotStyle.Bold(true).Render("● LIVE NOW") + "\n")
	case domain.WorkshopCancelled:
		sb.WriteString(statusStyle(w.Status).Render("cancelled") + "\n")
	default:
		when := w.StartsAt.Format("Mon Jan 2, 15:04")
		sb.WriteString(metaStyle.Render(when) + " " + dimStyle.Render("("+formatUntil(w.StartsAt)+")"))
		if w.DurationMin > 0 {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" · %dm", w.DurationMin)))
		}
		sb.WriteString("\n")
	}
	if w.Capacity > 0 {
		seats := fmt.Sprintf("%d of %d seats taken", w.Enrolled, w.Capacity)
		sb.WriteString(metaStyle.Render(seats) + "\n")
	}
	sb.WriteString(metaStyle.Render("---") + "\n")

	if w.Description != "" {
		desc := lipgloss.NewStyle().Width(cardWidth - 4).Render(normalStyle.Render(w.Description))
		sb.WriteString("\n" + desc + "\n")
	}

	// Action hints
	sb.WriteString("\n")
	switch {
	case w.IsEnrolled:
		sb.WriteString(accentStyle.Render("enrolled") + "  " + helpEntry("e", "leave"))
	case w.OnWaitlist:
		sb.WriteString(goldStyle.Render("waitlisted") + "  " + helpEntry("e", "leave"))
	case w.Full():
		sb.WriteString(helpEntry("e", "join waitlist"))
	default:
		sb.WriteString(helpEntry("e", "enroll"))
	}
	if w.MeetingLink != "" {
		sb.WriteString("  " + helpEntry("o", "open link") + "  " + helpEntry("c", "copy link"))
	}
	sb.WriteString("  " + helpEntry("esc", "close"))

	if m.status != "" {
		sb.WriteString("\n" + dimStyle.Render(m.status))
	}

	return "\n" + border.Render(sb.String())
}
