package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atelierhq/atelier/pkg/client"
	"github.com/atelierhq/atelier/pkg/domain"
)

type workshopsLoadedMsg struct {
	workshops []domain.Workshop
	err       error
}

type workshopsModel struct {
	client    *client.Client
	workshops []domain.Workshop
	loading   bool
	err       string
	cursor    int
	filter    string
	filtering bool
	spinner   spinner.Model
	width     int
	height    int
}

func newWorkshopsModel(c *client.Client) workshopsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle
	return workshopsModel{client: c, loading: true, spinner: sp}
}

func (m workshopsModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

func (m workshopsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		workshops, err := c.ListWorkshops(context.Background())
		return workshopsLoadedMsg{workshops: workshops, err: err}
	}
}

// visible returns workshops matching the topic/title filter.
func (m workshopsModel) visible() []domain.Workshop {
	if m.filter == "" {
		return m.workshops
	}
	needle := strings.ToLower(m.filter)
	out := make([]domain.Workshop, 0, len(m.workshops))
	for _, w := range m.workshops {
		if strings.Contains(strings.ToLower(w.Title), needle) ||
			strings.Contains(strings.ToLower(w.Topic), needle) ||
			strings.Contains(strings.ToLower(w.HostLogin), needle) {
			out = append(out, w)
		}
	}
	return out
}

func (m workshopsModel) Update(msg tea.Msg) (workshopsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case workshopsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.workshops = msg.workshops
			m.err = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
			default:
				m.filter = editRune(m.filter, msg.String())
				m.cursor = 0
			}
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
		case "/":
			m.filtering = true
			m.filter = ""
			m.cursor = 0
		case "r":
			m.loading = true
			return m, tea.Batch(m.load(), m.spinner.Tick)
		case "enter":
			if m.cursor < len(items) {
				id := items[m.cursor].ID.String()
				return m, func() tea.Msg { return openWorkshopMsg{id: id} }
			}
		}
	}
	return m, nil
}

func (m workshopsModel) View() string {
	if m.loading && len(m.workshops) == 0 {
		return " " + m.spinner.View() + dimStyle.Render("loading workshops...")
	}
	if m.err != "" {
		return " " + dimStyle.Render("error: "+m.err)
	}

	var sb strings.Builder

	if m.filtering || m.filter != "" {
		prompt := " " + inputPromptStyle.Render("/ ") + normalStyle.Render(m.filter)
		if m.filtering {
			prompt += accentStyle.Render("█")
			if m.filter == "" {
				prompt += " " + inputPlaceholderStyle.Render("title, topic, or host")
			}
		}
		sb.WriteString(prompt + "\n")
	}

	items := m.visible()
	if len(items) == 0 {
		sb.WriteString(" " + dimStyle.Render("no workshops scheduled") + "\n")
		return sb.String()
	}

	maxRows := m.height - 3
	if maxRows < 5 {
		maxRows = 10
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(items) && i < start+maxRows; i++ {
		w := items[i]

		var when string
		if w.Status == domain.WorkshopLive {
			when = liveDotStyle.Bold(true).Render("  LIVE  ")
		} else {
			when = metaStyle.Render(fmt.Sprintf("%8s", formatUntil(w.StartsAt)))
		}

		title := selectedStyle.Render(truncStr(w.Title, 40))
		host := dimStyle.Render("by " + w.HostLogin)

		chips := ""
		if w.Topic != "" {
			chips += "  " + TopicStyle(w.Topic).Render(w.Topic)
		}
		if w.Capacity > 0 {
			seats := fmt.Sprintf("%d/%d", w.Enrolled, w.Capacity)
			if w.Full() {
				chips += "  " + statusStyle(domain.WorkshopCancelled).Render(seats+" full")
			} else {
				chips += "  " + metaStyle.Render(seats)
			}
		}
		if w.IsEnrolled {
			chips += "  " + accentStyle.Render("enrolled")
		} else if w.OnWaitlist {
			chips += "  " + goldStyle.Render("waitlisted")
		}

		row := " " + when + "  " + title + "  " + host + chips

		if i == m.cursor {
			pad := m.width - lipgloss.Width(row)
			if pad > 0 {
				row += strings.Repeat(" ", pad)
			}
			row = selectedRowBg.Render(row)
		}
		sb.WriteString(row + "\n")
	}

	return sb.String()
}
