package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atelierhq/atelier/internal/browser"
	"github.com/atelierhq/atelier/pkg/client"
	"github.com/atelierhq/atelier/pkg/domain"
)

type certsLoadedMsg struct {
	certs []domain.Certificate
	err   error
}

// youModel shows the member's profile and certificate shelf.
type youModel struct {
	client *client.Client
	me     *domain.Member
	certs  []domain.Certificate
	cursor int
	status string
	err    string
	width  int
	height int
}

func newYouModel(c *client.Client) youModel {
	return youModel{client: c}
}

func (m youModel) Init() tea.Cmd {
	return m.loadCerts()
}

func (m youModel) loadCerts() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		certs, err := c.ListCertificates(context.Background())
		return certsLoadedMsg{certs: certs, err: err}
	}
}

func (m youModel) Update(msg tea.Msg) (youModel, tea.Cmd) {
	switch msg := msg.(type) {
	case meLoadedMsg:
		if msg.err == nil && msg.me != nil {
			m.me = msg.me
		}
		return m, nil

	case certsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.certs = msg.certs
			m.err = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.certs)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "c":
			if m.cursor < len(m.certs) {
				if err := clipboard.WriteAll(m.certs[m.cursor].CredentialID); err != nil {
					m.status = "copy failed"
				} else {
					m.status = "credential ID copied"
				}
			}
		case "o":
			if m.cursor < len(m.certs) && m.certs[m.cursor].VerifyURL != "" {
				browser.Open(m.certs[m.cursor].VerifyURL) //nolint:errcheck // best-effort browser open
				m.status = "opening verification page…"
			}
		case "r":
			return m, m.loadCerts()
		}
	}
	return m, nil
}

func (m youModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("c", "copy id") + "  " +
		helpEntry("o", "verify") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
}

func (m youModel) View() string {
	var sb strings.Builder

	if m.me == nil {
		sb.WriteString(" " + dimStyle.Render("loading profile...") + "\n")
	} else {
		name := m.me.DisplayName
		if name == "" {
			name = m.me.Login
		}
		sb.WriteString(" " + selectedStyle.Render(name))
		if m.me.PrimaryRole != "" {
			sb.WriteString("  " + RoleBadge(m.me.PrimaryRole))
		}
		sb.WriteString("\n")

		parts := []string{}
		if m.me.City != "" {
			parts = append(parts, m.me.City)
		}
		if m.me.Reputation > 0 {
			parts = append(parts, fmt.Sprintf("%d reputation", m.me.Reputation))
		}
		parts = append(parts, "joined "+m.me.JoinedAt.Format("Jan 2006"))
		sb.WriteString(" " + metaStyle.Render(strings.Join(parts, " · ")) + "\n")

		if m.me.Bio != "" {
			sb.WriteString(" " + dimStyle.Render(truncStr(m.me.Bio, m.width-4)) + "\n")
		}
	}

	sb.WriteString("\n " + sectionHeaderStyle.Render("── CERTIFICATES ──") + "\n")

	if m.err != "" {
		sb.WriteString(" " + dimStyle.Render("error: "+m.err) + "\n")
		return sb.String()
	}
	if len(m.certs) == 0 {
		sb.WriteString(" " + dimStyle.Render("complete a workshop to earn your first certificate") + "\n")
		return sb.String()
	}

	for i, cert := range m.certs {
		marker := "  "
		if i == m.cursor {
			marker = accentStyle.Render("> ")
		}
		line := " " + marker + goldStyle.Render("★") + " " + normalStyle.Render(truncStr(cert.WorkshopTitle, 40)) +
			"  " + metaStyle.Render(cert.CredentialID) +
			"  " + dimStyle.Render(cert.IssuedAt.Format("Jan 2, 2006"))
		sb.WriteString(line + "\n")
	}

	if m.status != "" {
		sb.WriteString("\n " + dimStyle.Render(m.status) + "\n")
	}

	return sb.String()
}
