package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/atelierhq/atelier/pkg/client"
	"github.com/atelierhq/atelier/pkg/domain"
)

type studioMode int

const (
	studioGate studioMode = iota
	studioList
	studioRequestForm
	studioCreateForm
)

type myWorkshopsLoadedMsg struct {
	workshops []domain.Workshop
	err       error
}

type roleRequestedMsg struct {
	err error
}

type workshopCreatedMsg struct {
	workshop *domain.Workshop
	err      error
}

// studioBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type studioBindings struct {
	role          string
	justification string

	title       string
	description string
	topic       string
	startsAt    string
	durationMin int
	capacity    string
}

// studioModel is the creator workspace: gated behind the
// create-workshops permission, it lists the member's own workshops
// and hosts the schedule and role-request forms.
type studioModel struct {
	client    *client.Client
	guard     roleGuard
	fb        *studioBindings
	form      *huh.Form
	mode      studioMode
	userID    string
	mine      []domain.Workshop
	cursor    int
	requested bool
	status    string
	width     int
	height    int
}

func newStudioModel(c *client.Client) studioModel {
	return studioModel{
		client: c,
		guard:  newRoleGuard(c, []capability{capCreateWorkshops}, guardAnyOf),
		fb:     &studioBindings{durationMin: 60},
	}
}

// setUser records whose studio this is and re-arms the gate.
func (m *studioModel) setUser(userID string) {
	m.userID = userID
	m.guard.setUser(userID)
	m.mode = studioGate
}

func (m studioModel) Init() tea.Cmd {
	switch m.guard.state {
	case guardAllowed:
		return m.loadMine()
	case guardLoading:
		return m.guard.load()
	}
	return nil
}

func (m studioModel) loadMine() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		workshops, err := c.ListMyWorkshops(context.Background())
		return myWorkshopsLoadedMsg{workshops: workshops, err: err}
	}
}

func (m studioModel) editing() bool {
	return m.mode == studioRequestForm || m.mode == studioCreateForm
}

func (m studioModel) Update(msg tea.Msg) (studioModel, tea.Cmd) {
	switch msg := msg.(type) {
	case rolesLoadedMsg:
		m.guard = m.guard.update(msg)
		if m.guard.state == guardAllowed {
			m.mode = studioList
			return m, m.loadMine()
		}
		m.mode = studioGate
		return m, nil

	case myWorkshopsLoadedMsg:
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
		} else {
			m.mine = msg.workshops
			m.status = ""
		}
		return m, nil

	case roleRequestedMsg:
		if msg.err != nil {
			m.status = "request failed: " + msg.err.Error()
		} else {
			m.requested = true
			m.status = ""
		}
		m.mode = studioGate
		return m, nil

	case workshopCreatedMsg:
		if msg.err != nil {
			m.status = "create failed: " + msg.err.Error()
		} else if msg.workshop != nil {
			m.mine = append([]domain.Workshop{*msg.workshop}, m.mine...)
			m.status = "scheduled " + msg.workshop.Title
		}
		m.mode = studioList
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.editing() {
		return m.updateForm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.mode {
		case studioGate:
			if m.guard.state == guardDenied && !m.requested && key.String() == "enter" {
				return m.startRequestForm()
			}
		case studioList:
			switch key.String() {
			case "j", "down":
				if m.cursor < len(m.mine)-1 {
					m.cursor++
				}
			case "k", "up":
				if m.cursor > 0 {
					m.cursor--
				}
			case "n":
				return m.startCreateForm()
			case "r":
				return m, m.loadMine()
			}
		}
	}
	return m, nil
}

func (m studioModel) updateForm(msg tea.Msg) (studioModel, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if m.mode == studioRequestForm {
			return m.submitRoleRequest()
		}
		return m.submitCreate()
	}
	if m.form.State == huh.StateAborted {
		if m.mode == studioRequestForm {
			m.mode = studioGate
		} else {
			m.mode = studioList
		}
		return m, nil
	}
	return m, cmd
}

func (m studioModel) startRequestForm() (studioModel, tea.Cmd) {
	m.fb.role = string(domain.RoleWorkshopCreator)
	m.fb.justification = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Workshop Creator", string(domain.RoleWorkshopCreator)),
					huh.NewOption("Moderator", string(domain.RoleModerator)),
				).
				Value(&m.fb.role),
			huh.NewText().
				Title("Why should we grant it?").
				Placeholder("Tell us about workshops you'd like to host...").
				Value(&m.fb.justification).
				Validate(validateRequired("Justification")),
		),
	).WithWidth(m.formWidth())
	m.mode = studioRequestForm
	return m, m.form.Init()
}

func (m studioModel) startCreateForm() (studioModel, tea.Cmd) {
	m.fb.title = ""
	m.fb.description = ""
	m.fb.topic = ""
	m.fb.startsAt = ""
	m.fb.durationMin = 60
	m.fb.capacity = "20"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What are you teaching?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewSelect[string]().
				Title("Topic").
				Options(
					huh.NewOption("Letterpress", "letterpress"),
					huh.NewOption("Bookbinding", "bookbinding"),
					huh.NewOption("Ceramics", "ceramics"),
					huh.NewOption("Risograph", "risograph"),
					huh.NewOption("Woodcut", "woodcut"),
					huh.NewOption("Weaving", "weaving"),
					huh.NewOption("Typography", "typography"),
					huh.NewOption("General", "general"),
				).
				Value(&m.fb.topic),
			huh.NewInput().
				Title("Starts At").
				Placeholder("YYYY-MM-DD HH:MM").
				Value(&m.fb.startsAt).
				Validate(validateStartTime),
			huh.NewSelect[int]().
				Title("Duration").
				Options(
					huh.NewOption("30 minutes", 30),
					huh.NewOption("60 minutes", 60),
					huh.NewOption("90 minutes", 90),
					huh.NewOption("2 hours", 120),
				).
				Value(&m.fb.durationMin),
			huh.NewInput().
				Title("Capacity").
				Placeholder("0 for unlimited").
				Value(&m.fb.capacity).
				Validate(validateCapacity),
		),
	).WithWidth(m.formWidth())
	m.mode = studioCreateForm
	return m, m.form.Init()
}

func (m studioModel) submitRoleRequest() (studioModel, tea.Cmd) {
	c := m.client
	uid := m.userID
	req := client.RequestRoleRequest{
		Role:          domain.UserRole(m.fb.role),
		Justification: strings.TrimSpace(m.fb.justification),
	}
	m.mode = studioGate
	return m, func() tea.Msg {
		return roleRequestedMsg{err: c.RequestRole(context.Background(), uid, req)}
	}
}

func (m studioModel) submitCreate() (studioModel, tea.Cmd) {
	c := m.client
	startsAt, _ := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(m.fb.startsAt), time.Local) //nolint:errcheck // validated by the form
	capacity := 0
	fmt.Sscanf(strings.TrimSpace(m.fb.capacity), "%d", &capacity) //nolint:errcheck // validated by the form
	req := client.CreateWorkshopRequest{
		Title:       strings.TrimSpace(m.fb.title),
		Description: strings.TrimSpace(m.fb.description),
		Topic:       m.fb.topic,
		StartsAt:    startsAt,
		DurationMin: m.fb.durationMin,
		Capacity:    capacity,
	}
	m.mode = studioList
	return m, func() tea.Msg {
		w, err := c.CreateWorkshop(context.Background(), req)
		return workshopCreatedMsg{workshop: w, err: err}
	}
}

func (m studioModel) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m studioModel) View() string {
	if m.editing() && m.form != nil {
		title := "Schedule a Workshop"
		if m.mode == studioRequestForm {
			title = "Request Studio Access"
		}
		return " " + selectedStyle.Render(title) + "\n\n" + m.form.View()
	}

	switch m.guard.state {
	case guardLoading, guardChecking:
		return " " + dimStyle.Render("checking studio access...")
	case guardDenied:
		var sb strings.Builder
		sb.WriteString(" " + selectedStyle.Render("The studio is for workshop creators.") + "\n\n")
		if m.guard.err != "" {
			sb.WriteString(" " + dimStyle.Render("couldn't verify your roles: "+m.guard.err) + "\n")
			sb.WriteString(" " + dimStyle.Render("try again once you're back online") + "\n")
		} else if m.requested {
			sb.WriteString(" " + accentStyle.Render("request sent") + " " + dimStyle.Render("— a moderator will review it soon") + "\n")
		} else {
			sb.WriteString(" " + dimStyle.Render("press ") + helpKeyStyle.Render("enter") + " " + dimStyle.Render("to request creator access") + "\n")
		}
		if m.status != "" {
			sb.WriteString("\n " + dimStyle.Render(m.status) + "\n")
		}
		return sb.String()
	}

	// Allowed: own workshops + analytics line
	var sb strings.Builder

	if capGranted(m.guard.perms, capViewAnalytics) {
		total := len(m.mine)
		enrolled := 0
		live := 0
		for _, w := range m.mine {
			enrolled += w.Enrolled
			if w.Status == domain.WorkshopLive {
				live++
			}
		}
		analytics := fmt.Sprintf("%d workshops · %d enrollments", total, enrolled)
		if live > 0 {
			analytics += fmt.Sprintf(" · %d live now", live)
		}
		sb.WriteString(" " + goldStyle.Render(analytics) + "\n")
		sepW := m.width - 2
		if sepW < 4 {
			sepW = 4
		}
		sb.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")
	}

	if len(m.mine) == 0 {
		sb.WriteString(" " + dimStyle.Render("you haven't scheduled anything yet — press ") +
			helpKeyStyle.Render("n") + dimStyle.Render(" to plan your first workshop") + "\n")
	}

	for i, w := range m.mine {
		marker := "  "
		if i == m.cursor {
			marker = accentStyle.Render("> ")
		}
		line := " " + marker + statusStyle(w.Status).Render(fmt.Sprintf("%-9s", w.Status)) +
			"  " + selectedStyle.Render(truncStr(w.Title, 40)) +
			"  " + metaStyle.Render(w.StartsAt.Format("Jan 2 15:04"))
		if w.Capacity > 0 {
			line += "  " + dimStyle.Render(fmt.Sprintf("%d/%d", w.Enrolled, w.Capacity))
		}
		sb.WriteString(line + "\n")
	}

	if m.status != "" {
		sb.WriteString("\n " + dimStyle.Render(m.status) + "\n")
	}

	return sb.String()
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateStartTime(s string) error {
	t, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(s), time.Local)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD HH:MM")
	}
	if t.Before(time.Now()) {
		return fmt.Errorf("must be in the future")
	}
	return nil
}

func validateCapacity(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}
