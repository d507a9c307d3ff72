package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/atelierhq/atelier/internal/browser"
	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/notify"
	"github.com/atelierhq/atelier/pkg/client"
	"github.com/atelierhq/atelier/pkg/domain"
)

type view int

const (
	viewWorkshops view = iota
	viewInbox
	viewStudio
	viewYou
)

// meLoadedMsg carries the result of GetMe.
type meLoadedMsg struct {
	me  *domain.Member
	err error
}

// App is the root Bubbletea model.
type App struct {
	client     *client.Client
	cfg        *config.Config
	log        *zap.Logger
	version    string
	view       view
	workshops  workshopsModel
	inbox      inboxModel
	studio     studioModel
	you        youModel
	detail     detailModel
	detailOpen bool
	helpOpen   bool
	helpCursor int
	me         *domain.Member
	store      *notify.Store
	poller     *notify.Poller
	banner     string
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(c *client.Client, cfg *config.Config, log *zap.Logger, version string) App {
	if log == nil {
		log = zap.NewNop()
	}
	return App{
		client:    c,
		cfg:       cfg,
		log:       log,
		version:   version,
		workshops: newWorkshopsModel(c),
		inbox:     newInboxModel(cfg.WebURL),
		studio:    newStudioModel(c),
		you:       newYouModel(c),
		detail:    newDetailModel(c),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.workshops.Init(), shimmerTickCmd(), a.loadMe(), checkVersion(a.version))
}

func (a App) loadMe() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		me, err := c.GetMe(context.Background())
		return meLoadedMsg{me: me, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + banner(1) + help(1) = 5 lines
		bodyHeight := msg.Height - 5
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: bodyHeight}
		a.workshops, _ = a.workshops.Update(bodyMsg)
		a.inbox, _ = a.inbox.Update(bodyMsg)
		a.studio, _ = a.studio.Update(bodyMsg)
		a.you, _ = a.you.Update(bodyMsg)
		a.detail, _ = a.detail.Update(bodyMsg)

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case versionCheckMsg:
		if msg.hasUpdate {
			a.banner = "update available: " + msg.latestVersion + " — run `atelier update`"
		}
		return a, nil

	case meLoadedMsg:
		var cmds []tea.Cmd
		if msg.err == nil && msg.me != nil {
			a.me = msg.me
			uid := msg.me.ID.String()
			c := a.client
			a.store = notify.NewStore(c, uid, a.log)
			a.poller = notify.NewPoller(a.store, func(ctx context.Context) ([]domain.Notification, error) {
				return c.ListWorkshopNotifications(ctx, uid, false)
			}, time.Duration(a.cfg.PollIntervalSec)*time.Second)
			a.inbox.attach(a.store, a.poller)
			a.studio.setUser(uid)
			cmds = append(cmds, a.poller.Start(), a.studio.Init())
		}
		a.you, _ = a.you.Update(msg)
		return a, tea.Batch(cmds...)

	case notify.FetchedMsg:
		if a.store != nil {
			a.store.ApplyFetch(msg.Seq, msg.Notifs, msg.Err)
			return a, a.poller.WaitForNext()
		}
		return a, nil

	case notify.WriteFailedMsg:
		var cmd tea.Cmd
		a.inbox, cmd = a.inbox.Update(msg)
		return a, cmd

	case rolesLoadedMsg, myWorkshopsLoadedMsg, roleRequestedMsg, workshopCreatedMsg:
		var cmd tea.Cmd
		a.studio, cmd = a.studio.Update(msg)
		return a, cmd

	case certsLoadedMsg:
		var cmd tea.Cmd
		a.you, cmd = a.you.Update(msg)
		return a, cmd

	case openWorkshopMsg:
		a.detailOpen = true
		a.detail = newDetailModel(a.client)
		a.detail.width = a.width
		return a, a.detail.load(msg.id)

	case openCertificatesMsg:
		a.view = viewYou
		return a, a.you.Init()

	case workshopLoadedMsg, enrollToggledMsg:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, a.quit()
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		// Detail overlay captures all keys when open
		if a.detailOpen {
			var cmd tea.Cmd
			a.detail, cmd = a.detail.Update(msg)
			if a.detail.closed {
				a.detailOpen = false
			}
			return a, cmd
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q", "ctrl+c":
				return a, a.quit()
			case "1":
				if a.view != viewWorkshops {
					a.view = viewWorkshops
					return a, a.workshops.Init()
				}
				return a, nil
			case "2":
				if a.view != viewInbox {
					a.view = viewInbox
				}
				return a, nil
			case "3":
				if a.view != viewStudio {
					a.view = viewStudio
					return a, a.studio.Init()
				}
				return a, nil
			case "4":
				if a.view != viewYou {
					a.view = viewYou
					return a, a.you.Init()
				}
				return a, nil
			}
		} else if msg.String() == "ctrl+c" {
			return a, a.quit()
		}
	}

	// Route detail messages when overlay is open
	if a.detailOpen {
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		if a.detail.closed {
			a.detailOpen = false
		}
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.view {
	case viewWorkshops:
		a.workshops, cmd = a.workshops.Update(msg)
	case viewInbox:
		a.inbox, cmd = a.inbox.Update(msg)
	case viewStudio:
		a.studio, cmd = a.studio.Update(msg)
	case viewYou:
		a.you, cmd = a.you.Update(msg)
	}

	return a, cmd
}

func (a App) quit() tea.Cmd {
	if a.poller != nil {
		a.poller.Stop()
	}
	return tea.Quit
}

func (a App) isEditing() bool {
	switch a.view {
	case viewWorkshops:
		return a.workshops.filtering
	case viewStudio:
		return a.studio.editing()
	}
	return false
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)

	// Identity line below logo
	identity := ""
	if a.me != nil {
		parts := []string{a.me.Login}
		if a.me.PrimaryRole != "" {
			parts = append(parts, RoleBadge(a.me.PrimaryRole))
		}
		if a.me.Reputation > 0 {
			parts = append(parts, fmt.Sprintf("%d rep", a.me.Reputation))
		}
		identity = metaStyle.Render(strings.Join(parts, " · "))
	}

	// Center the logo within terminal width
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	if identity != "" {
		idWidth := lipgloss.Width(identity)
		idPad := (a.width - idWidth) / 2
		if idPad < 0 {
			idPad = 0
		}
		header += "\n" + strings.Repeat(" ", idPad) + identity
	} else {
		header += "\n"
	}

	// Tab bar: 1 Workshops  2 Inbox  3 Studio  4 You
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Workshops", viewWorkshops},
		{"2", "Inbox", viewInbox},
		{"3", "Studio", viewStudio},
		{"4", "You", viewYou},
	}

	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		// Inbox tab: unread badge
		if t.v == viewInbox && a.store != nil {
			if unread := a.store.UnreadCount(); unread > 0 {
				label += " " + unreadDotStyle.Render("●") + dimStyle.Render(fmt.Sprintf("%d", unread))
			}
		}
		// Center label within its column
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	centeredTabs := tabBar.String()

	// Body
	var body string
	var help string
	switch a.view {
	case viewWorkshops:
		body = a.workshops.View()
		if a.workshops.filtering {
			help = " " + helpEntry("enter", "done") + "  " + helpEntry("esc", "nav")
		} else {
			help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("/", "filter") + "  " + helpEntry("enter", "open") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case viewInbox:
		body = a.inbox.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("v", "view") + "  " + helpEntry("enter", "open") + "  " + helpEntry("m", "mark all") + "  " + helpEntry("d", "delete") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
	case viewStudio:
		body = a.studio.View()
		if a.studio.editing() {
			help = " " + helpEntry("tab", "next") + "  " + helpEntry("esc", "cancel")
		} else {
			help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("n", "schedule") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case viewYou:
		body = a.you.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + a.you.helpKeys()
	}

	// Detail overlay
	if a.detailOpen {
		body = a.detail.View()
		help = " " + helpEntry("e", "enroll") + "  " + helpEntry("esc", "close")
	}

	// Help overlay
	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// Banner line: update notice or blank spacer
	bannerLine := ""
	if a.banner != "" {
		bannerLine = " " + goldStyle.Render(a.banner)
	}

	// Chrome budget: header(2) + tabs(1) + banner(1) + help(1) = 5 lines + body
	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, centeredTabs, body, bannerLine, help)
}
