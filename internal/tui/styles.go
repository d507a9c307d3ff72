package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atelierhq/atelier/internal/notify"
	"github.com/atelierhq/atelier/pkg/domain"
)

// Shimmer animation for the ATELIER logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "A T E L I E R" as a flowing wave of warm light.
// Deep umber (#3a2a1a) -> bright amber (#fbbf24). No hue drift.
// Letters are spaced apart and rendered without a background box.
func renderShimmerLogo(frame int) string {
	const text = "ATELIER"
	n := len(text)

	var out string

	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// Flowing phase — one smooth wave advancing through the text
		phase := t*0.1 - x*3.0

		// Gentle speed modulation
		phase += math.Sin(t*0.023) * 2.0

		// Primary brightness wave
		b := math.Sin(phase)*0.5 + 0.5

		// Soft shaping
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Continuous RGB interpolation: deep umber -> bright amber
		// Deep:   (58, 42, 26)   #3a2a1a
		// Bright: (251, 191, 36) #fbbf24
		r := clampByte(58 + b*(251-58))
		g := clampByte(42 + b*(191-42))
		bl := clampByte(26 + b*(36-26))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		// Letter spacing — two spaces between each letter
		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles — atelier neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	goldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	// Surface colors
	borderColor  = lipgloss.Color("#1e1e2a")
	surfaceColor = lipgloss.Color("#111118")

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fbbf24")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	unreadDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	liveDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	// Icon category colors — one glyph family per classifier bucket
	iconStyles = map[notify.IconCategory]lipgloss.Style{
		notify.IconSuccess:       lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
		notify.IconTimeSensitive: lipgloss.NewStyle().Foreground(lipgloss.Color("#f0944a")),
		notify.IconLive:          lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")),
		notify.IconAlert:         lipgloss.NewStyle().Foreground(lipgloss.Color("#e06060")),
		notify.IconInfo:          lipgloss.NewStyle().Foreground(lipgloss.Color("#60a0e0")),
		notify.IconAward:         lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844")),
		notify.IconAffection:     lipgloss.NewStyle().Foreground(lipgloss.Color("#e080b0")),
		notify.IconGeneric:       lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")),
	}

	iconGlyphs = map[notify.IconCategory]string{
		notify.IconSuccess:       "✓",
		notify.IconTimeSensitive: "◷",
		notify.IconLive:          "●",
		notify.IconAlert:         "!",
		notify.IconInfo:          "i",
		notify.IconAward:         "★",
		notify.IconAffection:     "♥",
		notify.IconGeneric:       "·",
	}

	// Role colors
	roleColors = map[domain.UserRole]lipgloss.Color{
		domain.RoleMember:          lipgloss.Color("#8890a0"),
		domain.RoleModerator:       lipgloss.Color("#60a0e0"),
		domain.RoleWorkshopCreator: lipgloss.Color("#fbbf24"),
		domain.RoleAdmin:           lipgloss.Color("#e06060"),
	}

	// Topic colors for workshop chips
	topicColors = map[string]lipgloss.Color{
		"letterpress": lipgloss.Color("#e06060"),
		"bookbinding": lipgloss.Color("#b080d0"),
		"ceramics":    lipgloss.Color("#f0944a"),
		"risograph":   lipgloss.Color("#d4a844"),
		"woodcut":     lipgloss.Color("#60a0e0"),
		"weaving":     lipgloss.Color("#3ecce4"),
		"typography":  lipgloss.Color("#c084e0"),
		"general":     lipgloss.Color("#606878"),
	}
)

// IconBadge renders the colored glyph for a notification badge.
func IconBadge(b notify.Badge) string {
	glyph, ok := iconGlyphs[b.Icon]
	if !ok {
		glyph = iconGlyphs[notify.IconGeneric]
	}
	style, ok := iconStyles[b.Icon]
	if !ok {
		style = iconStyles[notify.IconGeneric]
	}
	if b.Band == notify.BandUrgent {
		style = style.Bold(true)
	}
	return style.Render(glyph)
}

// bandStyle returns the text style for a priority band.
func bandStyle(band notify.PriorityBand) lipgloss.Style {
	switch band {
	case notify.BandUrgent:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#fff")).Bold(true)
	case notify.BandElevated:
		return selectedStyle
	default:
		return normalStyle
	}
}

// RoleStyle returns a bold style colored for the given role.
func RoleStyle(role domain.UserRole) lipgloss.Style {
	if c, ok := roleColors[role]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
}

// RoleBadge returns a short colored badge string for a role, e.g. "[creator]".
func RoleBadge(role domain.UserRole) string {
	if role == "" {
		return ""
	}
	label := "[" + strings.TrimPrefix(string(role), "workshop_") + "]"
	return RoleStyle(role).Render(label)
}

// TopicStyle returns a bold style colored for the given workshop topic.
func TopicStyle(topic string) lipgloss.Style {
	if c, ok := topicColors[topic]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// statusStyle returns a style for the given workshop status.
func statusStyle(status domain.WorkshopStatus) lipgloss.Style {
	switch status {
	case domain.WorkshopLive:
		return liveDotStyle.Bold(true)
	case domain.WorkshopCancelled:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#e06060"))
	case domain.WorkshopCompleted:
		return goldStyle
	default:
		return dimStyle
	}
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Community Guidelines", "atelier.community/guidelines", "https://atelier.community/guidelines"},
	{"Privacy Policy", "atelier.community/privacy", "https://atelier.community/privacy"},
	{"FAQ", "atelier.community/faq", "https://atelier.community/faq"},
	{"Website", "atelier.community", "https://atelier.community"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("A T E L I E R")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Every maker was once a beginner who kept showing up."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	selStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fbbf24"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"atelier", "Open the studio floor (interactive TUI)"},
		{"atelier login", "Authenticate with GitHub"},
		{"atelier logout", "Clear your session"},
		{"atelier update", "Check for updates"},
		{"atelier --version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, quote)

	// Commands section
	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	// Links section (selectable)
	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-20s", item.label))
		prefix := "    "
		if i == cursor {
			label = selStyle.Render(fmt.Sprintf("%-20s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
