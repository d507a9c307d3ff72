package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atelierhq/atelier/pkg/client"
	"github.com/atelierhq/atelier/pkg/domain"
)

// capability names one of the resolved permission flags a guard can require.
type capability string

const (
	capCreateWorkshops    capability = "create_workshops"
	capManageAllWorkshops capability = "manage_all_workshops"
	capModerateContent    capability = "moderate_content"
	capManageUsers        capability = "manage_users"
	capViewAnalytics      capability = "view_analytics"
)

func capGranted(p domain.RolePermissions, c capability) bool {
	switch c {
	case capCreateWorkshops:
		return p.CanCreateWorkshops
	case capManageAllWorkshops:
		return p.CanManageAllWorkshops
	case capModerateContent:
		return p.CanModerateContent
	case capManageUsers:
		return p.CanManageUsers
	case capViewAnalytics:
		return p.CanViewAnalytics
	}
	return false
}

type guardState int

const (
	guardLoading guardState = iota
	guardChecking
	guardAllowed
	guardDenied
)

type guardMode int

const (
	guardAnyOf guardMode = iota
	guardAllOf
)

// rolesLoadedMsg carries the result of the guard's role fetch.
type rolesLoadedMsg struct {
	assignment *domain.RoleAssignment
	err        error
}

// roleGuard gates a view behind resolved role permissions. It fetches
// the member's roles, resolves them to permission flags, and settles
// into allowed or denied. Fetch failures deny: a gate that cannot
// verify must not open.
type roleGuard struct {
	client   *client.Client
	userID   string
	required []capability
	mode     guardMode
	state    guardState
	perms    domain.RolePermissions
	roles    []domain.UserRole
	err      string
}

func newRoleGuard(c *client.Client, required []capability, mode guardMode) roleGuard {
	return roleGuard{client: c, required: required, mode: mode, state: guardLoading}
}

// setUser records whose roles to check. Resets the guard so the next
// load re-evaluates.
func (g *roleGuard) setUser(userID string) {
	g.userID = userID
	g.state = guardLoading
}

// load fetches the member's roles. Returns nil until a user is known.
func (g roleGuard) load() tea.Cmd {
	if g.userID == "" {
		return nil
	}
	c := g.client
	uid := g.userID
	return func() tea.Msg {
		assignment, err := c.GetMemberRoles(context.Background(), uid)
		return rolesLoadedMsg{assignment: assignment, err: err}
	}
}

func (g roleGuard) update(msg tea.Msg) roleGuard {
	m, ok := msg.(rolesLoadedMsg)
	if !ok {
		return g
	}
	g.state = guardChecking
	if m.err != nil {
		g.err = m.err.Error()
		g.state = guardDenied
		return g
	}
	var roles []domain.UserRole
	if m.assignment != nil {
		roles = m.assignment.Roles
	}
	g.roles = roles
	g.perms = domain.ResolvePermissions(roles)
	g.err = ""
	if g.decide() {
		g.state = guardAllowed
	} else {
		g.state = guardDenied
	}
	return g
}

// decide evaluates the requirement against the resolved permissions.
// An empty requirement list always allows.
func (g roleGuard) decide() bool {
	if len(g.required) == 0 {
		return true
	}
	if g.mode == guardAllOf {
		for _, c := range g.required {
			if !capGranted(g.perms, c) {
				return false
			}
		}
		return true
	}
	for _, c := range g.required {
		if capGranted(g.perms, c) {
			return true
		}
	}
	return false
}
