package tui

import (
	"errors"
	"testing"

	"github.com/atelierhq/atelier/pkg/domain"
)

func TestGuardStartsLoading(t *testing.T) {
	g := newRoleGuard(nil, []capability{capCreateWorkshops}, guardAnyOf)
	if g.state != guardLoading {
		t.Errorf("state = %d, want guardLoading", g.state)
	}
	if g.load() != nil {
		t.Error("load() should be nil before a user is set")
	}
}

func TestGuardAllowsCreator(t *testing.T) {
	g := newRoleGuard(nil, []capability{capCreateWorkshops}, guardAnyOf)
	g = g.update(rolesLoadedMsg{assignment: &domain.RoleAssignment{
		Roles: []domain.UserRole{domain.RoleWorkshopCreator},
	}})
	if g.state != guardAllowed {
		t.Errorf("state = %d, want guardAllowed", g.state)
	}
}

func TestGuardDeniesMember(t *testing.T) {
	g := newRoleGuard(nil, []capability{capCreateWorkshops}, guardAnyOf)
	g = g.update(rolesLoadedMsg{assignment: &domain.RoleAssignment{
		Roles: []domain.UserRole{domain.RoleMember},
	}})
	if g.state != guardDenied {
		t.Errorf("state = %d, want guardDenied", g.state)
	}
}

func TestGuardDeniesEmptyRoles(t *testing.T) {
	g := newRoleGuard(nil, []capability{capViewAnalytics}, guardAnyOf)
	g = g.update(rolesLoadedMsg{assignment: &domain.RoleAssignment{}})
	if g.state != guardDenied {
		t.Errorf("state = %d, want guardDenied for empty roles", g.state)
	}
}

func TestGuardNoRequirementAllows(t *testing.T) {
	g := newRoleGuard(nil, nil, guardAnyOf)
	g = g.update(rolesLoadedMsg{assignment: &domain.RoleAssignment{}})
	if g.state != guardAllowed {
		t.Errorf("state = %d, want guardAllowed with no requirements", g.state)
	}
}

func TestGuardFetchErrorDenies(t *testing.T) {
	g := newRoleGuard(nil, []capability{capCreateWorkshops}, guardAnyOf)
	g = g.update(rolesLoadedMsg{err: errors.New("connection refused")})
	if g.state != guardDenied {
		t.Errorf("state = %d, want guardDenied on fetch error", g.state)
	}
	if g.err == "" {
		t.Error("err should record the fetch failure")
	}
}

func TestGuardAllOfMode(t *testing.T) {
	g := newRoleGuard(nil, []capability{capCreateWorkshops, capManageUsers}, guardAllOf)
	g = g.update(rolesLoadedMsg{assignment: &domain.RoleAssignment{
		Roles: []domain.UserRole{domain.RoleWorkshopCreator},
	}})
	if g.state != guardDenied {
		t.Errorf("state = %d, want guardDenied: creator lacks manage_users", g.state)
	}

	g = newRoleGuard(nil, []capability{capCreateWorkshops, capManageUsers}, guardAllOf)
	g = g.update(rolesLoadedMsg{assignment: &domain.RoleAssignment{
		Roles: []domain.UserRole{domain.RoleAdmin},
	}})
	if g.state != guardAllowed {
		t.Errorf("state = %d, want guardAllowed: admin holds both", g.state)
	}
}

func TestGuardAnyOfMode(t *testing.T) {
	g := newRoleGuard(nil, []capability{capModerateContent, capManageUsers}, guardAnyOf)
	g = g.update(rolesLoadedMsg{assignment: &domain.RoleAssignment{
		Roles: []domain.UserRole{domain.RoleModerator},
	}})
	if g.state != guardAllowed {
		t.Errorf("state = %d, want guardAllowed: moderator holds moderate_content", g.state)
	}
}

func TestGuardSetUserResets(t *testing.T) {
	g := newRoleGuard(nil, []capability{capCreateWorkshops}, guardAnyOf)
	g = g.update(rolesLoadedMsg{assignment: &domain.RoleAssignment{
		Roles: []domain.UserRole{domain.RoleWorkshopCreator},
	}})
	if g.state != guardAllowed {
		t.Fatalf("state = %d, want guardAllowed", g.state)
	}
	g.setUser("u8")
	if g.state != guardLoading {
		t.Errorf("state = %d after setUser, want guardLoading", g.state)
	}
}
