package domain

import "testing"

func TestResolvePermissionsEmptyRoles(t *testing.T) {
	perms := ResolvePermissions(nil)
	if perms != (RolePermissions{}) {
		t.Errorf("ResolvePermissions(nil) = %+v, want all false", perms)
	}
	perms = ResolvePermissions([]UserRole{})
	if perms != (RolePermissions{}) {
		t.Errorf("ResolvePermissions([]) = %+v, want all false", perms)
	}
}

func TestResolvePermissionsMember(t *testing.T) {
	perms := ResolvePermissions([]UserRole{RoleMember})
	if perms != (RolePermissions{}) {
		t.Errorf("member should hold no capabilities, got %+v", perms)
	}
}

func TestResolvePermissionsWorkshopCreator(t *testing.T) {
	perms := ResolvePermissions([]UserRole{RoleWorkshopCreator})
	want := RolePermissions{CanCreateWorkshops: true, CanViewAnalytics: true}
	if perms != want {
		t.Errorf("ResolvePermissions(workshop_creator) = %+v, want %+v", perms, want)
	}
}

func TestResolvePermissionsAdmin(t *testing.T) {
	perms := ResolvePermissions([]UserRole{RoleAdmin})
	want := RolePermissions{
		CanCreateWorkshops:    true,
		CanManageAllWorkshops: true,
		CanModerateContent:    true,
		CanManageUsers:        true,
		CanViewAnalytics:      true,
	}
	if perms != want {
		t.Errorf("ResolvePermissions(admin) = %+v, want all true", perms)
	}
}

func TestResolvePermissionsModerator(t *testing.T) {
	perms := ResolvePermissions([]UserRole{RoleModerator})
	want := RolePermissions{CanModerateContent: true}
	if perms != want {
		t.Errorf("ResolvePermissions(moderator) = %+v, want %+v", perms, want)
	}
}

func TestResolvePermissionsCombined(t *testing.T) {
	perms := ResolvePermissions([]UserRole{RoleMember, RoleModerator, RoleWorkshopCreator})
	want := RolePermissions{
		CanCreateWorkshops: true,
		CanModerateContent: true,
		CanViewAnalytics:   true,
	}
	if perms != want {
		t.Errorf("combined roles = %+v, want %+v", perms, want)
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []UserRole{RoleMember, RoleModerator, RoleWorkshopCreator, RoleAdmin} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false, want true", r)
		}
	}
	if ValidRole("wizard") {
		t.Error("ValidRole(\"wizard\") = true, want false")
	}
	if ValidRole("") {
		t.Error("ValidRole(\"\") = true, want false")
	}
}
