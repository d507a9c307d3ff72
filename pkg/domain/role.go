package domain

// UserRole is a named capability group assigned to a member.
type UserRole string

const (
	RoleMember          UserRole = "member"
	RoleModerator       UserRole = "moderator"
	RoleWorkshopCreator UserRole = "workshop_creator"
	RoleAdmin           UserRole = "admin"
)

// ValidRole reports whether the given value is a known role.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleMember, RoleModerator, RoleWorkshopCreator, RoleAdmin:
		return true
	}
	return false
}

// RoleAssignment is what the roles endpoint returns for a member.
type RoleAssignment struct {
	Roles       []UserRole `json:"roles"`
	PrimaryRole UserRole   `json:"primaryRole"`
}

// RolePermissions is the capability set derived from a member's roles.
// It is recomputed whenever the role set changes, never mutated directly.
type RolePermissions struct {
	CanCreateWorkshops    bool
	CanManageAllWorkshops bool
	CanModerateContent    bool
	CanManageUsers        bool
	CanViewAnalytics      bool
}

// ResolvePermissions maps a set of roles to a capability set. An empty or
// nil role set yields all-false permissions — the unauthenticated default.
func ResolvePermissions(roles []UserRole) RolePermissions {
	has := func(want ...UserRole) bool {
		for _, r := range roles {
			for _, w := range want {
				if r == w {
					return true
				}
			}
		}
		return false
	}
	return RolePermissions{
		CanCreateWorkshops:    has(RoleWorkshopCreator, RoleAdmin),
		CanManageAllWorkshops: has(RoleAdmin),
		CanModerateContent:    has(RoleModerator, RoleAdmin),
		CanManageUsers:        has(RoleAdmin),
		CanViewAnalytics:      has(RoleWorkshopCreator, RoleAdmin),
	}
}
