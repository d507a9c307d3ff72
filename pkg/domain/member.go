package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member is a registered Atelier user.
type Member struct {
	ID          uuid.UUID  `json:"id"`
	Login       string     `json:"login"`
	DisplayName string     `json:"display_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	City        string     `json:"city,omitempty"`
	Reputation  int        `json:"reputation"`
	PrimaryRole UserRole   `json:"primary_role,omitempty"`
	Roles       []UserRole `json:"roles,omitempty"`
	JoinedAt    time.Time  `json:"joined_at"`
	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`
}
