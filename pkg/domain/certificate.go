package domain

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is issued when a member completes a workshop.
type Certificate struct {
	ID            uuid.UUID `json:"id"`
	WorkshopID    string    `json:"workshop_id"`
	WorkshopTitle string    `json:"workshop_title"`
	CredentialID  string    `json:"credential_id"`
	VerifyURL     string    `json:"verify_url,omitempty"`
	IssuedAt      time.Time `json:"issued_at"`
}
