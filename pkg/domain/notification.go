package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies what happened. The workshop pipeline emits the
// workshop-prefixed types; the forum emits the generic ones. Unknown values
// pass through untouched so an older client never chokes on a newer server.
type NotificationType string

const (
	TypeEnrollmentConfirmed NotificationType = "workshop_enrollment_confirmation"
	TypeReminder24h         NotificationType = "workshop_reminder_24h"
	TypeReminder1h          NotificationType = "workshop_reminder_1h"
	TypeStartingNow         NotificationType = "workshop_starting_now"
	TypeWorkshopCancelled   NotificationType = "workshop_cancelled"
	TypeWorkshopUpdated     NotificationType = "workshop_updated"
	TypeWorkshopCompleted   NotificationType = "workshop_completed"
	TypeCertificateIssued   NotificationType = "certificate_issued"
	TypeWaitlistPromoted    NotificationType = "waitlist_promoted"
	TypeCreatorApproved     NotificationType = "workshop_creator_approved"
	TypeDeadlineReminder    NotificationType = "enrollment_deadline_reminder"

	TypeMention  NotificationType = "mention"
	TypeAnswer   NotificationType = "answer"
	TypeReaction NotificationType = "reaction"
	TypeAccepted NotificationType = "accepted"
)

// Priority is assigned server-side when the notification is created.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// TargetWorkshop is the target_type value that routes a notification through
// the workshop-specific presentation rules.
const TargetWorkshop = "workshop"

// NotificationMeta carries the type-specific payload. Each notification type
// fills only the fields it needs; everything else stays zero. Keeping the
// fields typed (instead of an open map) lets the classifier and router read
// them without casts.
type NotificationMeta struct {
	WorkshopTitle string     `json:"workshop_title,omitempty"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	MeetingLink   string     `json:"meeting_link,omitempty"`
	CertificateID string     `json:"certificate_id,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Changes       []string   `json:"changes,omitempty"`
}

// Notification is a single event delivered to a member.
type Notification struct {
	ID         uuid.UUID        `json:"id"`
	Type       NotificationType `json:"type"`
	TargetType string           `json:"target_type,omitempty"`
	TargetID   string           `json:"target_id,omitempty"`
	Title      string           `json:"title"`
	Message    string           `json:"message,omitempty"`
	Priority   Priority         `json:"priority,omitempty"`
	Read       bool             `json:"read"`
	Meta       NotificationMeta `json:"metadata,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// IsWorkshop reports whether the notification targets a workshop.
func (n Notification) IsWorkshop() bool {
	return n.TargetType == TargetWorkshop
}
