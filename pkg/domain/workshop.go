package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkshopStatus tracks a workshop through its lifecycle.
type WorkshopStatus string

const (
	WorkshopScheduled WorkshopStatus = "scheduled"
	WorkshopLive      WorkshopStatus = "live"
	WorkshopCompleted WorkshopStatus = "completed"
	WorkshopCancelled WorkshopStatus = "cancelled"
)

// Workshop is a scheduled live session hosted by a creator.
type Workshop struct {
	ID          uuid.UUID      `json:"id"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	HostLogin   string         `json:"host_login"`
	Topic       string         `json:"topic,omitempty"`
	Status      WorkshopStatus `json:"status"`
	StartsAt    time.Time      `json:"starts_at"`
	DurationMin int            `json:"duration_min,omitempty"`
	Capacity    int            `json:"capacity"`
	Enrolled    int            `json:"enrolled"`
	MeetingLink string         `json:"meeting_link,omitempty"`
	IsEnrolled  bool           `json:"is_enrolled"`
	OnWaitlist  bool           `json:"on_waitlist"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Full reports whether the workshop has no open seats left.
func (w Workshop) Full() bool {
	return w.Capacity > 0 && w.Enrolled >= w.Capacity
}
