package notify

import "github.com/atelierhq/atelier/pkg/domain"

// IconCategory names the glyph family a notification renders with.
// The TUI maps each category to a symbol and color in one place.
type IconCategory string

const (
	IconSuccess       IconCategory = "success"
	IconTimeSensitive IconCategory = "time-sensitive"
	IconLive          IconCategory = "live"
	IconAlert         IconCategory = "alert"
	IconInfo          IconCategory = "info"
	IconAward         IconCategory = "award"
	IconAffection     IconCategory = "affection"
	IconGeneric       IconCategory = "generic"
)

// PriorityBand groups notifications into display urgency tiers.
type PriorityBand string

const (
	BandNormal   PriorityBand = "normal"
	BandElevated PriorityBand = "elevated"
	BandUrgent   PriorityBand = "urgent"
)

// Badge is the presentation decision for a notification: which icon
// family it renders with, how loudly, and the label of its primary
// action if it has one.
type Badge struct {
	Icon   IconCategory
	Band   PriorityBand
	Action string
}

// Classify maps a notification to its badge. Every input yields a
// usable badge; unrecognized types fall back to a generic one rather
// than erroring, so new server-side types degrade gracefully.
func Classify(n domain.Notification) Badge {
	switch n.Type {
	case domain.TypeEnrollmentConfirmed, domain.TypeWaitlistPromoted, domain.TypeCreatorApproved:
		return Badge{Icon: IconSuccess, Band: BandElevated}
	case domain.TypeReminder24h, domain.TypeDeadlineReminder:
		return Badge{Icon: IconTimeSensitive, Band: BandElevated}
	case domain.TypeReminder1h:
		return Badge{Icon: IconTimeSensitive, Band: BandUrgent}
	case domain.TypeStartingNow:
		return Badge{Icon: IconLive, Band: BandUrgent, Action: "Join Now"}
	case domain.TypeWorkshopCancelled:
		return Badge{Icon: IconAlert, Band: BandElevated}
	case domain.TypeWorkshopUpdated:
		return Badge{Icon: IconInfo, Band: BandNormal, Action: "View Details"}
	case domain.TypeWorkshopCompleted:
		return Badge{Icon: IconAward, Band: BandNormal, Action: "View Certificate"}
	case domain.TypeCertificateIssued:
		return Badge{Icon: IconAward, Band: BandNormal, Action: "Download Certificate"}
	case domain.TypeMention:
		return Badge{Icon: IconInfo, Band: BandNormal}
	case domain.TypeAnswer:
		return Badge{Icon: IconSuccess, Band: BandNormal}
	case domain.TypeReaction:
		return Badge{Icon: IconAffection, Band: BandNormal}
	case domain.TypeAccepted:
		return Badge{Icon: IconSuccess, Band: BandElevated}
	default:
		return Badge{Icon: IconGeneric, Band: BandNormal}
	}
}
