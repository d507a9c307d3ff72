package notify

import "github.com/atelierhq/atelier/pkg/domain"

// DestinationKind distinguishes in-app navigation from links that
// leave the client for the system browser.
type DestinationKind string

const (
	DestInternal DestinationKind = "internal-path"
	DestExternal DestinationKind = "external-url"
)

// Destination is where activating a notification takes the member.
type Destination struct {
	Kind  DestinationKind
	Value string
}

// ResolveDestination decides the navigation target for a notification.
// Workshop notifications route to the workshop or the certificate
// shelf; everything else routes by target type, with the inbox as the
// safe default so activation never dead-ends.
func ResolveDestination(n domain.Notification) Destination {
	if n.IsWorkshop() {
		switch n.Type {
		case domain.TypeStartingNow:
			if n.Meta.MeetingLink != "" {
				return Destination{Kind: DestExternal, Value: n.Meta.MeetingLink}
			}
			return Destination{Kind: DestInternal, Value: "/workshops/" + n.TargetID}
		case domain.TypeCertificateIssued, domain.TypeWorkshopCompleted:
			return Destination{Kind: DestInternal, Value: "/profile/certificates"}
		default:
			return Destination{Kind: DestInternal, Value: "/workshops/" + n.TargetID}
		}
	}

	switch n.TargetType {
	case "question":
		return Destination{Kind: DestInternal, Value: "/forum/questions/" + n.TargetID}
	case "member":
		return Destination{Kind: DestInternal, Value: "/members/" + n.TargetID}
	case "certificate":
		return Destination{Kind: DestInternal, Value: "/profile/certificates"}
	default:
		return Destination{Kind: DestInternal, Value: "/inbox"}
	}
}
