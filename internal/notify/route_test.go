package notify

import (
	"testing"

	"github.com/atelierhq/atelier/pkg/domain"
)

func TestResolveDestinationStartingNowWithLink(t *testing.T) {
	n := domain.Notification{
		Type:       domain.TypeStartingNow,
		TargetType: domain.TargetWorkshop,
		TargetID:   "w42",
		Meta:       domain.NotificationMeta{MeetingLink: "https://example.com/m/1"},
	}
	got := ResolveDestination(n)
	want := Destination{Kind: DestExternal, Value: "https://example.com/m/1"}
	if got != want {
		t.Errorf("ResolveDestination = %+v, want %+v", got, want)
	}
}

func TestResolveDestinationStartingNowWithoutLink(t *testing.T) {
	n := domain.Notification{
		Type:       domain.TypeStartingNow,
		TargetType: domain.TargetWorkshop,
		TargetID:   "w42",
	}
	got := ResolveDestination(n)
	want := Destination{Kind: DestInternal, Value: "/workshops/w42"}
	if got != want {
		t.Errorf("ResolveDestination = %+v, want %+v", got, want)
	}
}

func TestResolveDestinationCertificates(t *testing.T) {
	for _, typ := range []domain.NotificationType{domain.TypeCertificateIssued, domain.TypeWorkshopCompleted} {
		n := domain.Notification{Type: typ, TargetType: domain.TargetWorkshop, TargetID: "w42"}
		got := ResolveDestination(n)
		want := Destination{Kind: DestInternal, Value: "/profile/certificates"}
		if got != want {
			t.Errorf("ResolveDestination(%q) = %+v, want %+v", typ, got, want)
		}
	}
}

func TestResolveDestinationWorkshopDefault(t *testing.T) {
	for _, typ := range []domain.NotificationType{
		domain.TypeEnrollmentConfirmed,
		domain.TypeReminder24h,
		domain.TypeWorkshopCancelled,
		"workshop_rescheduled_v2",
	} {
		n := domain.Notification{Type: typ, TargetType: domain.TargetWorkshop, TargetID: "w42"}
		got := ResolveDestination(n)
		want := Destination{Kind: DestInternal, Value: "/workshops/w42"}
		if got != want {
			t.Errorf("ResolveDestination(%q) = %+v, want %+v", typ, got, want)
		}
	}
}

func TestResolveDestinationByTargetType(t *testing.T) {
	tests := []struct {
		targetType string
		targetID   string
		want       Destination
	}{
		{"question", "q9", Destination{Kind: DestInternal, Value: "/forum/questions/q9"}},
		{"member", "u7", Destination{Kind: DestInternal, Value: "/members/u7"}},
		{"certificate", "c1", Destination{Kind: DestInternal, Value: "/profile/certificates"}},
		{"", "", Destination{Kind: DestInternal, Value: "/inbox"}},
		{"unknown_thing", "x", Destination{Kind: DestInternal, Value: "/inbox"}},
	}

	for _, tt := range tests {
		n := domain.Notification{Type: domain.TypeMention, TargetType: tt.targetType, TargetID: tt.targetID}
		got := ResolveDestination(n)
		if got != tt.want {
			t.Errorf("ResolveDestination(targetType=%q) = %+v, want %+v", tt.targetType, got, tt.want)
		}
	}
}

func TestResolveDestinationDeterministic(t *testing.T) {
	n := domain.Notification{
		Type:       domain.TypeStartingNow,
		TargetType: domain.TargetWorkshop,
		TargetID:   "w42",
		Meta:       domain.NotificationMeta{MeetingLink: "https://example.com/m/1"},
	}
	first := ResolveDestination(n)
	for i := 0; i < 5; i++ {
		if got := ResolveDestination(n); got != first {
			t.Fatalf("ResolveDestination not deterministic: %+v then %+v", first, got)
		}
	}
}
