package notify

import (
	"reflect"
	"testing"

	"github.com/atelierhq/atelier/pkg/domain"
	"github.com/google/uuid"
)

func sampleInbox() []domain.Notification {
	return []domain.Notification{
		{ID: uuid.New(), Type: domain.TypeStartingNow, Read: false},
		{ID: uuid.New(), Type: domain.TypeCertificateIssued, Read: true},
		{ID: uuid.New(), Type: domain.TypeReminder24h, Read: false},
		{ID: uuid.New(), Type: domain.TypeMention, Read: true},
		{ID: uuid.New(), Type: domain.TypeWorkshopCompleted, Read: false},
		{ID: uuid.New(), Type: domain.TypeDeadlineReminder, Read: true},
	}
}

func TestFilterViewAll(t *testing.T) {
	in := sampleInbox()
	got := FilterView(in, ViewAll)
	if len(got) != len(in) {
		t.Fatalf("ViewAll returned %d items, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i].ID != in[i].ID {
			t.Errorf("ViewAll reordered items at %d", i)
		}
	}
}

func TestFilterViewUnread(t *testing.T) {
	got := FilterView(sampleInbox(), ViewUnread)
	if len(got) != 3 {
		t.Fatalf("ViewUnread returned %d items, want 3", len(got))
	}
	for _, n := range got {
		if n.Read {
			t.Errorf("ViewUnread included read notification %s", n.ID)
		}
	}
}

func TestFilterViewReminders(t *testing.T) {
	got := FilterView(sampleInbox(), ViewReminders)
	if len(got) != 3 {
		t.Fatalf("ViewReminders returned %d items, want 3", len(got))
	}
	want := []domain.NotificationType{domain.TypeStartingNow, domain.TypeReminder24h, domain.TypeDeadlineReminder}
	for i, n := range got {
		if n.Type != want[i] {
			t.Errorf("ViewReminders[%d].Type = %q, want %q", i, n.Type, want[i])
		}
	}
}

func TestFilterViewCertificates(t *testing.T) {
	got := FilterView(sampleInbox(), ViewCertificates)
	if len(got) != 2 {
		t.Fatalf("ViewCertificates returned %d items, want 2", len(got))
	}
	want := []domain.NotificationType{domain.TypeCertificateIssued, domain.TypeWorkshopCompleted}
	for i, n := range got {
		if n.Type != want[i] {
			t.Errorf("ViewCertificates[%d].Type = %q, want %q", i, n.Type, want[i])
		}
	}
}

func TestFilterViewUnknownActsLikeAll(t *testing.T) {
	in := sampleInbox()
	got := FilterView(in, View("starred"))
	if len(got) != len(in) {
		t.Errorf("unknown view returned %d items, want %d", len(got), len(in))
	}
}

func TestFilterViewDoesNotMutateInput(t *testing.T) {
	in := sampleInbox()
	before := make([]domain.Notification, len(in))
	copy(before, in)

	out := FilterView(in, ViewUnread)
	if len(out) > 0 {
		out[0].Read = true
		out[0].Title = "changed"
	}

	for i := range in {
		if !reflect.DeepEqual(in[i], before[i]) {
			t.Fatalf("input mutated at %d: %+v", i, in[i])
		}
	}
}

func TestFilterViewIdempotent(t *testing.T) {
	in := sampleInbox()
	once := FilterView(in, ViewReminders)
	twice := FilterView(once, ViewReminders)
	if len(once) != len(twice) {
		t.Fatalf("second filter changed length: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("second filter changed item at %d", i)
		}
	}
}

func TestFilterViewEmpty(t *testing.T) {
	for _, v := range Views {
		got := FilterView(nil, v)
		if len(got) != 0 {
			t.Errorf("FilterView(nil, %q) returned %d items, want 0", v, len(got))
		}
	}
}
