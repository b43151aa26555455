package activation

import (
	"slices"
	"testing"

	"github.com/Iron-Ham/panelkit/internal/event"
)

func TestTracker_ActivateInactivate(t *testing.T) {
	tr := New(nil, nil)

	if tr.IsActive("panel/general") {
		t.Fatal("new tracker should have nothing active")
	}

	tr.Activate("panel/general")
	tr.Activate("panel/history")
	if !tr.IsActive("panel/general") || !tr.IsActive("panel/history") {
		t.Error("activated namespaces should be active")
	}
	if got, want := tr.Active(), []string{"panel/general", "panel/history"}; !slices.Equal(got, want) {
		t.Errorf("Active() = %v, want %v", got, want)
	}

	tr.Inactivate("panel/general")
	if tr.IsActive("panel/general") {
		t.Error("inactivated namespace should not be active")
	}
	// unknown namespace is a no-op
	tr.Inactivate("nope")
}

func TestTracker_PublishesOnlyStateChanges(t *testing.T) {
	bus := event.NewBus(nil)
	tr := New(bus, nil)

	var got []string
	bus.SubscribeAll(func(e event.Event) {
		switch ev := e.(type) {
		case event.ComponentActivatedEvent:
			got = append(got, "on:"+ev.Namespace)
		case event.ComponentInactivatedEvent:
			got = append(got, "off:"+ev.Namespace)
		}
	})

	tr.Activate("a")
	tr.Activate("a")
	tr.Inactivate("a")
	tr.Inactivate("a")
	tr.Inactivate("b")

	want := []string{"on:a", "off:a"}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}
