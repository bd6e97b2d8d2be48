package action

import "testing"

func TestCategoryOrder(t *testing.T) {
	if !(Positive < Negative && Negative < Neutral && Neutral < PositiveReversed) {
		t.Fatal("category order must be Positive < Negative < Neutral < PositiveReversed")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"positive", Positive, false},
		{"Negative", Negative, false},
		{" neutral ", Neutral, false},
		{"positive-reversed", PositiveReversed, false},
		{"reversed", PositiveReversed, false},
		{"destructive", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSortIsStableByCategory(t *testing.T) {
	actions := []*Action{
		New("Later", PositiveReversed),
		New("Cancel", Neutral),
		New("Delete", Negative),
		New("OK", Positive),
		New("Archive", Negative),
	}

	sorted := Sort(actions)
	want := []string{"OK", "Delete", "Archive", "Cancel", "Later"}
	for i, a := range sorted {
		if a.Title() != want[i] {
			t.Errorf("sorted[%d] = %q, want %q", i, a.Title(), want[i])
		}
	}

	if actions[0].Title() != "Later" {
		t.Error("Sort must not reorder its input")
	}
}

func TestGuardDefaultsToAllow(t *testing.T) {
	a := New("OK", Positive)
	if !a.Guard() {
		t.Error("action without guard should allow dismissal")
	}

	b := New("Delete", Negative, WithGuard(func() bool { return false }))
	if b.Guard() {
		t.Error("guard returning false should veto")
	}
}

func TestCompleteRunsCallback(t *testing.T) {
	calls := 0
	a := New("OK", Positive, WithCompletion(func() { calls++ }))
	a.Complete()
	if calls != 1 {
		t.Errorf("completion calls = %d, want 1", calls)
	}

	New("No callback", Neutral).Complete()
}

func TestOptions(t *testing.T) {
	a := New("Share", Positive, WithIcon("share.png"), Disabled())
	if a.Enabled() {
		t.Error("Disabled() option should start disabled")
	}
	if !a.HasIcon() || a.Icon() != "share.png" {
		t.Errorf("Icon() = %q, want share.png", a.Icon())
	}
}

func TestSetEnabledNotifiesSynchronously(t *testing.T) {
	a := New("Send", Positive)

	var got []bool
	sub := a.Subscribe(func(enabled bool) { got = append(got, enabled) })

	a.SetEnabled(false)
	a.SetEnabled(false) // unchanged, no notification
	a.SetEnabled(true)

	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Errorf("notifications = %v, want [false true]", got)
	}

	sub.Cancel()
	a.SetEnabled(false)
	if len(got) != 2 {
		t.Errorf("cancelled subscription still notified: %v", got)
	}
	if sub.Active() {
		t.Error("cancelled subscription should not be active")
	}
	sub.Cancel() // idempotent
}

func TestObserverMayCancelDuringNotify(t *testing.T) {
	a := New("Send", Positive)

	var second int
	var secondSub *Subscription
	a.Subscribe(func(bool) { secondSub.Cancel() })
	secondSub = a.Subscribe(func(bool) { second++ })

	a.SetEnabled(false)
	if second != 0 {
		t.Errorf("observer cancelled mid-notify was still called %d times", second)
	}
	if a.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", a.SubscriberCount())
	}
}

func TestSubscriptionsCancelAll(t *testing.T) {
	a := New("One", Positive)
	b := New("Two", Neutral)

	var bag Subscriptions
	bag.Add(a.Subscribe(func(bool) {}))
	bag.Add(b.Subscribe(func(bool) {}))
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}

	bag.CancelAll()
	if a.SubscriberCount() != 0 || b.SubscriberCount() != 0 {
		t.Errorf("subscribers left after CancelAll: %d, %d", a.SubscriberCount(), b.SubscriberCount())
	}
	if bag.Len() != 0 {
		t.Errorf("Len() after CancelAll = %d, want 0", bag.Len())
	}
}
