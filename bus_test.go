package confetti

import "testing"

func TestBusPublishOrder(t *testing.T) {
	b := NewTriggerBus()
	var got []string
	b.Subscribe(func(p Placement) { got = append(got, "a:"+p.String()) })
	b.Subscribe(func(p Placement) { got = append(got, "b:"+p.String()) })
	b.Publish(PlacementFar)

	want := []string{"a:far", "b:far"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	b := NewTriggerBus()
	b.Publish(PlacementBoth) // must not panic
	if b.Len() != 0 {
		t.Errorf("Len = %d, want 0", b.Len())
	}
}

func TestBusUnsubscribe(t *testing.T) {
	b := NewTriggerBus()
	calls := 0
	tok := b.Subscribe(func(Placement) { calls++ })
	if tok == 0 {
		t.Error("token should not be zero")
	}
	b.Publish(PlacementNear)
	if !b.Unsubscribe(tok) {
		t.Error("Unsubscribe = false, want true")
	}
	if b.Unsubscribe(tok) {
		t.Error("second Unsubscribe = true, want false")
	}
	if b.Unsubscribe(Token(999)) {
		t.Error("Unsubscribe of unknown token = true, want false")
	}
	b.Publish(PlacementNear)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBusTokensUnique(t *testing.T) {
	b := NewTriggerBus()
	noop := func(Placement) {}
	t1 := b.Subscribe(noop)
	b.Unsubscribe(t1)
	t2 := b.Subscribe(noop)
	if t1 == t2 {
		t.Errorf("token reused: %d", t1)
	}
}

func TestBusRemoveDuringPublish(t *testing.T) {
	b := NewTriggerBus()
	var second Token
	calls := 0
	b.Subscribe(func(Placement) { b.Unsubscribe(second) })
	second = b.Subscribe(func(Placement) { calls++ })
	b.Publish(PlacementBoth)
	if calls != 0 {
		t.Errorf("removed subscriber called %d times, want 0", calls)
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1", b.Len())
	}
}

func TestBusSubscribeDuringPublish(t *testing.T) {
	b := NewTriggerBus()
	late := 0
	added := false
	b.Subscribe(func(Placement) {
		if !added {
			added = true
			b.Subscribe(func(Placement) { late++ })
		}
	})
	b.Publish(PlacementNear)
	if late != 0 {
		t.Errorf("subscriber added during publish ran %d times, want 0", late)
	}
	b.Publish(PlacementNear)
	if late != 1 {
		t.Errorf("late = %d, want 1", late)
	}
}

func TestBusNilHandlerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewTriggerBus().Subscribe(nil)
}
