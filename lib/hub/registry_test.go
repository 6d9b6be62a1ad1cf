package hub

import (
	"context"
	"testing"
)

// topLevelListener exists so identity de-duplication can be tested with a
// stable code pointer.
func topLevelListener(_ string, _ *string, _ string) {}

func TestSubscribeValidation(t *testing.T) {
	r := newSubscriberRegistry[string]()

	_, err := r.add(nil)
	requireCode(t, err, RetCInvalidSubscriber)

	_, err = r.addScoped(nil, []string{"users"}, nil)
	requireCode(t, err, RetCInvalidSubscriber)

	_, err = r.addScoped(topLevelListener, nil, nil)
	requireCode(t, err, RetCEmptyScope)
}

func TestSubscribeIdempotent(t *testing.T) {
	r := newSubscriberRegistry[string]()

	if _, err := r.add(topLevelListener); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	unsub2, err := r.add(topLevelListener)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if r.size() != 1 {
		t.Errorf("Expected identical listener to be registered once, got %d entries", r.size())
	}

	// The no-op unsubscribe of the duplicate must not remove the original
	unsub2()
	if r.size() != 1 {
		t.Errorf("Expected duplicate unsubscribe to be a no-op, got %d entries", r.size())
	}
}

func TestSubscribeDistinctClosures(t *testing.T) {
	r := newSubscriberRegistry[string]()

	var fired []int
	makeListener := func(id int) Listener[string] {
		return func(_ string, _ *string, _ string) {
			fired = append(fired, id)
		}
	}

	// Two closures from the same factory are distinct listeners, not
	// re-registrations of one
	if _, err := r.add(makeListener(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := r.add(makeListener(2)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if r.size() != 2 {
		t.Fatalf("Expected both closures registered, got %d entries", r.size())
	}

	r.notify("k", nil, "")
	if len(fired) != 2 || fired[0] != 1 || fired[1] != 2 {
		t.Errorf("Expected both closures to fire in order, got %v", fired)
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	r := newSubscriberRegistry[string]()

	unsub, err := r.add(topLevelListener)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	unsub()
	if r.size() != 0 {
		t.Fatalf("Expected empty registry after unsubscribe, got %d", r.size())
	}

	// Second call must be harmless
	unsub()
	if r.size() != 0 {
		t.Errorf("Expected unsubscribe to stay idempotent, got %d", r.size())
	}
}

func TestNotificationOrder(t *testing.T) {
	r := newSubscriberRegistry[string]()

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		// Scoped registrations are never de-duplicated, so they give us
		// three distinct closures over the same literal
		if _, err := r.addScoped(func(_ string, _ *string, _ string) {
			order = append(order, i)
		}, []string{"users"}, nil); err != nil {
			t.Fatalf("addScoped failed: %v", err)
		}
	}

	r.notify("k", nil, "users")

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("Expected registration order 1,2,3, got %v", order)
	}
}

func TestScopedFiltering(t *testing.T) {
	r := newSubscriberRegistry[string]()

	var events []event
	listener := func(key string, value *string, storeName string) {
		events = append(events, event{key: key, value: value, store: storeName})
	}

	if _, err := r.addScoped(listener, []string{"users"}, nil); err != nil {
		t.Fatalf("addScoped failed: %v", err)
	}

	// Wrong store, default store and the subscribed store
	r.notify("k1", nil, "items")
	r.notify("k2", nil, "")
	r.notify("k3", sp("v"), "users")

	if len(events) != 1 {
		t.Fatalf("Expected exactly one delivery, got %d: %v", len(events), events)
	}
	if events[0].key != "k3" || events[0].store != "users" {
		t.Errorf("Expected (k3, users), got %v", events[0])
	}
}

func TestScopedPredicate(t *testing.T) {
	r := newSubscriberRegistry[string]()

	var got []string
	listener := func(key string, _ *string, _ string) {
		got = append(got, key)
	}
	predicate := func(key string, _ *string, _ string) bool {
		return key != "ignored"
	}

	if _, err := r.addScoped(listener, []string{"users"}, predicate); err != nil {
		t.Fatalf("addScoped failed: %v", err)
	}

	r.notify("ignored", nil, "users")
	r.notify("wanted", nil, "users")

	if len(got) != 1 || got[0] != "wanted" {
		t.Errorf("Expected only the predicate-approved key, got %v", got)
	}
}

func TestMutationDuringFanOut(t *testing.T) {
	r := newSubscriberRegistry[string]()

	var secondFired bool
	var unsubSecond Unsubscribe

	// The first listener removes the second mid fan-out; the pass iterates
	// a snapshot, so the second listener still fires this time
	if _, err := r.addScoped(func(_ string, _ *string, _ string) {
		unsubSecond()
	}, []string{"users"}, nil); err != nil {
		t.Fatalf("addScoped failed: %v", err)
	}

	var err error
	unsubSecond, err = r.addScoped(func(_ string, _ *string, _ string) {
		secondFired = true
	}, []string{"users"}, nil)
	if err != nil {
		t.Fatalf("addScoped failed: %v", err)
	}

	r.notify("k", nil, "users")

	if !secondFired {
		t.Error("Expected the already-selected listener to fire despite removal")
	}
	if r.size() != 1 {
		t.Errorf("Expected the removal to stick for later passes, got %d entries", r.size())
	}

	// The next pass no longer reaches the removed listener
	secondFired = false
	r.notify("k", nil, "users")
	if secondFired {
		t.Error("Expected removed listener to stay silent on the next pass")
	}
}

func TestListenerPanicPropagates(t *testing.T) {
	ctx := context.Background()
	h, _ := newStartedHub(t, nil)

	var laterFired bool
	unsubPanicking, err := h.SubscribeToCaches(func(_ string, _ *string, _ string) {
		panic("listener blew up")
	}, []string{"users", ""}, nil)
	if err != nil {
		t.Fatalf("SubscribeToCaches failed: %v", err)
	}
	if _, err := h.SubscribeToCaches(func(_ string, _ *string, _ string) {
		laterFired = true
	}, []string{"users", ""}, nil); err != nil {
		t.Fatalf("SubscribeToCaches failed: %v", err)
	}

	// A panic in one listener is not isolated: it reaches the caller of
	// the triggering operation and cuts off later listeners in that pass
	func() {
		defer func() {
			if recover() == nil {
				t.Error("Expected the listener panic to reach the caller of CacheItem")
			}
		}()
		_, _ = h.CacheItem(ctx, "k", sp("v"), "users")
	}()
	if laterFired {
		t.Error("Expected the panic to cut off listeners behind the panicking one")
	}

	// The registry itself stays intact: removing the panicking listener
	// lets the next fan-out reach the remaining listener
	unsubPanicking()
	if _, err := h.CacheItem(ctx, "k", sp("v"), "users"); err != nil {
		t.Fatalf("CacheItem failed: %v", err)
	}
	if !laterFired {
		t.Error("Expected fan-out to keep working after a panicking pass")
	}
}

func TestScopedListenerNoCrossStoreFanOut(t *testing.T) {
	h, _ := newStartedHub(t, nil)

	var fired bool
	if _, err := h.SubscribeToCaches(func(_ string, _ *string, _ string) {
		fired = true
	}, []string{"users"}, nil); err != nil {
		t.Fatalf("SubscribeToCaches failed: %v", err)
	}

	// Default-store write: scoped listener must stay silent
	v := "v"
	if _, err := h.CacheItem(context.Background(), "k", &v, ""); err != nil {
		t.Fatalf("CacheItem failed: %v", err)
	}
	if fired {
		t.Error("Expected no cross-store fan-out for the default store")
	}
}
