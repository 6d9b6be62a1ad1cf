package testing

import (
	"context"
	"testing"

	"github.com/cachehub/cachehub/lib/backend"
)

// BackendFactory is a function that creates a new instance of a backend
// implementation under test. The suite operates on string values.
type BackendFactory func() backend.IBackend[string]

// RunBackendTests runs a comprehensive conformance suite for a backend
// implementation.
func RunBackendTests(t *testing.T, name string, factory BackendFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Put&Get", func(t *testing.T) {
			testPutGet(t, factory())
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory())
		})

		t.Run("List", func(t *testing.T) {
			testList(t, factory())
		})

		t.Run("ListPagination", func(t *testing.T) {
			testListPagination(t, factory())
		})

		t.Run("Clear", func(t *testing.T) {
			testClear(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// requireClear probes the optional clear capability.
// Skip the test if it is not supported.
func requireClear(t testing.TB, b backend.IBackend[string]) backend.IClearableBackend[string] {
	c, ok := backend.SupportsClear(b)
	if !ok {
		t.Skip()
	}
	return c
}

func mustPut(t testing.TB, b backend.IBackend[string], key, value string) {
	if err := b.PutItem(context.Background(), key, value); err != nil {
		t.Fatalf("PutItem(%q) failed: %v", key, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testPutGet(t *testing.T, b backend.IBackend[string]) {
	ctx := context.Background()

	testKey := "test-key"
	testValue1 := "test-value1"
	testValue2 := "test-value2"

	mustPut(t, b, testKey, testValue1)

	result, loaded, err := b.GetItem(ctx, testKey)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if !loaded {
		t.Errorf("Expected key %s to exist after PutItem", testKey)
	}
	if result != testValue1 {
		t.Errorf("Expected value %s, got %s", testValue1, result)
	}

	// Overwrite
	mustPut(t, b, testKey, testValue2)

	result, loaded, err = b.GetItem(ctx, testKey)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if !loaded {
		t.Errorf("Expected key %s to exist after overwrite", testKey)
	}
	if result != testValue2 {
		t.Errorf("Expected value %s, got %s", testValue2, result)
	}

	_, loaded, err = b.GetItem(ctx, "nonexistent-key")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if loaded {
		t.Errorf("Expected nonexistent key to return loaded=false")
	}
}

func testRemove(t *testing.T, b backend.IBackend[string]) {
	ctx := context.Background()

	testKey := "remove-key"
	mustPut(t, b, testKey, "remove-value")

	if err := b.RemoveItem(ctx, testKey); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}

	_, loaded, err := b.GetItem(ctx, testKey)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if loaded {
		t.Errorf("Expected key %s to be gone after RemoveItem", testKey)
	}

	// Removing a missing key must not error
	if err := b.RemoveItem(ctx, "nonexistent-key"); err != nil {
		t.Errorf("RemoveItem of missing key should not error, got %v", err)
	}
}

func testList(t *testing.T, b backend.IBackend[string]) {
	ctx := context.Background()

	mustPut(t, b, "b", "2")
	mustPut(t, b, "a", "1")
	mustPut(t, b, "c", "3")

	res, err := b.ListItems(ctx, backend.ListOptions{})
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}

	if len(res.Data) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(res.Data))
	}
	if res.TotalResults != 3 {
		t.Errorf("Expected TotalResults=3, got %d", res.TotalResults)
	}

	// Default order is ascending by key
	for i, want := range []string{"a", "b", "c"} {
		if res.Data[i].Key != want {
			t.Errorf("Expected key %s at position %d, got %s", want, i, res.Data[i].Key)
		}
	}
}

func testListPagination(t *testing.T, b backend.IBackend[string]) {
	ctx := context.Background()

	keys := []string{"k1", "k2", "k3", "k4", "k5"}
	for _, key := range keys {
		mustPut(t, b, key, "v-"+key)
	}

	res, err := b.ListItems(ctx, backend.ListOptions{Page: 2, ResultsPerPage: 2})
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}

	if len(res.Data) != 2 {
		t.Fatalf("Expected 2 entries on page 2, got %d", len(res.Data))
	}
	if res.Data[0].Key != "k3" || res.Data[1].Key != "k4" {
		t.Errorf("Expected keys k3,k4 on page 2, got %s,%s", res.Data[0].Key, res.Data[1].Key)
	}
	if res.TotalResults != 5 {
		t.Errorf("Expected TotalResults=5, got %d", res.TotalResults)
	}
	if res.TotalPages != 3 {
		t.Errorf("Expected TotalPages=3, got %d", res.TotalPages)
	}

	// Out-of-range page yields empty data, not an error
	res, err = b.ListItems(ctx, backend.ListOptions{Page: 9, ResultsPerPage: 2})
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(res.Data) != 0 {
		t.Errorf("Expected empty page for out-of-range query, got %d entries", len(res.Data))
	}
}

func testClear(t *testing.T, b backend.IBackend[string]) {
	ctx := context.Background()
	c := requireClear(t, b)

	mustPut(t, b, "x", "1")
	mustPut(t, b, "y", "2")

	if err := c.ClearItems(ctx); err != nil {
		t.Fatalf("ClearItems failed: %v", err)
	}

	res, err := b.ListItems(ctx, backend.ListOptions{})
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(res.Data) != 0 {
		t.Errorf("Expected empty backend after ClearItems, got %d entries", len(res.Data))
	}
}
