package cache

import "testing"

func TestGetReturnsStoredValue(t *testing.T) {
	store := NewVersioned()
	store.Set("campaign_matches:shop-1", "k1", []string{"c1", "c2"})

	value, found := store.Get("campaign_matches:shop-1", "k1")
	if !found {
		t.Fatalf("expected cache hit")
	}
	ids, ok := value.([]string)
	if !ok || len(ids) != 2 {
		t.Fatalf("unexpected cached value: %#v", value)
	}
}

func TestBumpVersionInvalidatesNamespace(t *testing.T) {
	store := NewVersioned()
	store.Set("ns-a", "k1", "stale")
	store.Set("ns-b", "k1", "kept")

	store.BumpVersion("ns-a")

	if _, found := store.Get("ns-a", "k1"); found {
		t.Fatalf("expected bumped namespace to drop entries")
	}
	if _, found := store.Get("ns-b", "k1"); !found {
		t.Fatalf("expected untouched namespace to keep entries")
	}
	if store.Version("ns-a") != 1 {
		t.Fatalf("expected generation 1, got %d", store.Version("ns-a"))
	}
}

func TestSetAfterBumpUsesNewGeneration(t *testing.T) {
	store := NewVersioned()
	store.Set("ns", "k", "old")
	store.BumpVersion("ns")
	store.Set("ns", "k", "new")

	value, found := store.Get("ns", "k")
	if !found || value != "new" {
		t.Fatalf("expected fresh entry after bump, got %v found=%v", value, found)
	}
}
