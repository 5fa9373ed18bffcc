package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIPStableAndSalted(t *testing.T) {
	s := setupStore(t)
	h1 := s.HashIP("192.0.2.1")
	h2 := s.HashIP("192.0.2.1")
	if h1 != h2 {
		t.Error("same IP should hash identically within one store")
	}
	if h1 == s.HashIP("192.0.2.2") {
		t.Error("different IPs should hash differently")
	}
	if h1 == "192.0.2.1" || len(h1) != 64 {
		t.Errorf("hash %q does not look like a sha256 digest", h1)
	}

	// A second database gets its own salt, so hashes differ across stores.
	other := setupStore(t)
	if other.HashIP("192.0.2.1") == h1 {
		t.Error("stores with independent salts should not agree on hashes")
	}
}

func TestSaltPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analytics.db")
	s1, err := NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	h := s1.HashIP("192.0.2.1")
	s1.Close()

	s2, err := NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if s2.HashIP("192.0.2.1") != h {
		t.Error("reopened store should reuse the stored salt")
	}
}

func TestSummaryAggregates(t *testing.T) {
	s := setupStore(t)
	now := time.Now().UTC()
	visits := []Visit{
		{IPHash: s.HashIP("a"), Path: "/blog/post-one", Timestamp: now},
		{IPHash: s.HashIP("a"), Path: "/blog/post-one", Timestamp: now},
		{IPHash: s.HashIP("b"), Path: "/publications", Timestamp: now},
		{IPHash: s.HashIP("c"), Path: "/blog/post-one", Timestamp: now.AddDate(0, 0, -60)},
	}
	for _, v := range visits {
		if err := s.RecordVisit(v); err != nil {
			t.Fatalf("record visit: %v", err)
		}
	}

	res, err := s.Summary(now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalVisits != 3 {
		t.Errorf("TotalVisits = %d, want 3", res.TotalVisits)
	}
	if res.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", res.UniqueVisitors)
	}
	if len(res.TopPaths) != 2 || res.TopPaths[0].Path != "/blog/post-one" || res.TopPaths[0].Count != 2 {
		t.Errorf("TopPaths = %v", res.TopPaths)
	}
}

func TestPurgeOlderThan(t *testing.T) {
	s := setupStore(t)
	now := time.Now().UTC()
	recent := Visit{IPHash: s.HashIP("a"), Path: "/", Timestamp: now}
	old := Visit{IPHash: s.HashIP("b"), Path: "/", Timestamp: now.AddDate(0, 0, -400)}
	for _, v := range []Visit{recent, old} {
		if err := s.RecordVisit(v); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.PurgeOlderThan(365)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("purged %d rows, want 1", n)
	}

	res, err := s.Summary(now.AddDate(-10, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalVisits != 1 {
		t.Errorf("TotalVisits after purge = %d, want 1", res.TotalVisits)
	}
}
