package history

import (
	"context"
	"testing"
)

// fixedClock returns a clock starting at base, advancing by step per call.
func fixedClock(base, step int64) func() int64 {
	next := base
	return func() int64 {
		ts := next
		next += step
		return ts
	}
}

func TestAppend_ThenElementRecords(t *testing.T) {
	s := openTestStore(t, Options{})
	ctx := context.Background()

	rec, err := s.Append(ctx, "u1@#/home", "username", "alice", KindForm)
	if err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	if rec.Element != "username" || rec.Value != "alice" || rec.Kind != KindForm {
		t.Errorf("returned record = %+v", rec)
	}
	if rec.Timestamp == 0 {
		t.Error("returned record has zero timestamp")
	}

	records, err := s.ElementRecords(ctx, "u1@#/home", "username")
	if err != nil {
		t.Fatalf("ElementRecords() failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	last := records[len(records)-1]
	if last.Element != "username" || last.Value != "alice" {
		t.Errorf("last record = %+v", last)
	}
}

func TestAppend_EmptyKindDefaultsToForm(t *testing.T) {
	s := openTestStore(t, Options{})

	rec, err := s.Append(context.Background(), "u1@#/home", "username", "alice", "")
	if err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	if rec.Kind != KindForm {
		t.Errorf("kind = %q, want %q", rec.Kind, KindForm)
	}
}

func TestAppend_PreservesCaptureOrder(t *testing.T) {
	s := openTestStore(t, Options{Clock: fixedClock(1000, 0)}) // all timestamps tie
	ctx := context.Background()

	for _, v := range []string{"a", "b", "c"} {
		if _, err := s.Append(ctx, "u1@#/home", "field", v, KindForm); err != nil {
			t.Fatalf("Append(%q) failed: %v", v, err)
		}
	}

	records, err := s.ElementRecords(ctx, "u1@#/home", "field")
	if err != nil {
		t.Fatalf("ElementRecords() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i, want := range []string{"a", "b", "c"} {
		if records[i].Value != want {
			t.Errorf("records[%d].Value = %q, want %q", i, records[i].Value, want)
		}
	}
}

func TestAppend_CapacityEnforced(t *testing.T) {
	const limit = 3
	s := openTestStore(t, Options{MaxRecordsPerElement: limit})
	ctx := context.Background()

	for i := 0; i < limit; i++ {
		if _, err := s.Append(ctx, "u1@#/home", "username", "v", KindForm); err != nil {
			t.Fatalf("Append() %d failed: %v", i, err)
		}
	}

	_, err := s.Append(ctx, "u1@#/home", "username", "overflow", KindForm)
	if !IsCapacityError(err) {
		t.Fatalf("Append() over cap: got err %v, want CapacityError", err)
	}

	// The failed append must not have mutated state.
	records, err := s.ElementRecords(ctx, "u1@#/home", "username")
	if err != nil {
		t.Fatalf("ElementRecords() failed: %v", err)
	}
	if len(records) != limit {
		t.Errorf("stored count = %d, want %d", len(records), limit)
	}
}

func TestAppend_CapacityIsPerElement(t *testing.T) {
	s := openTestStore(t, Options{MaxRecordsPerElement: 1})
	ctx := context.Background()

	if _, err := s.Append(ctx, "u1@#/home", "username", "a", KindForm); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	// Another element under the same key has its own budget.
	if _, err := s.Append(ctx, "u1@#/home", "email", "b", KindForm); err != nil {
		t.Errorf("Append() for second element failed: %v", err)
	}
	// Same element under another key too.
	if _, err := s.Append(ctx, "u1@#/about", "username", "c", KindForm); err != nil {
		t.Errorf("Append() under second key failed: %v", err)
	}
}

func TestDeleteElement_FiltersAndRewrites(t *testing.T) {
	s := openTestStore(t, Options{})
	ctx := context.Background()

	mustAppend(t, s, "u1@#/home", "username", "alice")
	mustAppend(t, s, "u1@#/home", "agree", "true")
	mustAppend(t, s, "u1@#/home", "username", "bob")

	if err := s.DeleteElement(ctx, "u1@#/home", "username"); err != nil {
		t.Fatalf("DeleteElement() failed: %v", err)
	}

	entry, found, err := s.Entry(ctx, "u1@#/home")
	if err != nil {
		t.Fatalf("Entry() failed: %v", err)
	}
	if !found {
		t.Fatal("entry removed although other elements remain")
	}
	if len(entry.Records) != 1 || entry.Records[0].Element != "agree" {
		t.Errorf("remaining records = %+v, want only agree", entry.Records)
	}
}

func TestDeleteElement_RemovesEmptyEntry(t *testing.T) {
	s := openTestStore(t, Options{})
	ctx := context.Background()

	mustAppend(t, s, "u1@#/home", "username", "alice")

	if err := s.DeleteElement(ctx, "u1@#/home", "username"); err != nil {
		t.Fatalf("DeleteElement() failed: %v", err)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("keys = %v, want empty", keys)
	}
}

func TestDeleteElement_MissingKeyIsNoop(t *testing.T) {
	s := openTestStore(t, Options{})

	if err := s.DeleteElement(context.Background(), "u1@#/nowhere", "username"); err != nil {
		t.Errorf("DeleteElement() on missing key: %v", err)
	}
}

func TestClear_RemovesEverything(t *testing.T) {
	s := openTestStore(t, Options{})
	ctx := context.Background()

	mustAppend(t, s, "u1@#/home", "username", "alice")
	mustAppend(t, s, "u2@#/about", "bio", "hi")

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	snapshot, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(snapshot) != 0 {
		t.Errorf("snapshot = %v, want empty", snapshot)
	}
}

func mustAppend(t *testing.T, s *Store, key, element, value string) {
	t.Helper()
	if _, err := s.Append(context.Background(), key, element, value, KindForm); err != nil {
		t.Fatalf("Append(%s, %s) failed: %v", key, element, err)
	}
}
