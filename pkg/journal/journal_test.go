package journal

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestJournal_Record(t *testing.T) {
	j := New()
	j.Record(1, "Found Rusty Key")
	j.Record(3, "Traveled from Village to Dark Cave")

	entries := j.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0] != "Turn 1: Found Rusty Key" {
		t.Errorf("entry 0 = %q", entries[0])
	}
	if entries[1] != "Turn 3: Traveled from Village to Dark Cave" {
		t.Errorf("entry 1 = %q", entries[1])
	}
}

func TestJournal_CapacityEvictsOldest(t *testing.T) {
	j := New()
	for i := 1; i <= Capacity+10; i++ {
		j.Record(i, fmt.Sprintf("event %d", i))
	}

	if j.Len() != Capacity {
		t.Fatalf("len = %d, want %d", j.Len(), Capacity)
	}

	entries := j.Entries()
	if entries[0] != "Turn 11: event 11" {
		t.Errorf("oldest surviving entry = %q, want eviction of the first 10", entries[0])
	}
	last := entries[len(entries)-1]
	if last != fmt.Sprintf("Turn %d: event %d", Capacity+10, Capacity+10) {
		t.Errorf("newest entry = %q", last)
	}
}

func TestJournal_Recent(t *testing.T) {
	j := New()
	for i := 1; i <= 5; i++ {
		j.Record(i, fmt.Sprintf("event %d", i))
	}

	recent := j.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("got %d entries, want 3", len(recent))
	}
	if recent[0] != "Turn 3: event 3" || recent[2] != "Turn 5: event 5" {
		t.Errorf("recent = %v", recent)
	}

	// Asking for more than exists returns everything.
	all := j.Recent(100)
	if len(all) != 5 {
		t.Errorf("got %d entries, want 5", len(all))
	}
}

func TestJournal_JSONRoundTrip(t *testing.T) {
	j := New()
	j.Record(2, "Defeated Goblin in combat")

	data, err := json.Marshal(j)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["Turn 2: Defeated Goblin in combat"]` {
		t.Errorf("marshaled form = %s", data)
	}

	restored := New()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restored.Len() != 1 || restored.Entries()[0] != "Turn 2: Defeated Goblin in combat" {
		t.Errorf("restored = %v", restored.Entries())
	}
}
