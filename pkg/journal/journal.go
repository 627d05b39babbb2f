// Package journal keeps the bounded history of significant game events.
// Entries are formatted strings prefixed with the turn number at the time
// of recording. The log holds at most Capacity entries; once full, the
// oldest entries are evicted first.
package journal

import (
	"encoding/json"
	"fmt"
)

// Capacity is the maximum number of retained entries.
const Capacity = 50

// Journal is an ordered FIFO event log. The zero value is ready to use.
type Journal struct {
	entries []string
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{entries: make([]string, 0, Capacity)}
}

// Record appends an event, prefixed with the given turn number, evicting
// the oldest entries if the journal is over capacity.
func (j *Journal) Record(turn int, event string) {
	j.entries = append(j.entries, fmt.Sprintf("Turn %d: %s", turn, event))
	if len(j.entries) > Capacity {
		j.entries = j.entries[len(j.entries)-Capacity:]
	}
}

// Entries returns a copy of all retained entries, oldest first.
func (j *Journal) Entries() []string {
	out := make([]string, len(j.entries))
	copy(out, j.entries)
	return out
}

// Recent returns up to n of the newest entries, oldest first.
func (j *Journal) Recent(n int) []string {
	if n <= 0 || len(j.entries) == 0 {
		return nil
	}
	if n > len(j.entries) {
		n = len(j.entries)
	}
	out := make([]string, n)
	copy(out, j.entries[len(j.entries)-n:])
	return out
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// MarshalJSON serializes the journal as a plain string array, the shape
// used by the save document.
func (j *Journal) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.entries)
}

// UnmarshalJSON restores the journal from a string array, re-applying the
// capacity bound in case the document was produced by an older build.
func (j *Journal) UnmarshalJSON(data []byte) error {
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if len(entries) > Capacity {
		entries = entries[len(entries)-Capacity:]
	}
	j.entries = entries
	return nil
}
