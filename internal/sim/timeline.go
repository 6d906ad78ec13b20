package sim

import (
	"fmt"
	"io"
	"strings"
)

// EntryKind classifies timeline entries
type EntryKind string

const (
	EntryShown     EntryKind = "shown"
	EntryHidden    EntryKind = "hidden"
	EntryAction    EntryKind = "action"
	EntryInitError EntryKind = "init-error"
	EntryError     EntryKind = "error"
)

// Entry is one recorded happening
type Entry struct {
	Frame  uint64
	Time   float64
	Object string
	Kind   EntryKind
	Detail string
}

func (e Entry) String() string {
	s := fmt.Sprintf("%6d  %7.3fs  %-12s %-10s", e.Frame, e.Time, e.Object, e.Kind)
	if e.Detail != "" {
		s += " " + e.Detail
	}
	return strings.TrimRight(s, " ")
}

// Timeline records what happened during a simulation
type Timeline struct {
	Entries []Entry
}

func (t *Timeline) add(e Entry) {
	t.Entries = append(t.Entries, e)
}

// Filter returns the entries of the given kind for object. An empty
// object matches every object.
func (t *Timeline) Filter(object string, kind EntryKind) []Entry {
	var out []Entry
	for _, e := range t.Entries {
		if (object == "" || e.Object == object) && e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of entries of kind for object
func (t *Timeline) Count(object string, kind EntryKind) int {
	return len(t.Filter(object, kind))
}

// Print writes one line per entry
func (t *Timeline) Print(w io.Writer) {
	fmt.Fprintf(w, "%6s  %8s  %-12s %-10s %s\n", "FRAME", "TIME", "OBJECT", "EVENT", "DETAIL")
	for _, e := range t.Entries {
		fmt.Fprintln(w, e.String())
	}
}
