package scan

import (
	"sort"
)

// Index maps parent directory to instrument to note to the set of channels.
type Index map[string]map[string]map[string]map[string]struct{}

// Add records a sample under parent.
func (idx Index) Add(parent string, s Sample) {
	instruments, ok := idx[parent]
	if !ok {
		instruments = make(map[string]map[string]map[string]struct{})
		idx[parent] = instruments
	}
	notes, ok := instruments[s.Instrument]
	if !ok {
		notes = make(map[string]map[string]struct{})
		instruments[s.Instrument] = notes
	}
	channels, ok := notes[s.Note]
	if !ok {
		channels = make(map[string]struct{})
		notes[s.Note] = channels
	}
	channels[s.Channel] = struct{}{}
}

// Conflict is an instrument whose channels repeat across notes.
type Conflict struct {
	Parent     string              `json:"parent"`
	Instrument string              `json:"instrument"`
	Notes      map[string][]string `json:"notes"`
	Duplicates []string            `json:"duplicates"`
}

// Conflicts returns every conflicting parent/instrument, ordered by parent
// then instrument.
func (idx Index) Conflicts() []Conflict {
	var out []Conflict
	for _, parent := range sortedKeys(idx) {
		instruments := idx[parent]
		for _, instrument := range sortedKeys(instruments) {
			notes := instruments[instrument]
			counts := make(map[string]int)
			view := make(map[string][]string, len(notes))
			for note, channels := range notes {
				list := sortedKeys(channels)
				view[note] = list
				for _, channel := range list {
					counts[channel]++
				}
			}
			var dupes []string
			for channel, n := range counts {
				if n > 1 {
					dupes = append(dupes, channel)
				}
			}
			if len(dupes) == 0 {
				continue
			}
			sort.Strings(dupes)
			out = append(out, Conflict{
				Parent:     parent,
				Instrument: instrument,
				Notes:      view,
				Duplicates: dupes,
			})
		}
	}
	return out
}

// SortedNotes returns the conflict's notes in lexical order.
func (c Conflict) SortedNotes() []string {
	return sortedKeys(c.Notes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
