package listing

import (
	"sort"

	"github.com/five82/mediabrowse/internal/media"
)

// Reorder returns entries with names listed in preferred first, in the order
// preferred gives them. Everything else follows in input order. The sort is
// stable and the input slice is left untouched.
func Reorder(entries []media.Entry, preferred []string) []media.Entry {
	out := make([]media.Entry, len(entries))
	copy(out, entries)
	if len(preferred) == 0 || len(out) < 2 {
		return out
	}

	rank := make(map[string]int, len(preferred))
	for i, name := range preferred {
		if _, seen := rank[name]; !seen {
			rank[name] = i + 1
		}
	}
	key := func(e media.Entry) int {
		if r, ok := rank[e.Name]; ok {
			return r
		}
		return len(preferred) + 1
	}
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) < key(out[j])
	})
	return out
}
