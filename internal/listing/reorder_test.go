package listing

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/five82/mediabrowse/internal/media"
)

func entries(names ...string) []media.Entry {
	out := make([]media.Entry, len(names))
	for i, n := range names {
		out[i] = media.NewEntry(n)
	}
	return out
}

func TestReorder_PreferredCategoriesFirst(t *testing.T) {
	got := media.Names(Reorder(entries("music/", "movies/", "tv/", "anime/"), []string{"movies/", "tv/"}))
	want := []string{"movies/", "tv/", "music/", "anime/"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Reorder = %v, want %v", got, want)
	}
}

func TestReorder_NoPreferenceKeepsOrder(t *testing.T) {
	in := entries("c/", "a/", "b.mkv")
	got := media.Names(Reorder(in, nil))
	if !reflect.DeepEqual(got, media.Names(in)) {
		t.Fatalf("Reorder without preferences = %v, want input order", got)
	}
}

func TestReorder_DoesNotMutateInput(t *testing.T) {
	in := entries("b/", "a/")
	_ = Reorder(in, []string{"a/"})
	if in[0].Name != "b/" {
		t.Fatalf("input mutated: %v", media.Names(in))
	}
}

func TestReorder_StablePermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []string{"movies/", "tv/", "music/", "anime/", "a.mkv", "b.mp4"}
	preferred := []string{"tv/", "movies/"}

	for round := 0; round < 200; round++ {
		n := rng.Intn(12)
		in := make([]media.Entry, n)
		for i := range in {
			// Kind carries the input index so relative order can be checked.
			in[i] = media.Entry{Name: pool[rng.Intn(len(pool))], Kind: media.Kind(i)}
		}
		out := Reorder(in, preferred)

		if len(out) != len(in) {
			t.Fatalf("round %d: len = %d, want %d", round, len(out), len(in))
		}
		if !samePermutation(in, out) {
			t.Fatalf("round %d: output is not a permutation of input", round)
		}
		rank := map[string]int{"tv/": 1, "movies/": 2}
		for i := 1; i < len(out); i++ {
			ki, kj := keyOf(rank, out[i-1]), keyOf(rank, out[i])
			if ki > kj {
				t.Fatalf("round %d: keys out of order at %d", round, i)
			}
			if ki == kj && out[i-1].Kind > out[i].Kind {
				t.Fatalf("round %d: equal keys lost input order at %d", round, i)
			}
		}
	}
}

func keyOf(rank map[string]int, e media.Entry) int {
	if r, ok := rank[e.Name]; ok {
		return r
	}
	return len(rank) + 1
}

func samePermutation(a, b []media.Entry) bool {
	ka := make([]string, len(a))
	kb := make([]string, len(b))
	for i := range a {
		ka[i] = fmt.Sprintf("%s|%d", a[i].Name, a[i].Kind)
		kb[i] = fmt.Sprintf("%s|%d", b[i].Name, b[i].Kind)
	}
	sort.Strings(ka)
	sort.Strings(kb)
	return reflect.DeepEqual(ka, kb)
}
