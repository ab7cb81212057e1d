package resume

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/mediabrowse/internal/location"
	"github.com/five82/mediabrowse/internal/media"
	"github.com/five82/mediabrowse/internal/playlist"
)

type mapLister map[string][]string

func (m mapLister) List(_ context.Context, loc location.Location) []media.Entry {
	var out []media.Entry
	for _, name := range m[loc.String()] {
		out = append(out, media.NewEntry(name))
	}
	return out
}

func queueOf(loc location.Location, names ...string) playlist.Queue {
	var entries []media.Entry
	for _, n := range names {
		entries = append(entries, media.NewEntry(n))
	}
	return playlist.FromEntries(loc, entries)
}

func TestRebuild_KeepsPositionAndPicksUpNewItems(t *testing.T) {
	show := location.Parse("http://h/show")
	old := queueOf(show, "Ep 2.mkv", "Ep 3.mkv")
	lister := mapLister{"http://h/show": {"Ep 1.mkv", "Ep 2.mkv", "Ep 3.mkv", "Ep 4.mkv", "notes.txt"}}

	got := Rebuild(context.Background(), lister, old).Locators()
	want := queueOf(show, "Ep 2.mkv", "Ep 3.mkv", "Ep 4.mkv").Locators()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rebuild = %v, want %v", got, want)
	}
}

func TestRebuild_RenamedAnchorFallsToNextSurvivor(t *testing.T) {
	show := location.Parse("/m/show")
	old := queueOf(show, "Ep 2.mkv", "Ep 3.mkv")
	lister := mapLister{"/m/show": {"Ep 1.mkv", "Ep 2 (renamed).mkv", "Ep 3.mkv"}}

	got := Rebuild(context.Background(), lister, old).Locators()
	want := []string{filepath.Join("/m/show", "Ep 3.mkv")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rebuild = %v, want %v", got, want)
	}
}

func TestRebuild_UnreachableParentIsEmpty(t *testing.T) {
	old := queueOf(location.Parse("http://h/gone"), "a.mkv")
	if got := Rebuild(context.Background(), mapLister{}, old); !got.IsEmpty() {
		t.Fatalf("Rebuild = %v, want empty", got.Locators())
	}
}

func TestPollAll_RewritesSlots(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, nil, zerolog.Nop())
	show := location.Parse("http://h/show")

	writeArtifact(t, cache.SlotPath("Ep 2.mkv.m3u"), queueOf(show, "Ep 2.mkv"))
	writeArtifact(t, cache.SlotPath("gone.mkv.m3u"), queueOf(location.Parse("http://h/gone"), "gone.mkv"))
	writeArtifact(t, cache.SlotPath("same.mkv.m3u"), queueOf(location.Parse("http://h/same"), "same.mkv"))

	lister := mapLister{
		"http://h/show": {"Ep 1.mkv", "Ep 2.mkv", "Ep 3.mkv"},
		"http://h/same": {"same.mkv"},
	}
	report, err := NewPoller(cache, lister, zerolog.Nop()).PollAll(context.Background())
	if err != nil {
		t.Fatalf("PollAll returned error: %v", err)
	}
	want := Report{Slots: 3, Refreshed: 1, Emptied: 1}
	if report != want {
		t.Fatalf("report = %+v, want %+v", report, want)
	}

	refreshed, err := playlist.ReadFile(cache.SlotPath("Ep 2.mkv.m3u"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := refreshed.Locators(); !reflect.DeepEqual(got, queueOf(show, "Ep 2.mkv", "Ep 3.mkv").Locators()) {
		t.Fatalf("refreshed slot = %v", got)
	}

	emptied, err := os.ReadFile(cache.SlotPath("gone.mkv.m3u"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.TrimSpace(string(emptied)) != playlist.Header {
		t.Fatalf("emptied slot = %q, want header only", emptied)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".*"))
	if len(leftovers) != 0 {
		t.Fatalf("temporary files left behind: %v", leftovers)
	}
}

func TestPollAll_CancelledContextStops(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, nil, zerolog.Nop())
	writeArtifact(t, cache.SlotPath("a.mkv.m3u"), queueOf(location.Parse("/m"), "a.mkv"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := NewPoller(cache, mapLister{}, zerolog.Nop()).PollAll(ctx)
	if err == nil {
		t.Fatalf("PollAll returned nil error for cancelled context")
	}
	if report.Refreshed != 0 || report.Emptied != 0 {
		t.Fatalf("report = %+v, want no work", report)
	}
}

// gatedLister blocks List until release is closed, signalling entered first.
type gatedLister struct {
	entries mapLister
	entered chan struct{}
	release chan struct{}
}

func (g *gatedLister) List(ctx context.Context, loc location.Location) []media.Entry {
	g.entered <- struct{}{}
	<-g.release
	return g.entries.List(ctx, loc)
}

func startGatedPoll(t *testing.T, cache *Cache, entries mapLister) (*gatedLister, <-chan Report) {
	t.Helper()
	g := &gatedLister{entries: entries, entered: make(chan struct{}, 1), release: make(chan struct{})}
	done := make(chan Report, 1)
	go func() {
		report, err := NewPoller(cache, g, zerolog.Nop()).PollAll(context.Background())
		if err != nil {
			t.Errorf("PollAll returned error: %v", err)
		}
		done <- report
	}()
	select {
	case <-g.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("poller never listed the slot's parent")
	}
	return g, done
}

func TestPollAll_DoesNotResurrectRemovedSlot(t *testing.T) {
	cache := NewCache(t.TempDir(), nil, zerolog.Nop())
	show := location.Parse("/m/show")
	writeArtifact(t, cache.SlotPath("a.mkv.m3u"), queueOf(show, "a.mkv"))

	g, done := startGatedPoll(t, cache, mapLister{"/m/show": {"a.mkv", "b.mkv"}})
	if err := cache.Remove("a.mkv.m3u"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	close(g.release)

	if report := <-done; report.Refreshed != 0 {
		t.Fatalf("report = %+v, want nothing refreshed", report)
	}
	if _, err := os.Stat(cache.SlotPath("a.mkv.m3u")); !os.IsNotExist(err) {
		t.Fatalf("removed slot exists again after poll (stat err = %v)", err)
	}
	if leftovers, _ := filepath.Glob(filepath.Join(cache.Dir(), ".*")); len(leftovers) != 0 {
		t.Fatalf("temporary files left behind: %v", leftovers)
	}
}

func TestPollAll_KeepsSlotResavedDuringRefresh(t *testing.T) {
	cache := NewCache(t.TempDir(), nil, zerolog.Nop())
	show := location.Parse("/m/show")
	writeArtifact(t, cache.SlotPath("a.mkv.m3u"), queueOf(show, "a.mkv"))

	g, done := startGatedPoll(t, cache, mapLister{"/m/show": {"a.mkv", "b.mkv", "c.mkv"}})
	resaved := queueOf(show, "c.mkv")
	writeArtifact(t, cache.SlotPath("a.mkv.m3u"), resaved)
	close(g.release)
	<-done

	got, err := playlist.ReadFile(cache.SlotPath("a.mkv.m3u"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got.Locators(), resaved.Locators()) {
		t.Fatalf("slot = %v, want the re-saved %v", got.Locators(), resaved.Locators())
	}
}
