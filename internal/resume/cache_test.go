package resume

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/five82/mediabrowse/internal/picker"
	"github.com/five82/mediabrowse/internal/playlist"
)

type scriptedPicker struct {
	sel     picker.Selection
	err     error
	options []string
}

func (s *scriptedPicker) Pick(_ context.Context, _ string, options []string) (picker.Selection, error) {
	s.options = options
	return s.sel, s.err
}

func writeArtifact(t *testing.T, path string, q playlist.Queue) {
	t.Helper()
	if err := playlist.WriteFile(path, q); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestOffer_YesCopiesArtifact(t *testing.T) {
	dir := t.TempDir()
	artifact := filepath.Join(t.TempDir(), "playlist.m3u")
	q := playlist.Queue{Items: []playlist.Item{{Title: "Ep 2.mkv", Locator: "/m/tv/Ep 2.mkv"}}}
	writeArtifact(t, artifact, q)

	p := &scriptedPicker{sel: picker.Selection{Value: "yes"}}
	c := NewCache(dir, p, zerolog.Nop())
	ok, err := c.Offer(context.Background(), artifact, "/m/tv/Ep 2.mkv")
	if err != nil || !ok {
		t.Fatalf("Offer = %v, %v; want true, nil", ok, err)
	}
	if !reflect.DeepEqual(p.options, []string{"yes", "no"}) {
		t.Fatalf("options = %v, want [yes no]", p.options)
	}
	got, err := playlist.ReadFile(filepath.Join(dir, "Ep 2.mkv.m3u"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, q) {
		t.Fatalf("slot = %#v, want %#v", got, q)
	}
}

func TestOffer_DeclineAndCancelAreNotErrors(t *testing.T) {
	artifact := filepath.Join(t.TempDir(), "playlist.m3u")
	writeArtifact(t, artifact, playlist.Queue{})

	for _, sel := range []picker.Selection{{Value: "no"}, {Cancelled: true}, {}} {
		dir := t.TempDir()
		c := NewCache(dir, &scriptedPicker{sel: sel}, zerolog.Nop())
		ok, err := c.Offer(context.Background(), artifact, "a.mkv")
		if err != nil || ok {
			t.Fatalf("Offer(%#v) = %v, %v; want false, nil", sel, ok, err)
		}
		if !c.IsEmpty() {
			t.Fatalf("Offer(%#v) created a slot", sel)
		}
	}
}

func TestOffer_PickerErrorSurfaces(t *testing.T) {
	c := NewCache(t.TempDir(), &scriptedPicker{err: errors.New("tty gone")}, zerolog.Nop())
	if _, err := c.Offer(context.Background(), "x", "a.mkv"); err == nil {
		t.Fatalf("Offer returned nil error for picker failure")
	}
}

func TestListAndRemove(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir, nil, zerolog.Nop())
	if got := c.List(); !reflect.DeepEqual(got, []string{UpSentinel}) {
		t.Fatalf("List(empty) = %v, want [up]", got)
	}

	for _, name := range []string{"b.mkv.m3u", "a.mp4.m3u"} {
		writeArtifact(t, filepath.Join(dir, name), playlist.Queue{})
	}
	if err := os.WriteFile(filepath.Join(dir, ".b.mkv.m3u.tmp-x"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	want := []string{"a.mp4.m3u", "b.mkv.m3u", UpSentinel}
	if got := c.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}

	for _, name := range []string{UpSentinel, "missing.m3u", "../escape.m3u", ""} {
		if err := c.Remove(name); err != nil {
			t.Fatalf("Remove(%q) returned error: %v", name, err)
		}
	}
	if err := c.Remove("a.mp4.m3u"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if got := c.List(); !reflect.DeepEqual(got, []string{"b.mkv.m3u", UpSentinel}) {
		t.Fatalf("List after remove = %v", got)
	}
}

func TestSlots_MissingDirIsEmpty(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "nope"), nil, zerolog.Nop())
	if !c.IsEmpty() {
		t.Fatalf("IsEmpty = false for missing dir")
	}
}

func TestSlotName(t *testing.T) {
	if got := SlotName("/srv/tv/Show/Ep 1.mkv"); got != "Ep 1.mkv.m3u" {
		t.Fatalf("SlotName = %q", got)
	}
}
