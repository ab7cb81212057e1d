package listing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/five82/mediabrowse/internal/index"
	"github.com/five82/mediabrowse/internal/location"
	"github.com/five82/mediabrowse/internal/media"
)

type fakeFetcher struct {
	names []string
	err   error
	got   string
}

func (f *fakeFetcher) FetchNames(_ context.Context, indexURL string) ([]string, error) {
	f.got = indexURL
	return f.names, f.err
}

func write(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestList_LocalFlagsCollectionsAndSkipsHidden(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.txt"))
	write(t, filepath.Join(root, "b.mkv"))
	write(t, filepath.Join(root, "sub", "inner.mp4"))
	write(t, filepath.Join(root, ".hidden.mkv"))

	l := NewLister(nil, zerolog.Nop())
	got := media.Names(l.List(context.Background(), location.Parse(root)))
	want := []string{"a.txt", "b.mkv", "sub/"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
}

func TestList_LocalSkipsNamesWithLineBreaks(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "ok.mkv"))
	if err := os.WriteFile(filepath.Join(root, "two\nlines.mkv"), []byte("x"), 0o644); err != nil {
		t.Skipf("newline in file name unsupported: %v", err)
	}

	l := NewLister(nil, zerolog.Nop())
	got := media.Names(l.List(context.Background(), location.Parse(root)))
	if want := []string{"ok.mkv"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %q, want %q", got, want)
	}
}

func TestList_LocalSymlinkToDirIsCollection(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	if err := os.Symlink(target, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}
	entries := NewLister(nil, zerolog.Nop()).List(context.Background(), location.Parse(root))
	if len(entries) != 1 || entries[0].Name != "linked/" || !entries[0].IsCollection() {
		t.Fatalf("List = %#v, want linked/ collection", entries)
	}
}

func TestList_MissingLocalIsEmpty(t *testing.T) {
	l := NewLister(nil, zerolog.Nop())
	if got := l.List(context.Background(), location.Parse(filepath.Join(t.TempDir(), "gone"))); len(got) != 0 {
		t.Fatalf("List(missing) = %v, want empty", got)
	}
}

func TestList_RemoteUsesTrailingSlashAndClassifies(t *testing.T) {
	f := &fakeFetcher{names: []string{"Show/", "ep1.mkv", "readme.txt"}}
	entries := NewLister(f, zerolog.Nop()).List(context.Background(), location.Parse("http://h/tv"))
	if f.got != "http://h/tv/" {
		t.Fatalf("fetched %q, want http://h/tv/", f.got)
	}
	kinds := []media.Kind{entries[0].Kind, entries[1].Kind, entries[2].Kind}
	want := []media.Kind{media.KindCollection, media.KindMediaFile, media.KindUnknown}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
}

func TestList_RemoteErrorIsEmpty(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	if got := NewLister(f, zerolog.Nop()).List(context.Background(), location.Parse("http://h/tv")); len(got) != 0 {
		t.Fatalf("List = %v, want empty on fetch error", got)
	}
}

func TestList_RemoteIndexDiscardsParentLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<a href="../">../</a><a href="a.mp4">a</a><a href="b.mp4">b</a>`))
	}))
	t.Cleanup(server.Close)

	l := NewLister(index.NewClient(0), zerolog.Nop())
	got := media.Names(l.List(context.Background(), location.Parse(server.URL+"/media")))
	want := []string{"a.mp4", "b.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
}

func TestList_UnreachableRemoteIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	l := NewLister(index.NewClient(0), zerolog.Nop())
	if got := l.List(context.Background(), location.Parse(url+"/media")); len(got) != 0 {
		t.Fatalf("List = %v, want empty", got)
	}
}
