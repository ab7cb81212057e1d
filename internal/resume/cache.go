// Package resume keeps "continue watching" playback queues and refreshes
// them against their live locations.
package resume

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/mediabrowse/internal/media"
	"github.com/five82/mediabrowse/internal/picker"
	"github.com/five82/mediabrowse/internal/playlist"
)

// UpSentinel is appended to List for the cache-management prompt.
const UpSentinel = "up"

const (
	offerPrompt = "continue watching later?"
	offerYes    = "yes"
	offerNo     = "no"
)

// Cache is a directory of slot files, one per in-progress item.
type Cache struct {
	dir    string
	picker picker.Picker
	logger zerolog.Logger
}

// NewCache returns a cache rooted at dir. p is used by Offer.
func NewCache(dir string, p picker.Picker, logger zerolog.Logger) *Cache {
	return &Cache{dir: dir, picker: p, logger: logger}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// SlotName derives the slot file name for a media item.
func SlotName(originalName string) string {
	base := filepath.Base(strings.TrimSuffix(originalName, "/"))
	return base + media.PlaylistSuffix
}

// SlotPath returns the path of the named slot.
func (c *Cache) SlotPath(name string) string {
	return filepath.Join(c.dir, name)
}

// Offer asks whether to remember the queue at artifactPath. On "yes" the
// artifact is copied into the slot for originalName. Declining or cancelling
// returns false without error.
func (c *Cache) Offer(ctx context.Context, artifactPath, originalName string) (bool, error) {
	if c.picker == nil {
		return false, nil
	}
	sel, err := c.picker.Pick(ctx, offerPrompt, []string{offerYes, offerNo})
	if err != nil {
		return false, fmt.Errorf("offer resume: %w", err)
	}
	if sel.Cancelled || sel.Value != offerYes {
		return false, nil
	}
	if _, err := c.Add(artifactPath, originalName); err != nil {
		return false, err
	}
	return true, nil
}

// Add copies the artifact into the slot for originalName and returns the
// slot name.
func (c *Cache) Add(artifactPath, originalName string) (string, error) {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return "", fmt.Errorf("read playlist: %w", err)
	}
	name := SlotName(originalName)
	if err := playlist.WriteAtomic(c.SlotPath(name), data); err != nil {
		return "", fmt.Errorf("write slot %s: %w", name, err)
	}
	c.logger.Debug().Str("slot", name).Msg("resume slot saved")
	return name, nil
}

// Slots returns the slot file names in lexical order. A missing cache
// directory has no slots.
func (c *Cache) Slots() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || media.Classify(name) != media.KindResumeArtifact {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// List returns the slot names followed by UpSentinel.
func (c *Cache) List() []string {
	names, err := c.Slots()
	if err != nil {
		c.logger.Warn().Err(err).Str("dir", c.dir).Msg("list resume cache failed")
	}
	return append(names, UpSentinel)
}

// IsEmpty reports whether no slots exist.
func (c *Cache) IsEmpty() bool {
	names, err := c.Slots()
	return err != nil || len(names) == 0
}

// Remove deletes the named slot. Unknown names and UpSentinel are no-ops.
func (c *Cache) Remove(name string) error {
	if name == "" || name == UpSentinel || filepath.Base(name) != name || strings.HasPrefix(name, ".") {
		return nil
	}
	if err := os.Remove(c.SlotPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove slot %s: %w", name, err)
	}
	return nil
}
