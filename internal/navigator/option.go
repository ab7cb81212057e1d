package navigator

import "github.com/five82/mediabrowse/internal/media"

// OptionKind tags an option shown in the picker.
type OptionKind int

const (
	OptionEntry OptionKind = iota
	OptionAscend
	OptionManageCache
	OptionResumeList
)

// Labels rendered for the sentinel options.
const (
	AscendLabel      = "../"
	ManageCacheLabel = "rm"
	ResumeListLabel  = "continue watching/"
)

// Option is one choice offered while browsing.
type Option struct {
	Kind  OptionKind
	Entry media.Entry
}

// Label renders the option for the picker.
func (o Option) Label() string {
	switch o.Kind {
	case OptionAscend:
		return AscendLabel
	case OptionManageCache:
		return ManageCacheLabel
	case OptionResumeList:
		return ResumeListLabel
	default:
		return o.Entry.Name
	}
}

// render turns options into picker labels and an index to parse the answer
// back. Sentinels take precedence over an entry that happens to share their
// label.
func render(options []Option) ([]string, map[string]Option) {
	labels := make([]string, 0, len(options))
	byLabel := make(map[string]Option, len(options))
	for _, o := range options {
		label := o.Label()
		if prev, ok := byLabel[label]; ok {
			if prev.Kind != OptionEntry || o.Kind == OptionEntry {
				continue
			}
		} else {
			labels = append(labels, label)
		}
		byLabel[label] = o
	}
	return labels, byLabel
}
