package manifest

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const gniBanner = `# This file is generated. Do not edit.
# Source lists are grouped per platform and instruction set; each group is
# compiled with its own flags by the build graph.
`

// GNIWriter emits named source lists into a single manifest file. The file
// is truncated once at construction; each platform's groups then append in
// sequence.
type GNIWriter struct {
	path       string
	gnPrefix   string
	listPrefix string
}

func NewGNIWriter(path, gnPrefix, listPrefix string) (*GNIWriter, error) {
	if err := os.WriteFile(path, []byte(gniBanner), 0o644); err != nil {
		return nil, fmt.Errorf("manifest truncate failed (%s): %w", path, err)
	}
	return &GNIWriter{path: path, gnPrefix: gnPrefix, listPrefix: listPrefix}, nil
}

// AppendLists writes each non-empty group as an independently named list.
// Empty groups are omitted; cross-group order follows EmissionOrder. Entries
// are sorted so an unchanged tree yields a byte-identical manifest.
func (w *GNIWriter) AppendLists(platform string, set ClassifiedSourceSet) error {
	var b strings.Builder
	for _, group := range EmissionOrder {
		paths := set[group]
		if len(paths) == 0 {
			continue
		}
		sorted := append([]string(nil), paths...)
		sort.Strings(sorted)

		fmt.Fprintf(&b, "\n%s = [\n", w.listName(platform, group))
		for _, p := range sorted {
			fmt.Fprintf(&b, "  \"%s%s\",\n", w.gnPrefix, p)
		}
		b.WriteString("]\n")
	}
	if b.Len() == 0 {
		return nil
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("manifest append failed (%s): %w", w.path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("manifest append failed (%s): %w", w.path, err)
	}
	return nil
}

func (w *GNIWriter) listName(platform, group string) string {
	name := w.listPrefix + "_" + platform
	if group != GroupC {
		name += "_" + group
	}
	return sanitizeListName(name)
}

// sanitizeListName maps a platform label to a valid gn identifier.
func sanitizeListName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
