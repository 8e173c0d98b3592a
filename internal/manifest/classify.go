package manifest

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Group tags for classified source lists.
const (
	GroupC        = "c"
	GroupAssembly = "assembly"
	GroupMMX      = "mmx"
	GroupSSE2     = "sse2"
	GroupSSE3     = "sse3"
	GroupSSSE3    = "ssse3"
	GroupSSE4     = "sse4"
	GroupAVX      = "avx"
	GroupAVX2     = "avx2"
	GroupNEON     = "neon"
)

// EmissionOrder fixes the cross-group order in the emitted manifest.
var EmissionOrder = []string{
	GroupC,
	GroupAssembly,
	GroupMMX,
	GroupSSE2,
	GroupSSE3,
	GroupSSSE3,
	GroupSSE4,
	GroupAVX,
	GroupAVX2,
	GroupNEON,
}

// Target selects the partitioning rules for one platform.
type Target struct {
	// X86 enables the per-ISA suffix split.
	X86 bool
	// NEONDetect pulls NEON-named files into a single intrinsics group,
	// used for ARM targets with runtime CPU detection.
	NEONDetect bool
}

// ClassifiedSourceSet maps a group tag to its ordered file list. Groups are
// disjoint; their union is the filtered input manifest.
type ClassifiedSourceSet map[string][]string

// allowedExtensions is the fixed retain list for manifest entries.
var allowedExtensions = map[string]struct{}{
	".c":   {},
	".h":   {},
	".s":   {},
	".S":   {},
	".asm": {},
}

// denylist removes known non-buildable or duplicate-named files
// unconditionally; these are regenerated per platform and supplied from the
// config directory instead of the upstream tree.
var denylist = map[string]struct{}{
	"codec_config.c": {},
	"codec_config.h": {},
	"codec_rtcd.c":   {},
}

type isaRule struct {
	group string
	re    *regexp.Regexp
}

// x86Rules are tested first to last; a path joins at most one group.
var x86Rules = []isaRule{
	{GroupMMX, regexp.MustCompile(`(?i)_mmx\.`)},
	{GroupSSE2, regexp.MustCompile(`(?i)_sse2\.`)},
	{GroupSSE3, regexp.MustCompile(`(?i)_sse3\.`)},
	{GroupSSSE3, regexp.MustCompile(`(?i)_ssse3\.`)},
	{GroupSSE4, regexp.MustCompile(`(?i)_sse4`)},
	{GroupAVX, regexp.MustCompile(`(?i)_avx\.`)},
	{GroupAVX2, regexp.MustCompile(`(?i)_avx2\.`)},
}

var neonPattern = regexp.MustCompile(`(?i)neon`)

// Classify filters the manifest and routes each retained path into exactly
// one group for the given target.
func Classify(m SourceManifest, t Target) ClassifiedSourceSet {
	set := make(ClassifiedSourceSet)
	for _, raw := range m {
		path := strings.TrimSpace(raw)
		if path == "" {
			continue
		}
		if _, denied := denylist[filepath.Base(path)]; denied {
			continue
		}
		path = normalizeAssembly(path)
		if !allowedExtension(path) {
			continue
		}
		group := groupFor(path, t)
		set[group] = append(set[group], path)
	}
	return set
}

// Total counts retained paths across all groups.
func (s ClassifiedSourceSet) Total() int {
	n := 0
	for _, paths := range s {
		n += len(paths)
	}
	return n
}

func groupFor(path string, t Target) string {
	base := filepath.Base(path)
	if t.NEONDetect && neonPattern.MatchString(base) {
		return GroupNEON
	}
	if t.X86 {
		for _, rule := range x86Rules {
			if rule.re.MatchString(base) {
				return rule.group
			}
		}
	}
	if isAssembly(path) {
		return GroupAssembly
	}
	return GroupC
}

// normalizeAssembly drops the redundant suffix from dual-suffix assembly
// paths; the build system infers the translation step from ".asm" alone.
func normalizeAssembly(path string) string {
	if strings.HasSuffix(path, ".asm.s") {
		return strings.TrimSuffix(path, ".s")
	}
	return path
}

func allowedExtension(path string) bool {
	_, ok := allowedExtensions[filepath.Ext(path)]
	return ok
}

func isAssembly(path string) bool {
	switch filepath.Ext(path) {
	case ".s", ".S", ".asm":
		return true
	}
	return false
}
