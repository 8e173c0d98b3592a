package manifest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyX86Example(t *testing.T) {
	m := SourceManifest{"a.c", "b_sse2.c", "c_avx2.c", "d.asm.s"}
	set := Classify(m, Target{X86: true})

	want := ClassifiedSourceSet{
		GroupC:        {"a.c"},
		GroupSSE2:     {"b_sse2.c"},
		GroupAVX2:     {"c_avx2.c"},
		GroupAssembly: {"d.asm"},
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("unexpected classification (-want +got):\n%s", diff)
	}
}

func TestClassifyARMDetectPullsNeon(t *testing.T) {
	m := SourceManifest{
		"a.c",
		"b_sse2.c",
		"c_avx2.c",
		"d.asm.s",
		"loopfilter_neon.c",
		"idct_neon.asm",
	}
	set := Classify(m, Target{NEONDetect: true})

	want := ClassifiedSourceSet{
		GroupC:        {"a.c", "b_sse2.c", "c_avx2.c"},
		GroupAssembly: {"d.asm"},
		GroupNEON:     {"loopfilter_neon.c", "idct_neon.asm"},
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("unexpected classification (-want +got):\n%s", diff)
	}
	for _, group := range []string{GroupSSE2, GroupAVX, GroupAVX2} {
		if _, ok := set[group]; ok {
			t.Fatalf("unexpected %s group on arm target", group)
		}
	}
}

func TestClassifyEveryRetainedPathInExactlyOneGroup(t *testing.T) {
	m := SourceManifest{
		"dsp/convolve.c",
		"dsp/convolve_sse2.c",
		"dsp/convolve_ssse3.c",
		"dsp/convolve_avx2.c",
		"dsp/intrapred_sse4_1.c",
		"dsp/sad_mmx.asm",
		"dsp/sub_pixel.asm.s",
		"dsp/headers.h",
		"docs/notes.txt",
	}
	set := Classify(m, Target{X86: true})

	seen := make(map[string]string)
	for group, paths := range set {
		for _, path := range paths {
			if prev, ok := seen[path]; ok {
				t.Fatalf("path %q in both %q and %q", path, prev, group)
			}
			seen[path] = group
		}
	}
	// all allow-listed inputs retained, the .txt dropped
	if set.Total() != len(m)-1 {
		t.Fatalf("retained %d paths, want %d", set.Total(), len(m)-1)
	}
}

func TestClassifyISASuffixNeverGeneric(t *testing.T) {
	m := SourceManifest{
		"x_mmx.c", "x_sse2.c", "x_sse3.c", "x_ssse3.c",
		"x_sse4_1.c", "x_avx.c", "x_avx2.c", "X_SSE2.c",
	}
	set := Classify(m, Target{X86: true})
	if len(set[GroupC]) != 0 {
		t.Fatalf("ISA-suffixed paths leaked into generic group: %v", set[GroupC])
	}
	if got := len(set[GroupSSE2]); got != 2 {
		t.Fatalf("sse2 group size = %d, want 2 (case-insensitive match)", got)
	}
}

func TestClassifySSSE3DoesNotMatchSSE3(t *testing.T) {
	set := Classify(SourceManifest{"filter_ssse3.c"}, Target{X86: true})
	if len(set[GroupSSE3]) != 0 {
		t.Fatalf("ssse3 file landed in sse3 group")
	}
	if len(set[GroupSSSE3]) != 1 {
		t.Fatalf("ssse3 file missing from ssse3 group: %v", set)
	}
}

func TestClassifyDenylistRemovedUnconditionally(t *testing.T) {
	m := SourceManifest{"codec_config.c", "codec_config.h", "codec_rtcd.c", "keep.c"}
	set := Classify(m, Target{X86: true})
	if set.Total() != 1 {
		t.Fatalf("denylisted files retained: %v", set)
	}
	if len(set[GroupC]) != 1 || set[GroupC][0] != "keep.c" {
		t.Fatalf("unexpected generic group: %v", set[GroupC])
	}
}

func TestClassifyDualSuffixNormalized(t *testing.T) {
	set := Classify(SourceManifest{"dsp/deblock.asm.s"}, Target{X86: true})
	want := ClassifiedSourceSet{GroupAssembly: {"dsp/deblock.asm"}}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("unexpected normalization (-want +got):\n%s", diff)
	}
}

func TestClassifyWithoutDetectKeepsNeonGeneric(t *testing.T) {
	set := Classify(SourceManifest{"loopfilter_neon.c"}, Target{})
	if len(set[GroupNEON]) != 0 {
		t.Fatalf("neon group emitted without runtime detection")
	}
	if len(set[GroupC]) != 1 {
		t.Fatalf("neon source missing from generic group: %v", set)
	}
}
