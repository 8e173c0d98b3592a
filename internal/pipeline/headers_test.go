package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLiftConfigHeaderAddsBannerAndNewline(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "codec_config.h")
	dst := filepath.Join(dir, "out", "codec_config.h")
	if err := os.WriteFile(src, []byte("#define HAVE_SSE2 1"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := liftConfigHeader(src, dst); err != nil {
		t.Fatalf("lift: %v", err)
	}
	out, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	got := string(out)
	if !strings.HasPrefix(got, "/* This file is generated. Do not edit. */") {
		t.Fatalf("banner missing: %q", got)
	}
	if !strings.HasSuffix(got, "#define HAVE_SSE2 1\n") {
		t.Fatalf("trailing newline missing: %q", got)
	}
}

func TestLiftConfigHeaderMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := liftConfigHeader(filepath.Join(dir, "nope.h"), filepath.Join(dir, "out.h"))
	if err == nil {
		t.Fatalf("expected error for missing source header")
	}
}

func TestDeriveAsmConstantsX86(t *testing.T) {
	header := []byte("#define HAVE_SSE2 1\n#define CONFIG_POSTPROC 0\n#define MACRO(x) (x)\nint not_a_define;\n")
	out := string(deriveAsmConstants(header, false))
	if !strings.Contains(out, "HAVE_SSE2 equ 1\n") || !strings.Contains(out, "CONFIG_POSTPROC equ 0\n") {
		t.Fatalf("constants missing:\n%s", out)
	}
	if strings.Contains(out, "MACRO") {
		t.Fatalf("function-like macro leaked:\n%s", out)
	}
	if strings.Contains(out, ".equ") {
		t.Fatalf("arm syntax in x86 output:\n%s", out)
	}
}

func TestDeriveAsmConstantsARM(t *testing.T) {
	header := []byte("#define HAVE_NEON 1\n")
	out := string(deriveAsmConstants(header, true))
	if !strings.Contains(out, ".equ HAVE_NEON, 1\n") {
		t.Fatalf("arm constant missing:\n%s", out)
	}
	if !strings.Contains(out, ".note.GNU-stack") {
		t.Fatalf("GNU-stack note missing:\n%s", out)
	}
}
