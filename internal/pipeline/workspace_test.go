package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWorkspaceCopiesTree(t *testing.T) {
	src := t.TempDir()
	sub := filepath.Join(src, "codec", "common")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "filter.c"), []byte("int f;"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ws, err := NewWorkspace(src)
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	defer ws.Remove()

	out, err := os.ReadFile(filepath.Join(ws.Root, "codec", "common", "filter.c"))
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(out) != "int f;" {
		t.Fatalf("unexpected copy content: %q", string(out))
	}

	if err := ws.Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(ws.Root); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("workspace root still present")
	}
}

func TestWorkspaceRejectsSymlinks(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "real.c"), []byte("int f;"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Symlink(filepath.Join(src, "real.c"), filepath.Join(src, "link.c")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, err := NewWorkspace(src)
	if !errors.Is(err, ErrWorkspaceSymlink) {
		t.Fatalf("expected ErrWorkspaceSymlink, got %v", err)
	}
}
