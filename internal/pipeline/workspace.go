package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrWorkspaceSymlink = errors.New("pipeline: symlinks are not allowed in source tree")

// Workspace is a temporary directory holding a private copy of the upstream
// source tree. Configure and make mutate the copy, never the checkout.
type Workspace struct {
	Root string
}

// NewWorkspace copies the source tree into a fresh temp directory. On copy
// failure the partial directory is left behind for inspection.
func NewWorkspace(sourceDir string) (*Workspace, error) {
	root, err := os.MkdirTemp("", "codecgen-")
	if err != nil {
		return nil, err
	}
	if err := copyTree(sourceDir, root); err != nil {
		return nil, fmt.Errorf("workspace populate failed (%s): %w", root, err)
	}
	return &Workspace{Root: root}, nil
}

func (w *Workspace) Remove() error {
	return os.RemoveAll(w.Root)
}

func copyTree(src string, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.Type()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrWorkspaceSymlink, path)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src string, dst string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return nil
}
