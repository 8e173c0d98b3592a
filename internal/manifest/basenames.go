package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

var ErrBasenameCollision = errors.New("manifest: duplicate source basename")

// CheckDuplicateBasenames walks the watched directories under root and fails
// when two distinct compiled sources share a basename. Colliding basenames
// produce ambiguous object-file targets downstream, so the run must abort
// before any output is written.
func CheckDuplicateBasenames(root string, dirs []string) error {
	seen := make(map[string]string)
	for _, dir := range dirs {
		base := filepath.Join(root, dir)
		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !isCompiled(path) {
				return nil
			}
			name := d.Name()
			if prev, ok := seen[name]; ok && prev != path {
				return fmt.Errorf("%w: %s and %s", ErrBasenameCollision, prev, path)
			}
			seen[name] = path
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// isCompiled reports whether the file produces an object; headers never
// collide at the object level.
func isCompiled(path string) bool {
	switch filepath.Ext(path) {
	case ".c", ".s", ".S", ".asm":
		return true
	}
	return false
}
