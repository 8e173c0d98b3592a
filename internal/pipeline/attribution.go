package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrAttributionRevisionMissing = errors.New("pipeline: attribution file has no Revision line")

const revisionPrefix = "Revision:"

// updateAttribution rewrites the revision line of the plain-text attribution
// file with the upstream commit hash and date.
func updateAttribution(path string, hash string, date string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("attribution read failed (%s): %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, revisionPrefix) {
			lines[i] = fmt.Sprintf("%s %s (%s)", revisionPrefix, hash, date)
			replaced = true
			break
		}
	}
	if !replaced {
		return fmt.Errorf("%w: %s", ErrAttributionRevisionMissing, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), info.Mode().Perm())
}
