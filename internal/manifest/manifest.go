package manifest

import (
	"bufio"
	"io"
	"strings"
)

// SourceManifest is the flat list of file paths produced by the build probe.
// Order carries no meaning; classification decides final grouping.
type SourceManifest []string

// Parse reads one path per line, skipping blanks and comment lines.
func Parse(r io.Reader) (SourceManifest, error) {
	var m SourceManifest
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m = append(m, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
