package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const generatedBanner = "/* This file is generated. Do not edit. */\n\n"

// liftConfigHeader copies the configure-produced header into the checked-in
// config directory with the generated banner prepended.
func liftConfigHeader(src string, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("config header missing (%s): %w", src, err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return writeGenerated(dst, append([]byte(generatedBanner), data...))
}

// deriveAsmConstants converts #define lines from the config header into the
// companion assembly-constants file. x86 assemblers take `name equ value`,
// ARM gas takes `.equ name, value`.
func deriveAsmConstants(header []byte, arm bool) []byte {
	var b bytes.Buffer
	if arm {
		b.WriteString("@ This file is generated. Do not edit.\n")
	} else {
		b.WriteString("; This file is generated. Do not edit.\n")
	}
	for _, line := range strings.Split(string(header), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 || fields[0] != "#define" {
			continue
		}
		name, value := fields[1], fields[2]
		if strings.ContainsAny(name, "()") {
			continue
		}
		if arm {
			fmt.Fprintf(&b, ".equ %s, %s\n", name, value)
		} else {
			fmt.Fprintf(&b, "%s equ %s\n", name, value)
		}
	}
	if arm {
		// keeps the GNU linker from marking the stack executable
		b.WriteString(".section .note.GNU-stack,\"\",%progbits\n")
	}
	return b.Bytes()
}

func writeGenerated(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
