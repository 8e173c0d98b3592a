package tools

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestExecRunnerCapturesStdout(t *testing.T) {
	stdout, stderr, exitCode, err := ExecRunner{}.Run("", "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if exitCode != 0 {
		t.Fatalf("exit code = %d", exitCode)
	}
	if strings.TrimSpace(string(stdout)) != "hello" {
		t.Fatalf("stdout = %q", string(stdout))
	}
	if len(stderr) != 0 {
		t.Fatalf("stderr = %q", string(stderr))
	}
}

func TestExecRunnerWorkingDirectory(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	stdout, _, _, err := ExecRunner{}.Run(dir, "pwd")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(string(stdout)); got != dir {
		t.Fatalf("pwd = %q, want %q", got, dir)
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	_, _, exitCode, err := ExecRunner{}.Run("", "sh", "-c", "exit 3")
	if err == nil {
		t.Fatalf("expected error")
	}
	if exitCode != 3 {
		t.Fatalf("exit code = %d, want 3", exitCode)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, _, exitCode, err := ExecRunner{}.Run("", "definitely-not-a-binary-xyz")
	if err == nil {
		t.Fatalf("expected error")
	}
	if exitCode != 127 {
		t.Fatalf("exit code = %d, want 127", exitCode)
	}
}
