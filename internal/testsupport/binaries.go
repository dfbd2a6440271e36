package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// StubBinary writes an executable shell script into dir and returns its
// path. Useful for dependency preflight tests that only need LookPath to
// succeed.
func StubBinary(t testing.TB, dir, name, script string) string {
	t.Helper()
	if script == "" {
		script = "#!/bin/sh\nexit 0\n"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub binary %s: %v", name, err)
	}
	return path
}
