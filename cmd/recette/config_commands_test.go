package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %s", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if !strings.Contains(string(data), "[transcription]") {
		t.Fatalf("sample config missing transcription section: %s", data)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("expected error without --overwrite")
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowHonorsConfigFlag(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "custom.toml")
	dataDir := filepath.Join(base, "data")
	content := "[paths]\ndata_dir = \"" + dataDir + "\"\n\n[transcription]\napi_key = \"k\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, []string{"--config", path, "config", "show"})
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("expected resolved config path %s in output:\n%s", path, out)
	}
	if !strings.Contains(out, dataDir) {
		t.Fatalf("expected configured data_dir %s in output:\n%s", dataDir, out)
	}
}

func TestParseRecipeID(t *testing.T) {
	if _, err := parseRecipeID("abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	if _, err := parseRecipeID("0"); err == nil {
		t.Fatal("expected error for non-positive id")
	}
	id, err := parseRecipeID("42")
	if err != nil || id != 42 {
		t.Fatalf("unexpected result: %d, %v", id, err)
	}
}
