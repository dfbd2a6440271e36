package logs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recette.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTailReturnsTrailingLines(t *testing.T) {
	path := writeLog(t, "one\ntwo\nthree\nfour\n")

	lines, offset, err := Tail(path, 2)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(lines) != 2 || lines[0] != "three" || lines[1] != "four" {
		t.Fatalf("unexpected lines: %v", lines)
	}
	if offset == 0 {
		t.Fatal("expected non-zero offset")
	}
}

func TestTailShortFile(t *testing.T) {
	path := writeLog(t, "only\n")
	lines, _, err := Tail(path, 10)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(lines) != 1 || lines[0] != "only" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestTailMissingFile(t *testing.T) {
	lines, offset, err := Tail(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Fatalf("expected empty result, got %v at %d", lines, offset)
	}
}

func TestFollowEmitsNewLines(t *testing.T) {
	path := writeLog(t, "start\n")
	_, offset, err := Tail(path, 1)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	got := make(chan string, 1)
	go func() {
		f, openErr := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if openErr != nil {
			t.Errorf("append open: %v", openErr)
			cancel()
			return
		}
		defer f.Close()
		if _, writeErr := f.WriteString("appended\n"); writeErr != nil {
			t.Errorf("append: %v", writeErr)
			cancel()
		}
	}()

	err = Follow(ctx, path, offset, func(line string) {
		select {
		case got <- line:
			cancel()
		default:
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("follow: %v", err)
	}

	select {
	case line := <-got:
		if line != "appended" {
			t.Fatalf("unexpected line: %q", line)
		}
	default:
		t.Fatal("expected appended line to be emitted")
	}
}
