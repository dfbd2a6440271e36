package main

import (
	"bytes"
	"strings"
	"testing"

	"recette/internal/deps"
	"recette/internal/store"
)

func TestRenderFields(t *testing.T) {
	out := renderFields("Field", [][2]string{
		{"Title", "Purée maison"},
		{"Cook time", "20 minutes"},
	})
	for _, want := range []string{"Field", "Value", "Purée maison", "20 minutes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered table:\n%s", want, out)
		}
	}
}

func TestRenderRecipeList(t *testing.T) {
	out := renderRecipeList([]store.Summary{
		{ID: 2, Title: "Deuxième", VideoURL: "https://example.com/v/2"},
		{ID: 1, Title: "Première", VideoURL: "https://example.com/v/1"},
	})
	for _, want := range []string{"ID", "Deuxième", "Première", "https://example.com/v/2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered table:\n%s", want, out)
		}
	}
	if strings.Index(out, "Deuxième") > strings.Index(out, "Première") {
		t.Fatal("expected row order preserved")
	}
}

func TestRenderDepsReport(t *testing.T) {
	var buf bytes.Buffer
	out := renderDepsReport(&buf, []deps.Status{
		{Name: "yt-dlp", Command: "yt-dlp", Available: true},
		{Name: "ffmpeg", Command: "ffmpeg", Available: false, Detail: "not found in PATH"},
	})
	for _, want := range []string{"Tool", "yt-dlp", "ffmpeg", "not found in PATH"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered table:\n%s", want, out)
		}
	}
}
