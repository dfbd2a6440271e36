package textutil

import "testing"

func TestFoldString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ingrédients", "ingredients"},
		{"ÉTAPES", "etapes"},
		{"Préparation", "preparation"},
		{"Ingrédients", "ingredients"}, // decomposed form
		{"plain ascii", "plain ascii"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FoldString(tc.in); got != tc.want {
			t.Errorf("FoldString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIndexFoldReportsOriginalByteOffset(t *testing.T) {
	text := "Voilà. Ingrédients: oeufs, lait. Étapes: mélanger."

	idx := IndexFold(text, "ingredient")
	if idx < 0 {
		t.Fatal("expected ingredient marker to match accented header")
	}
	if got := text[idx : idx+len("Ingrédients")]; got != "Ingrédients" {
		t.Fatalf("offset points at %q", got)
	}

	idx = IndexFold(text, "etape")
	if idx < 0 {
		t.Fatal("expected etape marker to match")
	}
	if got := text[idx : idx+len("Étapes")]; got != "Étapes" {
		t.Fatalf("offset points at %q", got)
	}
}

func TestIndexFoldMatchesDecomposedInput(t *testing.T) {
	// The accents arrive as standalone combining marks, the way NFD text
	// carries them.
	header := "Étapes"
	text := "Voilà. " + header + ": mélanger."

	idx := IndexFold(text, "etape")
	if idx < 0 {
		t.Fatal("expected etape marker to match decomposed header")
	}
	if got := text[idx : idx+len(header)]; got != header {
		t.Fatalf("offset points at %q", got)
	}
}

func TestIndexFoldAbsent(t *testing.T) {
	if idx := IndexFold("nothing to see", "ingredient"); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
	if idx := IndexFold("short", "a much longer marker"); idx != -1 {
		t.Fatalf("expected -1 for oversized marker, got %d", idx)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Purée maison", "Purée maison"},
		{"a/b:c*d", "a-b-c-d"},
		{`what? "quotes" <here>`, "what quotes here"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeFileName(tc.in); got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
