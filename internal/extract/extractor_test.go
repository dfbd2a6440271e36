package extract

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recette/internal/config"
)

func modelServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Temperature float64 `json:"temperature"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Temperature != 0 {
			t.Errorf("expected temperature 0, got %v", req.Temperature)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func extractorFor(t *testing.T, server *httptest.Server) *Extractor {
	t.Helper()
	return New(config.LLM{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
	}, nil)
}

func TestExtractModelSuccess(t *testing.T) {
	content := `{"ingredients":[{"name":"potatoes","quantity":"1 kg"},{"name":"salt","quantity":"unknown"}],` +
		`"steps":["Peel.","Boil."],"utensils":["saucepan"],"cook_time":"20 minutes","prep_time":"unknown"}`
	server := modelServer(t, content)
	defer server.Close()

	got := extractorFor(t, server).Extract(context.Background(), "some combined text")
	if got.Degraded {
		t.Fatal("expected non-degraded result")
	}
	if len(got.Recipe.Ingredients) != 2 {
		t.Fatalf("unexpected ingredients: %v", got.Recipe.Ingredients)
	}
	if got.Recipe.Ingredients[0] != "potatoes (1 kg)" {
		t.Fatalf("expected quantity-formatted entry, got %q", got.Recipe.Ingredients[0])
	}
	if got.Recipe.Ingredients[1] != "salt" {
		t.Fatalf("expected bare name for unknown quantity, got %q", got.Recipe.Ingredients[1])
	}
	if len(got.Recipe.Steps) != 2 || got.Recipe.Steps[0] != "Peel." {
		t.Fatalf("unexpected steps: %v", got.Recipe.Steps)
	}
	if got.Recipe.CookTime != "20 minutes" || got.Recipe.PrepTime != "unknown" {
		t.Fatalf("unexpected timings: %q / %q", got.Recipe.CookTime, got.Recipe.PrepTime)
	}
}

func TestExtractModelCodeFencedResponse(t *testing.T) {
	content := "```json\n{\"ingredients\":[],\"steps\":[],\"utensils\":[],\"cook_time\":\"unknown\",\"prep_time\":\"unknown\"}\n```"
	server := modelServer(t, content)
	defer server.Close()

	got := extractorFor(t, server).Extract(context.Background(), "text")
	if got.Degraded {
		t.Fatalf("expected fenced JSON to parse, got degraded result with %q", got.RawResponse)
	}
}

func TestExtractMalformedResponseDegrades(t *testing.T) {
	server := modelServer(t, "I could not find a recipe in this video, sorry!")
	defer server.Close()

	combined := "Bonjour, aujourd'hui pas de recette."
	got := extractorFor(t, server).Extract(context.Background(), combined)
	if !got.Degraded {
		t.Fatal("expected degraded result")
	}
	assertFallbackRecord(t, got, combined)
	if !strings.Contains(got.RawResponse, "could not find") {
		t.Fatalf("expected raw response retained for diagnostics, got %q", got.RawResponse)
	}
}

func TestExtractMissingFieldDegrades(t *testing.T) {
	// Valid JSON but prep_time absent.
	content := `{"ingredients":[],"steps":[],"utensils":[],"cook_time":"unknown"}`
	server := modelServer(t, content)
	defer server.Close()

	got := extractorFor(t, server).Extract(context.Background(), "text")
	if !got.Degraded {
		t.Fatal("expected degraded result for missing top-level field")
	}
	assertFallbackRecord(t, got, "text")
}

func TestExtractProviderFailureDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"rate limited"}}`)
	}))
	defer server.Close()

	combined := "Ingredients: oeufs. Steps: battre."
	got := extractorFor(t, server).Extract(context.Background(), combined)
	if !got.Degraded {
		t.Fatal("expected degraded result for provider failure")
	}
	assertFallbackRecord(t, got, combined)
}

func TestExtractWithoutModelUsesHeuristic(t *testing.T) {
	extractor := New(config.LLM{}, nil)
	if extractor.ModelEnabled() {
		t.Fatal("expected model pass disabled without api key")
	}

	got := extractor.Extract(context.Background(), "Ingredients: lait. Steps: verser.")
	if got.Degraded {
		t.Fatal("heuristic-only extraction is not a degradation")
	}
	if len(got.Recipe.Ingredients) != 1 || got.Recipe.Ingredients[0] != "Ingredients: lait." {
		t.Fatalf("unexpected ingredients: %v", got.Recipe.Ingredients)
	}
}

func TestUserPromptNeutralizesBraces(t *testing.T) {
	prompt := buildUserPrompt(`add {sugar} to taste`)
	if strings.Contains(prompt, "{sugar}") {
		t.Fatalf("braces were not neutralized: %q", prompt)
	}
	if !strings.Contains(prompt, "(sugar)") {
		t.Fatalf("expected neutralized braces, got %q", prompt)
	}
}

func assertFallbackRecord(t *testing.T, got Result, combined string) {
	t.Helper()
	if len(got.Recipe.Ingredients) != 1 || got.Recipe.Ingredients[0] != IngredientsNotDetected {
		t.Fatalf("unexpected fallback ingredients: %v", got.Recipe.Ingredients)
	}
	if len(got.Recipe.Steps) != 1 || got.Recipe.Steps[0] != combined {
		t.Fatalf("expected combined text preserved verbatim in steps, got %v", got.Recipe.Steps)
	}
	if len(got.Recipe.Utensils) != 0 {
		t.Fatalf("expected empty utensils, got %v", got.Recipe.Utensils)
	}
	if got.Recipe.CookTime != "unknown" || got.Recipe.PrepTime != "unknown" {
		t.Fatalf("unexpected timings: %q / %q", got.Recipe.CookTime, got.Recipe.PrepTime)
	}
}
