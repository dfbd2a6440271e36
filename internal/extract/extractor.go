package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recette/internal/config"
	"recette/internal/logging"
	"recette/internal/recipe"
	"recette/internal/services/llm"
)

// IngredientsNotDetected marks a model-backed extraction that degraded to
// the fallback record.
const IngredientsNotDetected = "ingredients not detected"

// Result is the outcome of one extraction. Degraded reports that the
// model-backed pass was attempted and replaced by the fallback record;
// RawResponse then carries the offending model output for diagnostics.
type Result struct {
	Recipe      recipe.Structured
	Degraded    bool
	RawResponse string
}

// Extractor produces structured recipes from combined free text.
type Extractor struct {
	client *llm.Client
	logger *slog.Logger
}

// New builds an extractor. When cfg carries no API key the model-backed pass
// is disabled and the heuristic runs as the primary strategy.
func New(cfg config.LLM, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	e := &Extractor{
		logger: logger.With(logging.String(logging.FieldComponent, "extractor")),
	}
	if strings.TrimSpace(cfg.APIKey) != "" {
		e.client = llm.NewClient(llm.Config{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Model:          cfg.Model,
			TimeoutSeconds: cfg.TimeoutSeconds,
		})
	}
	return e
}

// ModelEnabled reports whether the model-backed pass is configured.
func (e *Extractor) ModelEnabled() bool {
	return e.client != nil
}

// Extract converts combined text into a structured recipe. It never returns
// an error: model failures degrade to a deterministic fallback record and
// are logged, not surfaced.
func (e *Extractor) Extract(ctx context.Context, combined string) Result {
	if e.client == nil {
		return Result{Recipe: Heuristic(combined)}
	}

	logger := logging.WithContext(ctx, e.logger)
	raw, err := e.client.CompleteJSON(ctx, systemPrompt, buildUserPrompt(combined))
	if err != nil {
		logger.Warn("model extraction failed, using fallback record",
			logging.Error(err))
		return degradedResult(combined, "")
	}

	structured, err := parseModelResponse(raw)
	if err != nil {
		logger.Warn("model response rejected, using fallback record",
			logging.Error(err),
			logging.String("raw_response", raw))
		return degradedResult(combined, raw)
	}
	return Result{Recipe: structured, RawResponse: raw}
}

// degradedResult is the fixed record substituted for any model-backed
// failure. The combined text is preserved verbatim in the steps section.
func degradedResult(combined, raw string) Result {
	out := recipe.NewStructured()
	out.Ingredients = []string{IngredientsNotDetected}
	if combined != "" {
		out.Steps = []string{combined}
	}
	return Result{Recipe: out, Degraded: true, RawResponse: raw}
}

type modelIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// modelPayload mirrors the instruction's JSON contract. Pointer fields
// distinguish a missing top-level key from an empty value; all five keys
// are required.
type modelPayload struct {
	Ingredients *[]modelIngredient `json:"ingredients"`
	Steps       *[]string          `json:"steps"`
	Utensils    *[]string          `json:"utensils"`
	CookTime    *string            `json:"cook_time"`
	PrepTime    *string            `json:"prep_time"`
}

func parseModelResponse(raw string) (recipe.Structured, error) {
	var payload modelPayload
	if err := llm.DecodeLLMJSON(raw, &payload); err != nil {
		return recipe.Structured{}, fmt.Errorf("decode model response: %w", err)
	}
	required := []struct {
		name    string
		present bool
	}{
		{"ingredients", payload.Ingredients != nil},
		{"steps", payload.Steps != nil},
		{"utensils", payload.Utensils != nil},
		{"cook_time", payload.CookTime != nil},
		{"prep_time", payload.PrepTime != nil},
	}
	for _, field := range required {
		if !field.present {
			return recipe.Structured{}, fmt.Errorf("model response missing %s field", field.name)
		}
	}

	out := recipe.NewStructured()
	for _, entry := range *payload.Ingredients {
		if formatted := formatIngredient(entry); formatted != "" {
			out.Ingredients = append(out.Ingredients, formatted)
		}
	}
	for _, step := range *payload.Steps {
		if step = strings.TrimSpace(step); step != "" {
			out.Steps = append(out.Steps, step)
		}
	}
	for _, utensil := range *payload.Utensils {
		if utensil = strings.TrimSpace(utensil); utensil != "" {
			out.Utensils = append(out.Utensils, utensil)
		}
	}
	if cook := strings.TrimSpace(*payload.CookTime); cook != "" {
		out.CookTime = cook
	}
	if prep := strings.TrimSpace(*payload.PrepTime); prep != "" {
		out.PrepTime = prep
	}
	return out, nil
}

// formatIngredient renders one entry as "name (quantity)", or bare "name"
// when the quantity is empty or the unknown sentinel.
func formatIngredient(entry modelIngredient) string {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return ""
	}
	quantity := strings.TrimSpace(entry.Quantity)
	if quantity == "" || strings.EqualFold(quantity, recipe.Unknown) {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, quantity)
}
