package extract

import (
	"strings"

	"recette/internal/recipe"
	"recette/internal/textutil"
)

// NoIngredientsDetected is returned by the heuristic pass when the text
// carries no recognizable section markers. The unsegmented text is kept as
// the steps section so nothing the speaker said is discarded.
const NoIngredientsDetected = "no ingredients detected"

const ingredientsMarker = "ingredient"

// stepMarkers are tried in order; the first marker present in the text wins
// even when a later synonym also appears.
var stepMarkers = []string{"etape", "step", "preparation"}

// Heuristic segments text into ingredients and steps windows using marker
// tokens. Matching is accent-insensitive and case-insensitive; the returned
// windows are sliced from the original text with casing intact. Utensils and
// timings are not derivable by this pass.
func Heuristic(text string) recipe.Structured {
	out := recipe.NewStructured()

	ingredientsIdx := textutil.IndexFold(text, ingredientsMarker)
	stepsIdx := -1
	for _, marker := range stepMarkers {
		if idx := textutil.IndexFold(text, marker); idx >= 0 {
			stepsIdx = idx
			break
		}
	}

	if ingredientsIdx < 0 || stepsIdx < 0 || stepsIdx <= ingredientsIdx {
		out.Ingredients = []string{NoIngredientsDetected}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			out.Steps = []string{text}
		}
		return out
	}

	ingredientsWindow := strings.TrimSpace(text[ingredientsIdx:stepsIdx])
	stepsWindow := strings.TrimSpace(text[stepsIdx:])
	out.Ingredients = []string{ingredientsWindow}
	out.Steps = []string{stepsWindow}
	return out
}
