package recipe

import "strings"

// Assemble flattens a Structured recipe into the Normalized row shape.
// Ingredients join with newlines, steps join with newlines prefixed by a
// "- " bullet so ordering stays visible to a reviewer, and utensils join
// with comma-space. Timing strings pass through unchanged. VideoURL and
// Title are filled in by the caller.
func Assemble(s Structured) Normalized {
	return Normalized{
		IngredientsText: strings.Join(s.Ingredients, "\n"),
		StepsText:       joinBulleted(s.Steps),
		UtensilsText:    strings.Join(s.Utensils, ", "),
		CookTime:        passthrough(s.CookTime),
		PrepTime:        passthrough(s.PrepTime),
	}
}

func joinBulleted(steps []string) string {
	if len(steps) == 0 {
		return ""
	}
	var b strings.Builder
	for i, step := range steps {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(step)
	}
	return b.String()
}

func passthrough(value string) string {
	if strings.TrimSpace(value) == "" {
		return Unknown
	}
	return value
}
