package extract

import "strings"

const systemPrompt = `You are a culinary assistant that extracts recipe data from transcribed cooking videos.
Respond with a single strict JSON object containing exactly these five fields:
  "ingredients": array of objects, each with "name" (string) and "quantity" (string, "unknown" when not stated)
  "steps": array of strings, one instruction per entry, in order
  "utensils": array of strings
  "cook_time": string, "unknown" when not stated
  "prep_time": string, "unknown" when not stated
Example of the expected shape:
{"ingredients": [{"name": "potatoes", "quantity": "1 kg"}, {"name": "salt", "quantity": "unknown"}], "steps": ["Peel the potatoes.", "Boil for 20 minutes."], "utensils": ["peeler", "saucepan"], "cook_time": "20 minutes", "prep_time": "10 minutes"}
Output only the JSON object, nothing else. Keep the language of the source text in names, steps, and utensils.`

// braceNeutralizer rewrites literal curly braces in the source text so the
// instruction's embedded JSON example stays the only brace-delimited content
// in the conversation.
var braceNeutralizer = strings.NewReplacer("{", "(", "}", ")")

func buildUserPrompt(combined string) string {
	return "Extract the recipe from the following text:\n\n" + braceNeutralizer.Replace(combined)
}
