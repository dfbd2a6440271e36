// Package extract turns combined free text (speech transcript plus video
// description) into a structured recipe.
//
// Two strategies exist. The model-backed pass asks a language model for
// strict JSON and is used whenever an API key is configured. The keyword
// heuristic needs no external service and doubles as the fallback: any
// provider failure, parse failure, or missing field in the model output
// degrades to a deterministic sentinel record instead of surfacing an
// error. Extraction never fails outward; callers branch on Result.Degraded.
package extract
