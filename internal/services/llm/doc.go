// Package llm wraps an OpenRouter-compatible chat completion API for the
// extraction pass.
//
// The client pins temperature to zero and requests JSON-only responses so
// repeated runs on identical input are reproducible. Responses are untrusted
// text: DecodeLLMJSON tolerates code fences and stray prose around the JSON
// object, but the caller decides what to do when decoding still fails.
// Requests are single-shot; the pipeline's extraction fallback absorbs
// provider failures instead of retrying.
package llm
