// Package transcribe converts audio files to text through an
// OpenAI-compatible transcription endpoint.
//
// The provider is treated as a stateless request/response service: one audio
// file in, one text string out, no partial or streaming results. Provider
// error bodies are propagated verbatim in the failure detail to aid
// debugging; the client never retries.
package transcribe
