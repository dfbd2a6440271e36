// Package pipeline runs one video URL through the full extraction sequence:
// media fetch, transcription, structured extraction, and normalization.
//
// A run is synchronous and request-scoped. Each invocation owns a scratch
// directory for intermediate audio and removes it on every exit path. Fetch
// and transcription failures abort the run; extraction never does, it
// degrades to a sentinel record that the human reviewer corrects downstream.
package pipeline
