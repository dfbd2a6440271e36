// Package services defines shared utilities consumed by the extraction
// pipeline and its external provider adapters.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep provider
//     failures classifiable with errors.Is across package boundaries.
//   - Context helpers that stamp the video URL and a correlation identifier
//     for logging.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across the stages.
package services
