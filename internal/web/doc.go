// Package web serves the review UI: submit a video URL, inspect and correct
// the extracted recipe, then persist it.
//
// The surface is deliberately small: an index listing, an add form that runs
// the pipeline synchronously, a review form pre-filled with the extraction
// result, and per-recipe detail, edit, and delete pages. Reviewer edits are
// authoritative; nothing is re-validated against the transcript.
package web
