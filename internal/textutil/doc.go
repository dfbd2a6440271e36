// Package textutil provides text processing utilities for marker search and
// filename sanitization.
//
// The primary use cases are:
//   - Accent-insensitive marker search in transcripts, so French section
//     headers ("Ingrédients", "Étapes") match their unaccented ASCII markers.
//   - Sanitizing titles for safe filesystem use.
//
// Marker search folds the haystack rune by rune, which keeps a one-to-one
// mapping between folded and original runes so matches can be reported as
// byte offsets into the original string.
package textutil
