// Package config loads, normalizes, and validates the recette configuration.
//
// Configuration is TOML with a Default() baseline, so a missing file yields a
// runnable setup for everything that does not need credentials. Load expands
// ~ in path fields and validates cross-field constraints before returning.
// Every external adapter receives its settings from the returned Config; no
// package reads ambient process-wide state.
package config
