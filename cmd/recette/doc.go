// Package main hosts the recette CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the whole tool surface: running the
// extraction pipeline for a single video, serving the review web UI,
// inspecting and deleting stored recipes, dependency preflight, and
// configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
