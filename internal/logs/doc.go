// Package logs reads the service log file for CLI display: the last N
// lines, optionally followed by polling for new output.
package logs
