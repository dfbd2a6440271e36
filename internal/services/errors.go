package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFetch marks media acquisition failures: the download tool could not
	// resolve the URL, no audio stream exists, or post-processing failed.
	ErrFetch = errors.New("fetch error")
	// ErrTranscription marks speech-to-text provider failures.
	ErrTranscription = errors.New("transcription error")
	// ErrTimeout marks a stage that exceeded its configured deadline.
	ErrTimeout = errors.New("timeout")
	// ErrPersistence marks recipe store failures.
	ErrPersistence = errors.New("persistence error")
	// ErrConfiguration marks missing or invalid runtime configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFetch
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsTimeout reports whether the error carries the timeout marker.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
