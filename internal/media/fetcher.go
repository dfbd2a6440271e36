package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"recette/internal/config"
	"recette/internal/logging"
	"recette/internal/recipe"
	"recette/internal/services"
	"recette/internal/textutil"
)

const audioFileName = "audio.mp3"

// Raw is the product of a fetch: a local mono audio file plus whatever
// textual metadata the source video carries. It lives inside the pipeline's
// scratch directory and disappears with it.
type Raw struct {
	AudioPath   string
	Title       string
	Description string
}

// CommandRunner executes an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Fetcher adapts yt-dlp and ffmpeg into the media acquisition contract.
type Fetcher struct {
	cfg    *config.Config
	logger *slog.Logger
	runner CommandRunner
}

// NewFetcher creates a media fetcher using the supplied configuration.
func NewFetcher(cfg *config.Config, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fetcher{
		cfg:    cfg,
		logger: logger.With(logging.String(logging.FieldComponent, "fetcher")),
		runner: runCommand,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (f *Fetcher) WithCommandRunner(runner CommandRunner) {
	if runner != nil {
		f.runner = runner
	}
}

type ytdlpMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Fetch downloads the audio track for url into scratchDir and returns the
// mono audio path plus title/description metadata. The caller owns
// scratchDir and guarantees its deletion after use.
func (f *Fetcher) Fetch(ctx context.Context, url, scratchDir string) (Raw, error) {
	var raw Raw
	url = strings.TrimSpace(url)
	if url == "" {
		return raw, services.Wrap(services.ErrFetch, "fetch", "validate", "video url required", nil)
	}
	if scratchDir == "" {
		return raw, services.Wrap(services.ErrFetch, "fetch", "validate", "scratch directory required", nil)
	}

	meta, err := f.fetchMetadata(ctx, url)
	if err != nil {
		return raw, err
	}
	raw.Title = strings.TrimSpace(meta.Title)
	if raw.Title == "" {
		raw.Title = recipe.UnknownTitle
	}
	raw.Description = strings.TrimSpace(meta.Description)

	sourcePath, err := f.downloadAudio(ctx, url, scratchDir, raw.Title)
	if err != nil {
		return raw, err
	}

	audioPath := filepath.Join(scratchDir, audioFileName)
	if err := f.downmix(ctx, sourcePath, audioPath); err != nil {
		return raw, err
	}
	raw.AudioPath = audioPath

	logging.WithContext(ctx, f.logger).Debug("audio fetched",
		logging.String("title", raw.Title),
		logging.String("audio_path", audioPath))
	return raw, nil
}

func (f *Fetcher) fetchMetadata(ctx context.Context, url string) (ytdlpMetadata, error) {
	var meta ytdlpMetadata
	out, err := f.runner(ctx, f.cfg.YtdlpBinary(),
		"--no-playlist",
		"--no-warnings",
		"--dump-json",
		url,
	)
	if err != nil {
		return meta, services.Wrap(services.ErrFetch, "fetch", "metadata", "yt-dlp could not resolve url", err)
	}
	if err := json.Unmarshal(bytes.TrimSpace(out), &meta); err != nil {
		return meta, services.Wrap(services.ErrFetch, "fetch", "metadata", "parse yt-dlp json", err)
	}
	return meta, nil
}

// downloadAudio fetches the best audio stream into scratchDir and returns
// the path of the written file. The tool reports the actual path it wrote;
// predicting the path from the sanitized title is kept only as a fallback
// because the tool's own sanitization rules can drift from ours.
func (f *Fetcher) downloadAudio(ctx context.Context, url, scratchDir, title string) (string, error) {
	template := filepath.Join(scratchDir, "%(title)s.%(ext)s")
	out, err := f.runner(ctx, f.cfg.YtdlpBinary(),
		"--no-playlist",
		"--no-warnings",
		"-f", "bestaudio/best",
		"-o", template,
		"--print", "after_move:filepath",
		"--no-simulate",
		url,
	)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "download", "no audio stream available", err)
	}

	reported := lastNonEmptyLine(string(out))
	if reported != "" {
		if _, statErr := os.Stat(reported); statErr == nil {
			return reported, nil
		}
	}

	predicted, err := f.predictAudioPath(scratchDir, title)
	if err != nil {
		return "", err
	}
	return predicted, nil
}

func (f *Fetcher) predictAudioPath(scratchDir, title string) (string, error) {
	safe := textutil.SanitizeFileName(title)
	entries, err := os.ReadDir(scratchDir)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "locate", "read scratch directory", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if base == safe {
			return filepath.Join(scratchDir, name), nil
		}
	}
	return "", services.Wrap(services.ErrFetch, "fetch", "locate",
		fmt.Sprintf("downloaded audio for %q not found in scratch directory", title), nil)
}

// downmix re-encodes the source into single-channel audio at the configured
// bitrate. Channel coercion is mandatory, not an optimization.
func (f *Fetcher) downmix(ctx context.Context, source, dest string) error {
	bitrate := fmt.Sprintf("%dk", f.cfg.Fetch.AudioBitrateKbps)
	_, err := f.runner(ctx, f.cfg.FFmpegBinary(),
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-b:a", bitrate,
		dest,
	)
	if err != nil {
		return services.Wrap(services.ErrFetch, "fetch", "downmix", "audio post-processing failed", err)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func lastNonEmptyLine(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
