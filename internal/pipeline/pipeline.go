package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"recette/internal/config"
	"recette/internal/extract"
	"recette/internal/logging"
	"recette/internal/media"
	"recette/internal/recipe"
	"recette/internal/services"
	"recette/internal/transcribe"
)

// MediaFetcher acquires a local mono audio file plus metadata for a URL.
type MediaFetcher interface {
	Fetch(ctx context.Context, url, scratchDir string) (media.Raw, error)
}

// Transcriber converts an audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Extractor produces a structured recipe from combined text.
type Extractor interface {
	Extract(ctx context.Context, combined string) extract.Result
}

// Outcome is the product of one pipeline run, ready for human review.
type Outcome struct {
	VideoURL   string
	Title      string
	Transcript string
	Structured recipe.Structured
	Normalized recipe.Normalized
	Degraded   bool
}

// Pipeline wires the extraction stages together.
type Pipeline struct {
	cfg         *config.Config
	logger      *slog.Logger
	fetcher     MediaFetcher
	transcriber Transcriber
	extractor   Extractor
}

// Option overrides a pipeline collaborator, primarily for tests.
type Option func(*Pipeline)

// WithFetcher replaces the media fetcher.
func WithFetcher(f MediaFetcher) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.fetcher = f
		}
	}
}

// WithTranscriber replaces the transcription client.
func WithTranscriber(tr Transcriber) Option {
	return func(p *Pipeline) {
		if tr != nil {
			p.transcriber = tr
		}
	}
}

// WithExtractor replaces the text extractor.
func WithExtractor(e Extractor) Option {
	return func(p *Pipeline) {
		if e != nil {
			p.extractor = e
		}
	}
}

// New builds a pipeline with real collaborators derived from cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pipeline{
		cfg:         cfg,
		logger:      logger.With(logging.String(logging.FieldComponent, "pipeline")),
		fetcher:     media.NewFetcher(cfg, logger),
		transcriber: transcribe.NewClient(cfg.Transcription),
		extractor:   extract.New(cfg.LLM, logger),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes one video URL end to end. Fetch and transcription failures
// abort the run with their service markers attached; stage deadline
// overruns surface as timeout failures distinct from provider errors.
func (p *Pipeline) Run(ctx context.Context, url string) (Outcome, error) {
	var out Outcome
	out.VideoURL = url

	// Stage contexts inherit the run annotations, so adapters derive their
	// loggers from ctx instead of threading attributes by hand.
	runID := uuid.NewString()
	ctx = services.WithRequestID(ctx, runID)
	ctx = services.WithVideoURL(ctx, url)
	logger := logging.WithContext(ctx, p.logger)

	scratchDir, err := p.createScratchDir(runID)
	if err != nil {
		return out, err
	}
	defer func() {
		if removeErr := os.RemoveAll(scratchDir); removeErr != nil {
			logger.Warn("scratch directory not removed",
				logging.String("scratch_dir", scratchDir),
				logging.Error(removeErr))
		}
	}()

	fetchCtx, cancelFetch := p.stageContext(services.WithStage(ctx, "fetch"), p.cfg.Fetch.TimeoutSeconds)
	raw, err := p.fetcher.Fetch(fetchCtx, url, scratchDir)
	cancelFetch()
	if err != nil {
		return out, stageError(err, fetchCtx, "fetch", "media acquisition timed out")
	}
	out.Title = raw.Title

	transcribeCtx, cancelTranscribe := p.stageContext(services.WithStage(ctx, "transcribe"), p.cfg.Transcription.TimeoutSeconds)
	transcript, err := p.transcriber.Transcribe(transcribeCtx, raw.AudioPath)
	cancelTranscribe()
	if err != nil {
		return out, stageError(err, transcribeCtx, "transcribe", "transcription timed out")
	}
	out.Transcript = transcript

	combined := transcript
	if raw.Description != "" {
		combined = transcript + "\n\n" + raw.Description
	}

	extractCtx, cancelExtract := p.stageContext(services.WithStage(ctx, "extract"), p.cfg.LLM.TimeoutSeconds)
	result := p.extractor.Extract(extractCtx, combined)
	cancelExtract()
	out.Structured = result.Recipe
	out.Degraded = result.Degraded

	out.Normalized = recipe.Assemble(result.Recipe)
	out.Normalized.VideoURL = url
	out.Normalized.Title = raw.Title

	logger.Info("pipeline run complete",
		logging.String("title", raw.Title),
		logging.Bool("degraded", result.Degraded),
		logging.Int("transcript_chars", len(transcript)))
	return out, nil
}

func (p *Pipeline) createScratchDir(runID string) (string, error) {
	parent := p.cfg.Paths.ScratchDir
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "scratch", "create scratch parent", err)
	}
	scratchDir := filepath.Join(parent, "run-"+runID)
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "scratch", "create scratch directory", err)
	}
	return scratchDir, nil
}

// stageContext bounds one external call. A non-positive configured timeout
// leaves the parent deadline in force.
func (p *Pipeline) stageContext(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}

// stageError distinguishes a stage deadline overrun from a provider failure.
func stageError(err error, stageCtx context.Context, stage, timeoutMsg string) error {
	if errors.Is(stageCtx.Err(), context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, stage, "deadline", timeoutMsg, err)
	}
	return err
}
