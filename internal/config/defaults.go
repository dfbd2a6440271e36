package config

const (
	defaultDataDir              = "~/.local/share/recette"
	defaultScratchDir           = "~/.local/share/recette/scratch"
	defaultLogDir               = "~/.local/share/recette/logs"
	defaultWebBind              = "127.0.0.1:8391"
	defaultFetchTimeoutSeconds  = 600
	defaultAudioBitrateKbps     = 48
	defaultTranscriptionBaseURL = "https://api.openai.com/v1/audio/transcriptions"
	defaultTranscriptionModel   = "whisper-1"
	defaultTranscriptionTimeout = 300
	defaultLLMBaseURL           = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel             = "google/gemini-3-flash-preview"
	defaultLLMTimeoutSeconds    = 60
	defaultNotifyTimeout        = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			ScratchDir: defaultScratchDir,
			LogDir:     defaultLogDir,
			WebBind:    defaultWebBind,
		},
		Fetch: Fetch{
			YtdlpBinary:      "yt-dlp",
			FFmpegBinary:     "ffmpeg",
			TimeoutSeconds:   defaultFetchTimeoutSeconds,
			AudioBitrateKbps: defaultAudioBitrateKbps,
		},
		Transcription: Transcription{
			BaseURL:        defaultTranscriptionBaseURL,
			Model:          defaultTranscriptionModel,
			TimeoutSeconds: defaultTranscriptionTimeout,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Saved:          true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
