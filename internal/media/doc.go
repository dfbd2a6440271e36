// Package media acquires audio and metadata from video URLs via yt-dlp.
//
// A Fetcher downloads the best audio stream into a caller-owned scratch
// directory and downmixes it with ffmpeg to mono at a fixed bitrate, because
// multi-channel audio produces inconsistent transcription behaviour in the
// downstream provider. Metadata (title, description) comes from the tool's
// JSON dump. The scratch directory lifecycle belongs to the caller; the
// fetcher only writes into it.
package media
