// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no renamer-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Format: container-level metadata and tags
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result extract the values the keyword resolvers need:
// the pixel resolution of the first video stream and the embedded title tag.
package ffprobe
