package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoVideoStream is returned by Resolution when the container has no video
// stream with usable dimensions.
var ErrNoVideoStream = errors.New("ffprobe: no video stream with dimensions")

// ErrNoTitle is returned by Title when neither the container nor its streams
// carry a title tag.
var ErrNoTitle = errors.New("ffprobe: no title tag")

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Tags        map[string]string `json:"tags"`
	Disposition map[string]int    `json:"disposition"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string            `json:"filename"`
	NBStreams  int               `json:"nb_streams"`
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}

	return Parse(output)
}

// Parse decodes raw ffprobe JSON output.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// Resolution returns "WIDTHxHEIGHT" for the first video stream that reports
// both dimensions. Attached cover art is skipped.
func (r Result) Resolution() (string, error) {
	for _, stream := range r.Streams {
		if !strings.EqualFold(stream.CodecType, "video") {
			continue
		}
		if stream.Disposition["attached_pic"] == 1 {
			continue
		}
		if stream.Width > 0 && stream.Height > 0 {
			return fmt.Sprintf("%dx%d", stream.Width, stream.Height), nil
		}
	}
	return "", ErrNoVideoStream
}

// Title returns the container title tag, falling back to the first stream
// that carries one.
func (r Result) Title() (string, error) {
	if title := lookupTag(r.Format.Tags, "title"); title != "" {
		return title, nil
	}
	for _, stream := range r.Streams {
		if title := lookupTag(stream.Tags, "title"); title != "" {
			return title, nil
		}
	}
	return "", ErrNoTitle
}

// lookupTag matches keys case-insensitively; Matroska writes TITLE while MP4
// writes title.
func lookupTag(tags map[string]string, key string) string {
	for k, v := range tags {
		if strings.EqualFold(k, key) {
			if value := strings.TrimSpace(v); value != "" {
				return value
			}
		}
	}
	return ""
}
