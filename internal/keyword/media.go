package keyword

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"renamer/internal/logging"
	"renamer/internal/media/ffprobe"
)

// Bundled trigger tokens.
const (
	TokenResolution = "%res"
	TokenTitle      = "%title"
	TokenTitleCase  = "%Title"
)

// MediaOptions configures the ffprobe-backed resolvers.
type MediaOptions struct {
	Binary  string
	Timeout time.Duration
	Logger  *slog.Logger
}

// inspectFunc matches ffprobe.Inspect; tests swap it for a canned result.
type inspectFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Prober runs ffprobe at most once per path and serves every media keyword
// from the cached result.
type Prober struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
	inspect inspectFunc

	mu    sync.Mutex
	cache map[string]probeResult
}

type probeResult struct {
	result ffprobe.Result
	err    error
}

// NewProber builds a Prober from opts.
func NewProber(opts MediaOptions) *Prober {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Prober{
		binary:  opts.Binary,
		timeout: opts.Timeout,
		logger:  logging.NewComponentLogger(logger, "keyword"),
		inspect: ffprobe.Inspect,
		cache:   make(map[string]probeResult),
	}
}

func (p *Prober) probe(ctx context.Context, path string) (ffprobe.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.cache[path]; ok {
		return cached.result, cached.err
	}

	probeCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := p.inspect(probeCtx, p.binary, path)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrNotApplicable, err)
		p.logger.Debug("probe failed", logging.String("path", path), logging.Error(err))
	} else {
		p.logger.Debug("probed file",
			logging.String("path", path),
			logging.Int("streams", len(result.Streams)),
			logging.Duration("elapsed", time.Since(start)),
		)
	}
	p.cache[path] = probeResult{result: result, err: err}
	return result, err
}

// Resolution resolves to WIDTHxHEIGHT of the first video stream.
func (p *Prober) Resolution(ctx context.Context, path string) (string, error) {
	result, err := p.probe(ctx, path)
	if err != nil {
		return "", err
	}
	res, err := result.Resolution()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotApplicable, err)
	}
	return res, nil
}

// Title resolves to the embedded title tag.
func (p *Prober) Title(ctx context.Context, path string) (string, error) {
	result, err := p.probe(ctx, path)
	if err != nil {
		return "", err
	}
	title, err := result.Title()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotApplicable, err)
	}
	return title, nil
}

// TitleCase resolves to the embedded title tag in title case.
func (p *Prober) TitleCase(ctx context.Context, path string) (string, error) {
	title, err := p.Title(ctx, path)
	if err != nil {
		return "", err
	}
	return cases.Title(language.Und).String(title), nil
}

// RegisterMedia installs the ffprobe-backed resolvers on registry.
func RegisterMedia(registry *Registry, prober *Prober) error {
	triggers := []struct {
		token       string
		description string
		fn          ResolverFunc
	}{
		{TokenResolution, "replaced with WIDTHxHEIGHT of the first video stream", prober.Resolution},
		{TokenTitle, "replaced with the title tag embedded in the media container", prober.Title},
		{TokenTitleCase, "replaced with the embedded title tag in title case", prober.TitleCase},
	}
	for _, trigger := range triggers {
		if err := registry.Register(trigger.token, trigger.description, trigger.fn); err != nil {
			return err
		}
	}
	return nil
}
