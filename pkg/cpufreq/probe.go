package cpufreq

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nemomobile/mce-buildtools/pkg/defaults"
	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
)

// Prober discovers writable control directories.
type Prober struct {
	// Pattern is the glob over logical control directory paths.
	Pattern string

	// ProbeFiles are write-tested in every candidate directory. A candidate
	// is included only if all of them pass.
	ProbeFiles []string

	// Exclude holds wildcard patterns matched against canonical paths.
	Exclude []string
}

// Option is a functional option for configuring a Prober.
type Option func(*Prober)

// WithPattern sets the discovery glob.
func WithPattern(pattern string) Option {
	return func(p *Prober) {
		p.Pattern = pattern
	}
}

// WithProbeFiles sets the control files write-tested per directory.
func WithProbeFiles(files ...string) Option {
	return func(p *Prober) {
		p.ProbeFiles = files
	}
}

// WithExclude adds canonical path patterns to skip.
func WithExclude(patterns ...string) Option {
	return func(p *Prober) {
		p.Exclude = append(p.Exclude, patterns...)
	}
}

// NewProber creates a Prober for the standard sysfs layout.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		Pattern:    defaults.ControlDirectoryPattern,
		ProbeFiles: defaults.ProbeFiles,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Discover returns the canonical paths of writable control directories in
// first-seen order. Candidates that cannot be resolved, are excluded by
// pattern or fail the write test are logged and skipped.
func (p *Prober) Discover(ctx context.Context) ([]string, error) {
	logical, err := filepath.Glob(p.Pattern)
	if err != nil {
		return nil, mceerrors.Wrap(mceerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid discovery pattern %q", p.Pattern), err)
	}

	slog.Debug("expanded discovery pattern",
		slog.String("pattern", p.Pattern),
		slog.Int("matches", len(logical)),
	)

	seen := make(map[string]struct{}, len(logical))
	dirs := make([]string, 0, len(logical))

	for _, path := range logical {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		canonical, err := filepath.EvalSymlinks(path)
		if err != nil {
			slog.Info("excluding control directory", slog.String("path", path), slog.String("error", err.Error()))
			probeTotal.WithLabelValues("unresolved").Inc()
			continue
		}

		if _, dup := seen[canonical]; dup {
			slog.Debug("skipping alias of known control directory",
				slog.String("path", path),
				slog.String("canonical", canonical),
			)
			probeTotal.WithLabelValues("duplicate").Inc()
			continue
		}
		seen[canonical] = struct{}{}

		if Excluded(canonical, p.Exclude) {
			slog.Info("excluding control directory", slog.String("path", canonical), slog.String("reason", "matches exclude pattern"))
			probeTotal.WithLabelValues("filtered").Inc()
			continue
		}

		if res := p.Probe(canonical); !res.OK {
			slog.Info("excluding control directory",
				slog.String("path", canonical),
				slog.String("file", res.Path),
				slog.String("error", res.Err.Error()),
			)
			probeTotal.WithLabelValues("excluded").Inc()
			continue
		}

		slog.Info("including control directory", slog.String("path", canonical))
		probeTotal.WithLabelValues("included").Inc()
		dirs = append(dirs, canonical)
	}

	return dirs, nil
}

// Probe write-tests every probe file of dir and returns the first failure,
// or a successful result for the last file tested.
func (p *Prober) Probe(dir string) ProbeResult {
	res := ProbeResult{Path: dir, OK: true}
	for _, name := range p.ProbeFiles {
		res = WriteTest(filepath.Join(dir, name))
		if !res.OK {
			return res
		}
	}
	return res
}

// WriteTest reads path and writes the same content back. The file is left
// byte-identical on success. Both handles are closed on every path out.
func WriteTest(path string) (res ProbeResult) {
	res.Path = path

	data, err := readControlFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		res.Err = fmt.Errorf("failed to open %s for writing: %w", path, err)
		return res
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && res.Err == nil {
			res.OK = false
			res.Err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		res.Err = fmt.Errorf("failed to write %s: %w", path, err)
		return res
	}

	res.OK = true
	return res
}

// readControlFile reads at most MaxControlFileSize bytes from path.
func readControlFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, defaults.MaxControlFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) > defaults.MaxControlFileSize {
		return nil, fmt.Errorf("%s exceeds maximum size of %d bytes", path, defaults.MaxControlFileSize)
	}
	return data, nil
}
