package cpufreq

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nemomobile/mce-buildtools/pkg/defaults"
	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
)

// Load reads the frequency and governor enumerations of dir.
// Any missing, unreadable or malformed enumeration file is returned as an
// error; callers treat it as fatal.
func Load(dir string) (*ControlDirectory, error) {
	start := time.Now()
	defer func() {
		loadDuration.Observe(time.Since(start).Seconds())
	}()

	freqs, err := readFrequencies(filepath.Join(dir, defaults.AvailableFrequenciesFile))
	if err != nil {
		loadErrorsTotal.Inc()
		return nil, err
	}

	governors, err := readValues(filepath.Join(dir, defaults.AvailableGovernorsFile))
	if err != nil {
		loadErrorsTotal.Inc()
		return nil, err
	}

	slog.Debug("loaded control directory",
		slog.String("path", dir),
		slog.Int("frequencies", len(freqs)),
		slog.Any("governors", governors),
	)

	return &ControlDirectory{
		Path:        dir,
		Frequencies: freqs,
		Governors:   governors,
		Writable:    true,
	}, nil
}

// readValues returns the whitespace separated fields of a control file.
func readValues(path string) ([]string, error) {
	data, err := readControlFile(path)
	if err != nil {
		code := mceerrors.ErrCodeUnavailable
		if errors.Is(err, fs.ErrNotExist) {
			code = mceerrors.ErrCodeNotFound
		}
		return nil, mceerrors.Wrap(code, "failed to read control file", err)
	}
	return strings.Fields(string(data)), nil
}

func readFrequencies(path string) ([]int64, error) {
	fields, err := readValues(path)
	if err != nil {
		return nil, err
	}

	freqs := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid frequency %q", f), err, map[string]any{"path": path})
		}
		freqs = append(freqs, v)
	}
	return freqs, nil
}
