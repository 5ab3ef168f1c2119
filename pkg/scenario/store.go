package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed data/scenarios.yaml
	scenarioData []byte

	storeOnce       sync.Once
	cachedScenarios []Scenario
	cachedErr       error
)

// Default returns the built-in scenarios in output order.
// The embedded data is parsed once; every call returns an independent copy.
func Default() ([]Scenario, error) {
	storeOnce.Do(func() {
		cachedScenarios, cachedErr = Parse(scenarioData)
	})

	if cachedErr != nil {
		return nil, cachedErr
	}
	if cachedScenarios == nil {
		return nil, mceerrors.New(mceerrors.ErrCodeInternal, "scenario store not initialized")
	}

	out := make([]Scenario, len(cachedScenarios))
	for i, s := range cachedScenarios {
		out[i] = s.clone()
	}
	return out, nil
}

// Load reads and validates a scenario file. YAML and JSON are both accepted.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := mceerrors.ErrCodeUnavailable
		if errors.Is(err, os.ErrNotExist) {
			code = mceerrors.ErrCodeNotFound
		}
		return nil, mceerrors.Wrap(code, fmt.Sprintf("failed to read scenario file %q", path), err)
	}

	scenarios, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario file %q: %w", path, err)
	}

	slog.Debug("loaded scenario file", slog.String("path", path), slog.Int("scenarios", len(scenarios)))
	return scenarios, nil
}

// Parse decodes, normalizes and validates scenario definitions.
func Parse(data []byte) ([]Scenario, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, mceerrors.New(mceerrors.ErrCodeInvalidRequest, "no scenarios defined")
		}
		return nil, mceerrors.Wrap(mceerrors.ErrCodeInvalidRequest, "failed to parse scenarios", err)
	}

	scenarios := Normalize(f.Scenarios)
	if err := Validate(scenarios); err != nil {
		return nil, err
	}
	return scenarios, nil
}
