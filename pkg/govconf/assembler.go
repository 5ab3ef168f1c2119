package govconf

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"github.com/nemomobile/mce-buildtools/pkg/cpufreq"
	"github.com/nemomobile/mce-buildtools/pkg/defaults"
	"github.com/nemomobile/mce-buildtools/pkg/scenario"

	"golang.org/x/sync/errgroup"
)

// LoadFunc loads a control directory by path.
type LoadFunc func(path string) (*cpufreq.ControlDirectory, error)

// Choice is the outcome for one directory in one scenario.
type Choice struct {
	// Governor is empty when no preference matched.
	Governor  string
	Threshold cpufreq.Threshold
}

// DirectoryResult holds the choices for one directory, one per scenario in
// scenario order.
type DirectoryResult struct {
	Directory *cpufreq.ControlDirectory
	Choices   []Choice
}

// Assembler builds governor config documents.
type Assembler struct {
	// Scenarios are rendered in slice order.
	Scenarios []scenario.Scenario

	// Parallelism bounds concurrent directory loads. Values below 1 mean
	// runtime.NumCPU().
	Parallelism int

	// Load reads a control directory. Defaults to cpufreq.Load.
	Load LoadFunc
}

// NewAssembler creates an Assembler for scenarios.
func NewAssembler(scenarios []scenario.Scenario, parallelism int) *Assembler {
	return &Assembler{
		Scenarios:   scenarios,
		Parallelism: parallelism,
		Load:        cpufreq.Load,
	}
}

// Assemble loads every directory, computes its settings and returns the
// document. Directories are processed concurrently but the document is built
// in one pass afterwards: sections in scenario order, directories in the
// order given. Any load or computation error aborts the whole run.
func (a *Assembler) Assemble(ctx context.Context, paths []string) (*Document, error) {
	start := time.Now()
	defer func() {
		assembleDuration.Observe(time.Since(start).Seconds())
	}()

	results, err := a.compute(ctx, paths)
	if err != nil {
		assembleTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	doc := a.Build(results)
	assembleTotal.WithLabelValues("success").Inc()

	slog.Debug("assembled governor config",
		slog.Int("directories", len(results)),
		slog.Int("scenarios", len(a.Scenarios)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return doc, nil
}

func (a *Assembler) compute(ctx context.Context, paths []string) ([]DirectoryResult, error) {
	load := a.Load
	if load == nil {
		load = cpufreq.Load
	}

	limit := a.Parallelism
	if limit < 1 {
		limit = runtime.NumCPU()
	}

	// each goroutine owns exactly one slot
	results := make([]DirectoryResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := load(path)
			if err != nil {
				return fmt.Errorf("failed to load control directory %s: %w", path, err)
			}
			r, err := Compute(d, a.Scenarios)
			if err != nil {
				return fmt.Errorf("failed to compute settings for %s: %w", path, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Compute selects a governor and frequency range for every scenario.
func Compute(d *cpufreq.ControlDirectory, scenarios []scenario.Scenario) (DirectoryResult, error) {
	r := DirectoryResult{
		Directory: d,
		Choices:   make([]Choice, len(scenarios)),
	}
	for i, s := range scenarios {
		th, err := cpufreq.Thresholds(d.Frequencies, s.Percent)
		if err != nil {
			return DirectoryResult{}, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		gov, _ := cpufreq.SelectGovernor(s.Governors, d.Governors)
		r.Choices[i] = Choice{Governor: gov, Threshold: th}
	}
	return r, nil
}

// Build appends the results to a new document. For every scenario and every
// directory it adds the governor pair (when one was selected), then the
// maximum and minimum frequency pairs.
func (a *Assembler) Build(results []DirectoryResult) *Document {
	names := make([]string, len(a.Scenarios))
	for i, s := range a.Scenarios {
		names[i] = s.SectionName()
	}
	doc := NewDocument(defaults.ConfigHeader, names...)

	for i, s := range a.Scenarios {
		section := names[i]
		for _, r := range results {
			d, c := r.Directory, r.Choices[i]

			if c.Governor == "" {
				slog.Warn("no governor", slog.String("path", d.Path), slog.String("scenario", s.Name))
				governorMissTotal.WithLabelValues(s.Name).Inc()
			} else {
				doc.Append(section, d.File(defaults.GovernorFile), c.Governor)
				settingsTotal.WithLabelValues("governor").Inc()
			}

			doc.Append(section, d.File(defaults.MaxFrequencyFile), strconv.FormatInt(c.Threshold.Max, 10))
			doc.Append(section, d.File(defaults.MinFrequencyFile), strconv.FormatInt(c.Threshold.Min, 10))
			settingsTotal.WithLabelValues("max_frequency").Inc()
			settingsTotal.WithLabelValues("min_frequency").Inc()
		}
	}

	return doc
}
