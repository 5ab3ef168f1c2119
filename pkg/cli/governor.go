package cli

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/nemomobile/mce-buildtools/pkg/cpufreq"
	"github.com/nemomobile/mce-buildtools/pkg/defaults"
	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
	"github.com/nemomobile/mce-buildtools/pkg/govconf"
	"github.com/nemomobile/mce-buildtools/pkg/scenario"
)

func governorCmd() *cli.Command {
	return &cli.Command{
		Name:                  "governor",
		EnableShellCompletion: true,
		Usage:                 "Generate the CPU scaling governor config",
		ArgsUsage:             "[DIR...]",
		Description: `Generates the CPU scaling config consumed by the mode control entity.

Without arguments every directory matching --pattern is resolved, deduplicated
and write-tested; only writable directories are included. Directories given as
arguments are trusted and used as is.

For every scenario a section is written holding, per directory, the first
preferred governor the kernel offers and the maximum and minimum frequency.

# Examples

Generate from the running system:
  mcetools governor --output /etc/mce/20cpu-scaling.ini

Use explicit directories and custom scenarios:
  mcetools governor --scenarios scenarios.yaml /sys/devices/system/cpu/cpufreq/policy0

Inspect the result as YAML:
  mcetools governor --format yaml`,
		Flags: []cli.Flag{
			newOutputFlag("Output file path (default: stdout)"),
			newFormatFlag(),
			&cli.StringFlag{
				Name:  "scenarios",
				Usage: "Scenario file (YAML or JSON) replacing the built-in scenarios",
			},
			&cli.StringFlag{
				Name:  "pattern",
				Value: defaults.ControlDirectoryPattern,
				Usage: "Glob matching candidate control directories",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Skip discovered directories matching pattern (prefix* or *suffix or exact, can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "probe-all",
				Usage: "Write-test the governor and maximum frequency files as well as the minimum frequency file",
			},
			&cli.IntFlag{
				Name:  "parallelism",
				Value: runtime.NumCPU(),
				Usage: "Maximum number of directories loaded concurrently",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write run metrics in Prometheus text format to this file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			if mf := cmd.String("metrics-file"); mf != "" {
				defer writeMetrics(mf)
			}

			scenarios, err := loadScenarios(cmd.String("scenarios"))
			if err != nil {
				return err
			}

			paths, err := controlDirectories(ctx, cmd)
			if err != nil {
				return err
			}

			slog.Debug("generating governor config",
				slog.Int("directories", len(paths)),
				slog.Int("scenarios", len(scenarios)),
				slog.String("format", string(outFormat)),
			)

			doc, err := govconf.NewAssembler(scenarios, cmd.Int("parallelism")).Assemble(ctx, paths)
			if err != nil {
				return fmt.Errorf("failed to assemble governor config: %w", err)
			}

			return serialize(ctx, cmd, outFormat, doc)
		},
	}
}

func loadScenarios(path string) ([]scenario.Scenario, error) {
	if path == "" {
		return scenario.Default()
	}
	return scenario.Load(path)
}

// controlDirectories returns the explicit arguments or, without any, the
// discovered writable directories.
func controlDirectories(ctx context.Context, cmd *cli.Command) ([]string, error) {
	if cmd.Args().Present() {
		if len(cmd.StringSlice("exclude")) > 0 {
			slog.Warn("--exclude only applies to discovery, ignoring")
		}
		return cmd.Args().Slice(), nil
	}

	probeFiles := defaults.ProbeFiles
	if cmd.Bool("probe-all") {
		probeFiles = defaults.ProbeAllFiles
	}

	prober := cpufreq.NewProber(
		cpufreq.WithPattern(cmd.String("pattern")),
		cpufreq.WithProbeFiles(probeFiles...),
		cpufreq.WithExclude(cmd.StringSlice("exclude")...),
	)

	dirs, err := prober.Discover(ctx)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		slog.Warn("no writable control directories found", slog.String("pattern", prober.Pattern))
	}
	return dirs, nil
}

func writeMetrics(path string) {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		slog.Warn("failed to write metrics",
			slog.String("path", path),
			slog.String("error", mceerrors.Wrap(mceerrors.ErrCodeUnavailable, "metrics export", err).Error()),
		)
		return
	}
	slog.Debug("wrote metrics", slog.String("path", path))
}
