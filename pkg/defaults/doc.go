// Package defaults provides centralized configuration constants for the
// mce build tools.
//
// Sysfs file names, the discovery glob, document headers and worker limits
// live here so the probe, the assembler and the CLI agree on them.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/nemomobile/mce-buildtools/pkg/defaults"
//
//	matches, err := filepath.Glob(defaults.ControlDirectoryPattern)
//
// # Categories
//
//   - Control files: names of the cpufreq files read and written
//   - Discovery: glob pattern over per-core symlinks
//   - Rendering: generated-file header and section prefix
//   - Limits: maximum size of a sysfs file accepted by the probe
package defaults
