package cpufreq

import (
	"path/filepath"
	"slices"
)

// ControlDirectory is a loaded cpufreq control directory.
type ControlDirectory struct {
	// Path is the canonical path for discovered directories and the path as
	// given for explicit ones.
	Path string `json:"path" yaml:"path"`

	// Frequencies are the available frequencies in kernel order (ascending,
	// duplicates preserved).
	Frequencies []int64 `json:"frequencies" yaml:"frequencies"`

	// Governors is the advertised governor set. Order carries no meaning.
	Governors []string `json:"governors" yaml:"governors"`

	// Writable is set once when the directory is loaded. Discovered
	// directories passed the write test; explicit ones are trusted.
	Writable bool `json:"writable" yaml:"writable"`
}

// File returns the path of a control file inside the directory.
func (d *ControlDirectory) File(name string) string {
	return filepath.Join(d.Path, name)
}

// HasGovernor reports whether name is advertised by the directory.
func (d *ControlDirectory) HasGovernor(name string) bool {
	return slices.Contains(d.Governors, name)
}

// ProbeResult is the outcome of a write test.
type ProbeResult struct {
	// Path is the probed control file.
	Path string

	// OK is true when the file was read and written back without error.
	OK bool

	// Err holds the failure reason when OK is false.
	Err error
}

// Threshold is the frequency range configured for one scenario.
type Threshold struct {
	Min int64 `json:"min" yaml:"min"`
	Max int64 `json:"max" yaml:"max"`
}
