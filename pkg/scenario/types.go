package scenario

import (
	"slices"

	"github.com/nemomobile/mce-buildtools/pkg/defaults"
)

// Scenario is one named block of the generated governor config.
type Scenario struct {
	// Name is appended to the section prefix, e.g. "Performance".
	Name string `json:"name" yaml:"name"`

	// Percent selects the minimum frequency step, 0 to 100.
	Percent int `json:"percent" yaml:"percent"`

	// Governors is the preference list, most preferred first.
	Governors []string `json:"governors" yaml:"governors"`
}

// SectionName returns the config section the scenario renders into.
func (s Scenario) SectionName() string {
	return defaults.SectionPrefix + s.Name
}

func (s Scenario) clone() Scenario {
	s.Governors = slices.Clone(s.Governors)
	return s
}

// File is the on-disk scenario definition format.
// Preferences only exists so lists can be shared through YAML anchors.
type File struct {
	Preferences map[string][]string `json:"preferences,omitempty" yaml:"preferences,omitempty"`
	Scenarios   []Scenario          `json:"scenarios" yaml:"scenarios"`
}

// KnownGovernors lists the governors shipped by mainline and vendor kernels.
var KnownGovernors = []string{
	"conservative",
	"interactive",
	"ondemand",
	"performance",
	"powersave",
	"schedutil",
	"userspace",
}
