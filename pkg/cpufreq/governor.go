package cpufreq

import "slices"

// SelectGovernor returns the first entry of preferences that is present in
// available. The boolean is false when the two sets are disjoint, which is a
// legitimate outcome and not an error.
func SelectGovernor(preferences, available []string) (string, bool) {
	for _, g := range preferences {
		if slices.Contains(available, g) {
			return g, true
		}
	}
	return "", false
}
