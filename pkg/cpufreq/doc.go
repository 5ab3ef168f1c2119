// Package cpufreq probes cpufreq control directories and computes governor
// and frequency settings for them.
//
// # Overview
//
// The Linux cpufreq subsystem exposes one control directory per frequency
// domain. Every core links its cpuN/cpufreq entry to the directory of the
// policy it belongs to, so several logical paths usually resolve to the same
// control directory:
//
//	/sys/devices/system/cpu/cpu0/cpufreq -> ../cpufreq/policy0
//	/sys/devices/system/cpu/cpu1/cpufreq -> ../cpufreq/policy0
//
// # Discovery
//
// Prober expands a glob over the logical paths, resolves each to its
// canonical path, drops duplicates (first seen wins) and keeps only the
// directories where a write test succeeds:
//
//	p := cpufreq.NewProber()
//	dirs, err := p.Discover(ctx)
//
// The write test reads a control file and writes the same bytes back. The
// content is unchanged on success; on failure the directory is excluded and
// the reason is logged. There is no retry.
//
// # Loading
//
// Load reads scaling_available_frequencies and scaling_available_governors.
// A missing or malformed file is a fatal error: explicitly named directories
// are trusted to be valid, and a discovered directory that passed the write
// test but lacks its enumeration files is in an inconsistent state.
//
// # Selection
//
// SelectGovernor picks the first preference present in a directory's
// advertised governors. Thresholds picks the minimum frequency by index into
// the hardware's discrete frequency steps:
//
//	index = (M-1) * percent / 100
//
// so 0% is the lowest step and 100% equals the maximum. Values are never
// interpolated between steps.
package cpufreq
