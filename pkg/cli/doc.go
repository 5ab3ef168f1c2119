// Package cli implements the command-line interface for the mcetools build
// helper.
//
// # Overview
//
// mcetools generates files the mode control entity (MCE) installs or compiles
// in. Each command is a self-contained generator; none of them talks to a
// running daemon.
//
// # Commands
//
// governor - Generate the CPU scaling governor config:
//
//	mcetools governor [--output FILE] [--format ini|yaml|json] [DIR...]
//	mcetools governor --scenarios scenarios.yaml --exclude '*policy4'
//	mcetools governor --probe-all --metrics-file /var/lib/node_exporter/mce.prom
//
// Without directory arguments, cpufreq control directories are discovered
// with --pattern, resolved to their canonical paths and write-tested.
// Explicit directories are used as given. For every scenario a section lists
// the governor, maximum and minimum frequency settings of every directory.
//
// depfilter - Normalize makefile dependency rules:
//
//	gcc -MM *.c | mcetools depfilter > .depend
//
// schemagen - Convert GConf schemas into the builtin settings table:
//
//	mcetools schemagen [--output FILE] FILE...
//
// # Global Flags
//
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// The LOG_LEVEL environment variable sets the level when --debug is absent.
// Logs always go to stderr.
//
// # Output Formats
//
// ini (default):
//   - The native text form: the governor config file or the C table
//
// YAML and JSON:
//   - Structured dumps of the same document, for inspection and tests
//
// # Exit Codes
//
//	0  success
//	1  any error
//	2  interrupted
package cli
