// Package depfilter rewrites compiler generated makefile dependency rules.
//
// Input is the output of "gcc -MM" style dependency generation. For every
// rule the target is moved next to its primary source, dependencies on
// absolute paths (system headers) are dropped and the remaining secondary
// dependencies are sorted, so regenerated rules produce small diffs. Each
// rule is emitted twice: once for the object file and once for its ".pic.o"
// twin used in shared builds.
package depfilter

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
)

// PICExtension replaces the target extension in the position independent rule.
const PICExtension = ".pic.o"

// Rule is a make rule: a target and its prerequisites. The first source is
// the primary one.
type Rule struct {
	Target  string
	Sources []string
}

// Parse reads dependency rules from r. Continuation lines are joined, lines
// without a colon and rules without prerequisites are skipped.
func Parse(r io.Reader) ([]Rule, error) {
	lines, err := joinContinuations(r)
	if err != nil {
		return nil, err
	}

	rules := make([]Rule, 0, len(lines))
	for _, line := range lines {
		target, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			slog.Debug("skipping rule without prerequisites", slog.String("target", target))
			continue
		}

		primary, secondary := fields[0], fields[1:]
		secondary = slices.DeleteFunc(secondary, filepath.IsAbs)
		slices.Sort(secondary)

		sources := make([]string, 0, len(fields))
		for _, s := range append([]string{primary}, secondary...) {
			sources = append(sources, filepath.Clean(s))
		}

		rules = append(rules, Rule{
			Target:  relocate(strings.TrimSpace(target), primary),
			Sources: sources,
		})
	}
	return rules, nil
}

// joinContinuations returns the input lines with trailing whitespace removed
// and backslash-continued lines merged.
func joinContinuations(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		lines   []string
		pending strings.Builder
		open    bool
	)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.HasSuffix(line, `\`) {
			pending.WriteString(strings.TrimSuffix(line, `\`))
			open = true
			continue
		}
		if open {
			pending.WriteString(line)
			line = pending.String()
			pending.Reset()
			open = false
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dependency rules: %w", err)
	}
	if open {
		lines = append(lines, pending.String())
	}
	return lines, nil
}

// relocate places target's file name in the directory of the primary source.
func relocate(target, primary string) string {
	return filepath.Join(filepath.Dir(primary), filepath.Base(target))
}

// Sort orders rules by target, then by prerequisites.
func Sort(rules []Rule) {
	slices.SortFunc(rules, func(a, b Rule) int {
		if c := cmp.Compare(a.Target, b.Target); c != 0 {
			return c
		}
		return slices.Compare(a.Sources, b.Sources)
	})
}

// PIC returns a copy of r targeting the position independent object.
func (r Rule) PIC() Rule {
	ext := filepath.Ext(r.Target)
	return Rule{
		Target:  strings.TrimSuffix(r.Target, ext) + PICExtension,
		Sources: r.Sources,
	}
}

// WriteTo writes the rule as
//
//	target:\
//		source\
//
// followed by an empty line.
func (r Rule) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString(r.Target)
	b.WriteString(":")
	for _, s := range r.Sources {
		b.WriteString("\\\n\t")
		b.WriteString(s)
	}
	b.WriteString("\\\n\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Filter reads rules from r and writes the sorted object and PIC rules to w.
func Filter(r io.Reader, w io.Writer) error {
	rules, err := Parse(r)
	if err != nil {
		return err
	}
	Sort(rules)

	bw := bufio.NewWriter(w)
	for _, rule := range rules {
		if _, err := rule.WriteTo(bw); err != nil {
			return fmt.Errorf("failed to write rule for %s: %w", rule.Target, err)
		}
		if _, err := rule.PIC().WriteTo(bw); err != nil {
			return fmt.Errorf("failed to write rule for %s: %w", rule.Target, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush dependency rules: %w", err)
	}

	slog.Debug("filtered dependency rules", slog.Int("rules", len(rules)))
	return nil
}
