package scenario

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 2

// Normalize trims scenario names and lower-cases governor names, which the
// kernel always advertises in lower case.
func Normalize(scenarios []Scenario) []Scenario {
	lower := cases.Lower(language.Und)

	out := make([]Scenario, len(scenarios))
	for i, s := range scenarios {
		s.Name = strings.TrimSpace(s.Name)
		govs := make([]string, len(s.Governors))
		for j, g := range s.Governors {
			govs[j] = lower.String(strings.TrimSpace(g))
		}
		s.Governors = govs
		out[i] = s
	}
	return out
}

// Validate checks scenario definitions. Names must be non-empty and unique
// ignoring case, percentages must lie in [0,100] and preference lists must be
// non-empty without duplicates. Unknown governor names are only logged.
func Validate(scenarios []Scenario) error {
	if len(scenarios) == 0 {
		return mceerrors.New(mceerrors.ErrCodeInvalidRequest, "no scenarios defined")
	}

	fold := cases.Fold()
	names := make(map[string]string, len(scenarios))

	for i, s := range scenarios {
		ctx := map[string]any{"index": i, "scenario": s.Name}

		if s.Name == "" {
			return mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest, "scenario name is empty", nil, ctx)
		}
		if strings.ContainsAny(s.Name, "[]\n\r") {
			return mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest,
				"scenario name contains characters not allowed in a section name", nil, ctx)
		}

		key := fold.String(s.Name)
		if prev, dup := names[key]; dup {
			return mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("duplicate scenario name (conflicts with %q)", prev), nil, ctx)
		}
		names[key] = s.Name

		if s.Percent < 0 || s.Percent > 100 {
			ctx["percent"] = s.Percent
			return mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest,
				"percentage must be between 0 and 100", nil, ctx)
		}

		if len(s.Governors) == 0 {
			return mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest,
				"governor preference list is empty", nil, ctx)
		}

		for j, g := range s.Governors {
			if g == "" {
				return mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest,
					"governor name is empty", nil, ctx)
			}
			if slices.Contains(s.Governors[:j], g) {
				ctx["governor"] = g
				return mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest,
					"duplicate governor in preference list", nil, ctx)
			}
			if !slices.Contains(KnownGovernors, g) {
				warnUnknownGovernor(s.Name, g)
			}
		}
	}

	return nil
}

func warnUnknownGovernor(scenario, governor string) {
	attrs := []any{
		slog.String("scenario", scenario),
		slog.String("governor", governor),
	}
	if hint, ok := Suggest(governor); ok {
		attrs = append(attrs, slog.String("suggestion", hint))
	}
	slog.Warn("unknown governor in preference list", attrs...)
}

// Suggest returns the known governor closest to name, if any is within a
// small edit distance.
func Suggest(name string) (string, bool) {
	best, bestDist := "", maxSuggestionDistance+1
	for _, known := range KnownGovernors {
		if d := levenshtein.ComputeDistance(name, known); d < bestDist {
			best, bestDist = known, d
		}
	}
	return best, best != ""
}
