package cpufreq

import "strings"

// Excluded reports whether path matches any of the wildcard patterns:
//   - "prefix*" matches paths starting with "prefix"
//   - "*suffix" matches paths ending with "suffix"
//   - "*contains*" matches paths containing "contains"
//   - "exact" matches the path exactly
func Excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesPattern(path, pattern) {
			return true
		}
	}
	return false
}

func matchesPattern(path, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return path == pattern
	}

	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		return strings.Contains(path, strings.Trim(pattern, "*"))
	}

	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(path, strings.TrimPrefix(pattern, "*"))
	}

	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
	}

	return false
}
