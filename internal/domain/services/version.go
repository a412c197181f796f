// Package services contains the pure domain logic for tag selection and
// target resolution. Nothing here touches the network or the filesystem.
package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ochairo/preflight/internal/domain/entities"
)

// DefaultTagPattern is the release tag shape expected when a manifest does
// not override it: a "v" followed by digits and dots.
const DefaultTagPattern = `^v[0-9.]+$`

// SelectLatestTag filters tags to those matching pattern and returns the
// version-greatest match. Ordering is numeric segment-wise, not lexical;
// tags that compare equal numerically resolve to the lexically last one,
// so the result is deterministic under any permutation of the input.
func SelectLatestTag(tags []string, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultTagPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid tag pattern: %w", err)
	}

	var matched []string
	for _, tag := range tags {
		if re.MatchString(tag) {
			matched = append(matched, tag)
		}
	}

	if len(matched) == 0 {
		return "", &entities.NoMatchingTagError{Pattern: pattern, Listed: len(tags)}
	}

	latest := matched[0]
	for _, tag := range matched[1:] {
		switch CompareVersions(tag, latest) {
		case 1:
			latest = tag
		case 0:
			if tag > latest {
				latest = tag
			}
		}
	}

	return latest, nil
}

// CompareVersions compares two version strings segment-wise.
// Returns: 1 if v1 > v2, -1 if v1 < v2, 0 if equal.
// Each dot-separated segment is compared by its leading numeric run, so
// "v0.10.0" sorts above "v0.2.0" where a lexical compare would not.
func CompareVersions(v1, v2 string) int {
	parts1 := strings.Split(strings.TrimPrefix(v1, "v"), ".")
	parts2 := strings.Split(strings.TrimPrefix(v2, "v"), ".")

	maxLen := len(parts1)
	if len(parts2) > maxLen {
		maxLen = len(parts2)
	}

	for i := 0; i < maxLen; i++ {
		var num1, num2 int
		if i < len(parts1) {
			num1 = leadingNumber(parts1[i])
		}
		if i < len(parts2) {
			num2 = leadingNumber(parts2[i])
		}

		if num1 > num2 {
			return 1
		}
		if num1 < num2 {
			return -1
		}
	}

	return 0
}

// leadingNumber extracts the numeric prefix of a version segment
// (handles cases like "1rc1" -> 1). Segments without one count as zero.
func leadingNumber(segment string) int {
	numStr := ""
	for _, ch := range segment {
		if ch < '0' || ch > '9' {
			break
		}
		numStr += string(ch)
	}
	if numStr == "" {
		return 0
	}
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0
	}
	return n
}
