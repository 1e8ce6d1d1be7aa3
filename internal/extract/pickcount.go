package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var spelledCounts = map[string]int{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
}

// pick|take|select|choose [any] [word] [digit] [(digit)]
var pickRegex = regexp.MustCompile(
	`(?i)\b(?:pick|take|select|choose)\s+(?:any\s+)?(?:(one|two|three|four|five)\b)?\s*(\d+)?\s*(?:\(\s*(\d+)\s*\))?`,
)

// "And, pick 1 (1):", "and pick two"
var andPickRegex = regexp.MustCompile(`(?i)^\W*and\s*,?\s+(?:pick|take|select|choose)\b`)

// countFromGroups applies the precedence rules to a pickRegex match:
// a parenthesized digit wins over a bare digit, which wins over a spelled word.
func countFromGroups(groups []string) (int, bool) {
	for _, digits := range []string{groups[3], groups[2]} {
		if digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err == nil && n > 0 {
			return n, true
		}
	}
	if groups[1] != "" {
		return spelledCounts[strings.ToLower(groups[1])], true
	}
	return 0, false
}

// ParsePickCount returns the count of the first instruction phrase in the text that
// carries one ("pick two", "Select 3", "And, pick one (1):").
func ParsePickCount(text string) (int, bool) {
	for _, groups := range pickRegex.FindAllStringSubmatch(text, -1) {
		n, ok := countFromGroups(groups)
		if ok {
			return n, true
		}
	}
	return 0, false
}

// pickCounts returns the count of every instruction phrase in the text.
func pickCounts(text string) []int {
	var counts []int
	for _, groups := range pickRegex.FindAllStringSubmatch(text, -1) {
		n, ok := countFromGroups(groups)
		if ok {
			counts = append(counts, n)
		}
	}
	return counts
}

func hasPickLanguage(text string) bool {
	_, ok := ParsePickCount(text)
	return ok
}

func isAndPickMarker(text string) bool {
	return andPickRegex.MatchString(text)
}
