package extract

import "regexp"

// Searcher runs ordered regex searches over the concatenated document text.
// Patterns are always evaluated in the caller's declared order: most
// specific, most confident first.
type Searcher struct {
	fullText string
}

// NewSearcher creates a searcher over the given full document text.
func NewSearcher(fullText string) *Searcher {
	return &Searcher{fullText: fullText}
}

// SearchText evaluates each pattern as a case-insensitive multi-line regex
// and returns the first non-empty cleaned capture group. Patterns that fail
// to compile or carry no capture group are skipped.
func (s *Searcher) SearchText(patterns ...string) string {
	for _, pattern := range patterns {
		re, err := regexp.Compile("(?im)" + pattern)
		if err != nil {
			continue
		}
		m := re.FindStringSubmatch(s.fullText)
		if len(m) > 1 {
			if val := Clean(m[1]); val != "" {
				return val
			}
		}
	}
	return ""
}

// SearchAllText collects every capture match across all patterns,
// deduplicated in first-seen order. Used for candidate scans when no labeled
// match exists.
func (s *Searcher) SearchAllText(patterns ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			continue
		}
		for _, m := range re.FindAllStringSubmatch(s.fullText, -1) {
			raw := m[0]
			if len(m) > 1 {
				raw = m[1]
			}
			val := Clean(raw)
			if val != "" && !seen[val] {
				seen[val] = true
				out = append(out, val)
			}
		}
	}
	return out
}
