package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rcliao/episodic-memory/internal/model"
)

// SearchByText returns entries whose content contains the keyword,
// case-insensitively, in insertion order. A keyword that is blank after
// trimming is a documented no-op and returns nil.
func (s *Store) SearchByText(keyword string) []*model.Entry {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}
	needle := strings.ToLower(keyword)

	var matches []*model.Entry
	for _, e := range s.snapshot() {
		if strings.Contains(strings.ToLower(e.Content), needle) {
			matches = append(matches, e)
		}
	}
	return matches
}

// SearchByRegex returns entries whose content matches the pattern. An
// empty pattern is ErrInvalidQuery; a pattern that does not compile is
// ErrInvalidPattern. Neither is ever silently treated as no match.
func (s *Store) SearchByRegex(pattern string) ([]*model.Entry, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidQuery)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	var matches []*model.Entry
	for _, e := range s.snapshot() {
		if re.MatchString(e.Content) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// SearchByMetadata returns entries whose metadata[key] equals value
// exactly. This powers relational joins such as resolving related_to
// references.
func (s *Store) SearchByMetadata(key string, value any) []*model.Entry {
	var matches []*model.Entry
	for _, e := range s.snapshot() {
		if v, ok := e.Metadata[key]; ok && metadataEqual(v, value) {
			matches = append(matches, e)
		}
	}
	return matches
}

// SearchByMetadataValue returns entries where a stringified metadata value
// contains the given substring, case-insensitively. A non-empty key
// restricts the scan to that key; an empty key scans all keys. A blank
// substring is a no-op returning nil.
func (s *Store) SearchByMetadataValue(key, substr string) []*model.Entry {
	substr = strings.TrimSpace(substr)
	if substr == "" {
		return nil
	}
	needle := strings.ToLower(substr)

	var matches []*model.Entry
	for _, e := range s.snapshot() {
		if key != "" {
			if v, ok := e.Metadata[key]; ok && containsFold(v, needle) {
				matches = append(matches, e)
			}
			continue
		}
		for _, v := range e.Metadata {
			if containsFold(v, needle) {
				matches = append(matches, e)
				break
			}
		}
	}
	return matches
}

func containsFold(v any, lowered string) bool {
	return strings.Contains(strings.ToLower(fmt.Sprint(v)), lowered)
}

// metadataEqual compares open metadata values. Numeric values compare by
// magnitude regardless of the concrete Go type the decoder produced.
func metadataEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
