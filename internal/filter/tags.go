package filter

import (
	"sort"

	"github.com/tobna/ai-deadlines/internal/conference"
)

// DeriveTags returns the distinct tags present in the given records, sorted
// lexicographically. It is computed over the pre-tag-filter base set, so
// the selector always offers every tag the other filters left visible.
func DeriveTags(records []conference.Record) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, tag := range rec.Tags {
			seen[tag] = true
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
