package filter

import (
	"sort"
	"time"

	"github.com/tobna/ai-deadlines/internal/conference"
)

// ApplyPreTag runs every predicate except the tag filter: name match,
// approximate-future exclusion, minimum h5-index, minimum rating. The
// result is the base dataset for tag derivation, so selecting tags never
// removes other tags from the selector. The input slice is not modified.
func ApplyPreTag(records []conference.Record, s *State, now time.Time) []conference.Record {
	out := make([]conference.Record, 0, len(records))
	for _, rec := range records {
		if !rec.MatchesName(s.NameFilter) {
			continue
		}
		if !s.ShowApproxFuture && rec.IsApproximateDeadline && rec.EffectiveEnd().After(now) {
			// Approximate records already in the past stay visible so
			// recently-passed placeholders remain discoverable.
			continue
		}
		if s.MinH5 != nil && (rec.H5Index == nil || *rec.H5Index < *s.MinH5) {
			continue
		}
		if min := conference.RatingOrdinal(s.MinRating); min > 0 {
			if ord := conference.RatingOrdinal(rec.Rating); ord < min {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// ApplyTagFilter keeps records with at least one selected tag. It is
// skipped entirely while the sentinel is active.
func ApplyTagFilter(records []conference.Record, s *State) []conference.Record {
	if s.AllSelected() {
		return records
	}
	out := make([]conference.Record, 0, len(records))
	for _, rec := range records {
		for _, tag := range rec.Tags {
			if s.SelectedTags[tag] {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// SortByDeadline orders records with all future deadlines before all past
// ones, ascending by deadline instant within each group. The sort is
// stable, so ties keep their original relative order. Records whose
// deadline fails to parse sort after parseable ones within the future
// group.
func SortByDeadline(records []conference.Record, now time.Time) {
	type keyed struct {
		rec   conference.Record
		at    time.Time
		past  bool
		valid bool
	}
	ks := make([]keyed, len(records))
	for i, rec := range records {
		t, err := rec.DeadlineTime()
		// A deadline exactly at now counts as past, matching the card's
		// passed state (remaining <= 0).
		ks[i] = keyed{rec: rec, at: t, past: err == nil && !t.After(now), valid: err == nil}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if a.past != b.past {
			return !a.past
		}
		if a.valid != b.valid {
			return a.valid
		}
		return a.at.Before(b.at)
	})

	for i := range ks {
		records[i] = ks[i].rec
	}
}

// ComputeVisible derives the visible, ordered record sequence for the
// given base dataset and filter settings. Pure: identical inputs and an
// identical now yield an identical sequence.
func ComputeVisible(records []conference.Record, s *State, now time.Time) []conference.Record {
	visible := ApplyTagFilter(ApplyPreTag(records, s, now), s)
	SortByDeadline(visible, now)
	return visible
}
