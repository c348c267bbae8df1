// Package conference defines the conference record data model.
//
// Records are sourced from static JSON feeds (data/conferences.json and
// data/conferences_archive.json) and are immutable once loaded. Date fields
// stay as strings on the struct; parsing happens per use so a single
// malformed value never prevents the rest of a record from rendering.
package conference

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedDate marks a date field that failed to parse. Callers render
// a placeholder instead of failing; see timefmt.
var ErrMalformedDate = errors.New("malformed date value")

// Record is one conference as shipped in the JSON feed.
type Record struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Shortname string `json:"shortname,omitempty"`
	Website   string `json:"website,omitempty"`
	Location  string `json:"location,omitempty"`
	Note      string `json:"note,omitempty"`

	// Rating is one of "A*", "A", "B", "C", "D" when present.
	Rating  string `json:"rating,omitempty"`
	H5Index *int   `json:"h5Index,omitempty"`

	Tags []string `json:"tags,omitempty"`

	// Deadline is the primary submission deadline, an RFC 3339 instant.
	// AbstractDeadline, when present, is at or before Deadline.
	Deadline         string `json:"deadline"`
	AbstractDeadline string `json:"abstractDeadline,omitempty"`

	// Conference days are bare dates (YYYY-MM-DD).
	ConferenceStartDate string `json:"conferenceStartDate,omitempty"`
	ConferenceEndDate   string `json:"conferenceEndDate,omitempty"`

	// Timezone is an IANA zone name. Empty means UTC.
	Timezone string `json:"timezone,omitempty"`

	// IsApproximateDeadline means the dates are placeholders carried over
	// from the prior cycle. Display degrades to coarse granularity and the
	// website action is disabled.
	IsApproximateDeadline bool `json:"isApproximateDeadline,omitempty"`
}

// ratingOrder is the fixed ordinal scale for rating comparisons.
var ratingOrder = map[string]int{
	"A*": 5,
	"A":  4,
	"B":  3,
	"C":  2,
	"D":  1,
}

// RatingOrdinal maps a rating to its ordinal. Unknown ratings map to 0,
// which never satisfies a minimum-rating threshold.
func RatingOrdinal(rating string) int {
	return ratingOrder[rating]
}

// hasTimePart reports whether a date string carries a time or zone marker.
// Bare dates get interpreted as midnight UTC of that calendar day.
func hasTimePart(value string) bool {
	return strings.Contains(value, "T") || strings.HasSuffix(value, "Z")
}

// ParseInstant parses a feed date value into an instant.
// Values with a time component are RFC 3339; bare dates mean midnight UTC.
func ParseInstant(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrMalformedDate)
	}
	if hasTimePart(value) {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
	}
	return t, nil
}

// ParseEndOfDay is like ParseInstant but bare dates mean end of day UTC,
// used when a date bounds an interval from above.
func ParseEndOfDay(value string) (time.Time, error) {
	if value != "" && !hasTimePart(value) {
		t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
		}
		return t.Add(24*time.Hour - time.Second), nil
	}
	return ParseInstant(value)
}

// DeadlineTime returns the primary deadline as an instant.
func (r Record) DeadlineTime() (time.Time, error) {
	return ParseInstant(r.Deadline)
}

// AbstractDeadlineTime returns the abstract deadline as an instant.
func (r Record) AbstractDeadlineTime() (time.Time, error) {
	return ParseInstant(r.AbstractDeadline)
}

// EffectiveEnd is the instant after which the conference counts as past:
// the end date, else the deadline, else the start date, with bare dates
// read as end of day. Malformed or absent values yield the zero time, so
// the record counts as past and stays visible.
func (r Record) EffectiveEnd() time.Time {
	for _, v := range []string{r.ConferenceEndDate, r.Deadline, r.ConferenceStartDate} {
		if v == "" {
			continue
		}
		t, err := ParseEndOfDay(v)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	return time.Time{}
}

// Zone returns the record's IANA display zone, defaulting to UTC.
func (r Record) Zone() string {
	if r.Timezone == "" {
		return "UTC"
	}
	return r.Timezone
}

// DisplayName renders the card heading: "Title (Shortname)" when both
// exist, otherwise whichever is present.
func (r Record) DisplayName() string {
	switch {
	case r.Title != "" && r.Shortname != "":
		return fmt.Sprintf("%s (%s)", r.Title, r.Shortname)
	case r.Title != "":
		return r.Title
	default:
		return r.Shortname
	}
}

// MatchesName reports whether the record's title or shortname contains the
// query, case-insensitively. An empty query matches everything.
func (r Record) MatchesName(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Shortname), q)
}
