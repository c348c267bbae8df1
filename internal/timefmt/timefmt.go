// Package timefmt renders feed date values for display.
//
// Every value is projected into a target IANA zone before formatting, so a
// conference's dates show in its own local time by default. Formatting never
// fails: absent values render as a fixed marker and malformed values render
// as a placeholder.
package timefmt

import (
	"time"
	// Zone lookups must work even when the host has no tzdata installed.
	_ "time/tzdata"

	"github.com/tobna/ai-deadlines/internal/conference"
)

const (
	// NotAvailable is rendered for absent values.
	NotAvailable = "N/A"
	// Invalid is rendered for values that fail to parse. It keeps the
	// surrounding card rendering alive.
	Invalid = "Invalid Date"
)

// Options select a formatting preset.
type Options struct {
	// MonthYearOnly shows only month and year, used for approximate dates.
	MonthYearOnly bool
	// IncludeTime appends hour and minute.
	IncludeTime bool
	// IncludeTimezoneName appends the zone abbreviation. Only honored
	// together with IncludeTime.
	IncludeTimezoneName bool
	// DisplayTimezone is the IANA zone used for display. Empty means UTC.
	// Unknown zones fall back to UTC rather than failing.
	DisplayTimezone string
}

// FormatInstant formats a feed date value under the given options.
func FormatInstant(value string, opts Options) string {
	if value == "" {
		return NotAvailable
	}

	t, err := conference.ParseInstant(value)
	if err != nil {
		return Invalid
	}

	loc := time.UTC
	if opts.DisplayTimezone != "" {
		if l, err := time.LoadLocation(opts.DisplayTimezone); err == nil {
			loc = l
		}
	}
	t = t.In(loc)

	if opts.MonthYearOnly {
		return t.Format("Jan 2006")
	}

	layout := "Jan 2, 2006"
	if opts.IncludeTime {
		layout += " 15:04"
		if opts.IncludeTimezoneName {
			layout += " MST"
		}
	}
	return t.Format(layout)
}
