package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tobna/ai-deadlines/internal/conference"
	"github.com/tobna/ai-deadlines/internal/countdown"
	"github.com/tobna/ai-deadlines/internal/timefmt"
)

// Link line placeholders. The web page greys the button out with the same
// wording.
const (
	linkApproximate = "Visit Conference Site"
	linkUnavailable = "Site Not Available"
)

// renderCard materializes one record into a bordered card. Cards carry no
// state of their own: every countdown is recomputed from now, and the whole
// card set is rebuilt on each filter change.
func renderCard(rec conference.Record, th Theme, now time.Time, width int, selected bool) string {
	inner := width - 6 // border plus padding
	if inner < 20 {
		inner = 20
	}

	// Raw text is truncated before styling; runewidth cannot measure
	// strings that already carry escape sequences.
	var lines []string
	add := func(s string) {
		if s != "" {
			lines = append(lines, s)
		}
	}

	add(th.CardTitle.Render(clip(rec.DisplayName(), inner)))
	add(metaLine(rec, th))
	if rec.Location != "" {
		add(th.CardMeta.Render(clip(rec.Location, inner)))
	}
	add(th.CardDates.Render(clip(datesLine(rec), inner)))
	if rec.Note != "" {
		add(th.CardNote.Render(clip(rec.Note, inner)))
	}
	add(tagLine(rec, th, now))
	lines = append(lines, "")
	add(deadlineBlock(rec, th, now))
	add(deadlineText(rec, th))
	add(abstractBlock(rec, th, now))
	add(linkLine(rec, th))

	box := th.Card
	if selected {
		box = th.CardSelected
	}
	return box.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func metaLine(rec conference.Record, th Theme) string {
	var parts []string
	if rec.Rating != "" {
		parts = append(parts, "Rating: "+rec.Rating)
	}
	if rec.H5Index != nil {
		parts = append(parts, fmt.Sprintf("h5-index: %d", *rec.H5Index))
	}
	if len(parts) == 0 {
		return ""
	}
	return th.CardMeta.Render(strings.Join(parts, "  "))
}

// datesLine renders the conference days in the record's own timezone. The
// end date only shows when it differs from the start, and approximate
// records degrade to month granularity with a "~" prefix.
func datesLine(rec conference.Record) string {
	opts := timefmt.Options{
		MonthYearOnly:   rec.IsApproximateDeadline,
		DisplayTimezone: rec.Zone(),
	}
	prefix := ""
	if rec.IsApproximateDeadline {
		prefix = "~"
	}

	start := prefix + timefmt.FormatInstant(rec.ConferenceStartDate, opts)
	if rec.ConferenceEndDate == "" || rec.ConferenceEndDate == rec.ConferenceStartDate {
		return start
	}
	end := prefix + timefmt.FormatInstant(rec.ConferenceEndDate, opts)
	if end == start {
		return start
	}
	return start + " to " + end
}

// tagLine renders the record's tags followed by an urgency badge. The badge
// is suppressed for approximate records and once the deadline has passed.
func tagLine(rec conference.Record, th Theme, now time.Time) string {
	var b strings.Builder
	for _, tag := range rec.Tags {
		b.WriteString(th.Tag.Render(tag))
	}
	if badge := urgencyBadge(rec, th, now); badge != "" {
		b.WriteString(badge)
	}
	return b.String()
}

func urgencyBadge(rec conference.Record, th Theme, now time.Time) string {
	if rec.IsApproximateDeadline {
		return ""
	}
	target, err := rec.DeadlineTime()
	if err != nil {
		return ""
	}
	remaining := target.Sub(now)
	if countdown.Passed(remaining) {
		return ""
	}
	switch countdown.TierFor(remaining) {
	case countdown.TierCritical:
		return th.BadgeCritical.Render("Less than 24h")
	case countdown.TierSoon:
		return th.BadgeSoon.Render("Due Soon")
	}
	if remaining < 30*24*time.Hour {
		return th.BadgeUpcoming.Render("This Month")
	}
	return ""
}

// deadlineBlock is the main countdown. Approximate records get a single
// coarse bucket instead of a ticking breakdown.
func deadlineBlock(rec conference.Record, th Theme, now time.Time) string {
	target, err := rec.DeadlineTime()
	if err != nil {
		return th.CountdownLabel.Render("Deadline: ") + th.CountdownNeutral.Render(timefmt.Invalid)
	}
	remaining := target.Sub(now)

	if rec.IsApproximateDeadline {
		return th.CountdownLabel.Render("Deadline: ") + th.CountdownNeutral.Render(countdown.ApproxLabel(remaining))
	}
	if countdown.Passed(remaining) {
		return th.EndedBanner.Render("Deadline passed")
	}

	style := th.CountdownNeutral
	switch countdown.TierFor(remaining) {
	case countdown.TierCritical:
		style = th.CountdownCritical
	case countdown.TierSoon:
		style = th.CountdownSoon
	}
	return th.CountdownLabel.Render("Deadline in ") + renderBreakdown(countdown.Decompose(remaining), style, th.CountdownUnit)
}

func renderBreakdown(b countdown.Breakdown, value, unit lipgloss.Style) string {
	return fmt.Sprintf("%s%s %s%s %s%s %s%s",
		value.Render(fmt.Sprintf("%d", b.Days)), unit.Render("d"),
		value.Render(fmt.Sprintf("%02d", b.Hours)), unit.Render("h"),
		value.Render(fmt.Sprintf("%02d", b.Minutes)), unit.Render("m"),
		value.Render(fmt.Sprintf("%02d", b.Seconds)), unit.Render("s"))
}

// deadlineText restates the deadline as a full timestamp in the record's
// own zone. Approximate records show month granularity only.
func deadlineText(rec conference.Record, th Theme) string {
	opts := timefmt.Options{
		MonthYearOnly:       rec.IsApproximateDeadline,
		IncludeTime:         !rec.IsApproximateDeadline,
		IncludeTimezoneName: !rec.IsApproximateDeadline,
		DisplayTimezone:     rec.Zone(),
	}
	label := "Full Paper Submission: "
	text := timefmt.FormatInstant(rec.Deadline, opts)
	if rec.IsApproximateDeadline {
		label = "Approx. Full Paper Submission: "
		text = "~" + text
	}
	return th.DeadlineText.Render(label + text)
}

// abstractBlock renders the secondary abstract-deadline countdown. When the
// main deadline has passed but the abstract one has not, both countdown and
// text get the "still open" emphasis.
func abstractBlock(rec conference.Record, th Theme, now time.Time) string {
	if rec.AbstractDeadline == "" || rec.IsApproximateDeadline {
		return ""
	}
	target, err := rec.AbstractDeadlineTime()
	if err != nil {
		return th.CountdownLabel.Render("Abstract: ") + th.DeadlineText.Render(timefmt.Invalid)
	}
	remaining := target.Sub(now)

	text := timefmt.FormatInstant(rec.AbstractDeadline, timefmt.Options{
		IncludeTime:         true,
		IncludeTimezoneName: true,
		DisplayTimezone:     rec.Zone(),
	})

	if countdown.Passed(remaining) {
		return th.CountdownLabel.Render("Abstract: ") + th.DeadlineText.Render("passed ("+text+")")
	}

	style := th.DeadlineText
	label := "Abstract in "
	if mainPassed(rec, now) {
		style = th.AbstractOpen
		label = "Abstract still open! "
	}
	b := countdown.Decompose(remaining)
	return th.CountdownLabel.Render(label) +
		style.Render(fmt.Sprintf("%dd %02dh %02dm %02ds (%s)", b.Days, b.Hours, b.Minutes, b.Seconds, text))
}

func mainPassed(rec conference.Record, now time.Time) bool {
	target, err := rec.DeadlineTime()
	if err != nil {
		return false
	}
	return countdown.Passed(target.Sub(now))
}

// linkLine renders the call to action. Approximate records and records
// without a website get a greyed placeholder instead of a link.
func linkLine(rec conference.Record, th Theme) string {
	switch {
	case rec.IsApproximateDeadline:
		return th.LinkDisabled.Render(linkApproximate)
	case rec.Website == "":
		return th.LinkDisabled.Render(linkUnavailable)
	default:
		return th.LinkActive.Render(rec.Website)
	}
}

func clip(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
