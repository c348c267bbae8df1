package ui

import "github.com/tobna/ai-deadlines/internal/conference"

// Messages for Bubble Tea

// UpcomingLoadedMsg is sent when the upcoming feed has been fetched.
type UpcomingLoadedMsg struct {
	Records []conference.Record
	Err     error
}

// ArchiveLoadedMsg is sent when the archive feed has been fetched. A
// failed archive load is non-fatal: the archive becomes empty and a notice
// is shown.
type ArchiveLoadedMsg struct {
	Records []conference.Record
	Err     error
}

// CountdownTickMsg is delivered once per second for each live card. It
// carries the card's record ID; the view recomputes every countdown from
// the wall clock on render, so the message only has to wake the program.
type CountdownTickMsg struct {
	ID string
}

// ThemeSavedMsg reports the outcome of persisting the theme preference.
type ThemeSavedMsg struct {
	Err error
}
