package ui

import "github.com/charmbracelet/lipgloss"

// Theme bundles every style the view needs, so dark and light palettes can
// swap wholesale when the user toggles the preference.
type Theme struct {
	Name string

	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style
	CardDates    lipgloss.Style
	CardNote     lipgloss.Style

	Tag lipgloss.Style

	BadgeCritical lipgloss.Style
	BadgeSoon     lipgloss.Style
	BadgeUpcoming lipgloss.Style

	CountdownLabel    lipgloss.Style
	CountdownNeutral  lipgloss.Style
	CountdownSoon     lipgloss.Style
	CountdownCritical lipgloss.Style
	CountdownUnit     lipgloss.Style
	EndedBanner       lipgloss.Style
	AbstractOpen      lipgloss.Style

	DeadlineText lipgloss.Style
	LinkActive   lipgloss.Style
	LinkDisabled lipgloss.Style

	FilterLabel  lipgloss.Style
	FilterActive lipgloss.Style
	TagButton    lipgloss.Style
	TagActive    lipgloss.Style
	TagCursor    lipgloss.Style

	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style

	EmptyBox   lipgloss.Style
	EmptyTitle lipgloss.Style
}

// DarkTheme matches the web page's dark mode: pink accents on gray.
func DarkTheme() Theme {
	var (
		accent   = lipgloss.Color("212") // pink
		text     = lipgloss.Color("255")
		muted    = lipgloss.Color("245")
		dim      = lipgloss.Color("240")
		surface  = lipgloss.Color("236")
		red      = lipgloss.Color("196")
		amber    = lipgloss.Color("214")
		lavender = lipgloss.Color("147")
	)

	return Theme{
		Name: "dark",

		Header:    lipgloss.NewStyle().Bold(true).Foreground(text).Background(surface).Padding(0, 1),
		StatusBar: lipgloss.NewStyle().Foreground(text).Background(surface).Padding(0, 1),
		Help:      lipgloss.NewStyle().Foreground(dim),

		Card:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(dim).Padding(0, 2),
		CardSelected: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 2),
		CardTitle:    lipgloss.NewStyle().Bold(true).Foreground(text),
		CardMeta:     lipgloss.NewStyle().Foreground(muted),
		CardDates:    lipgloss.NewStyle().Foreground(muted),
		CardNote:     lipgloss.NewStyle().Foreground(muted).Italic(true),

		Tag: lipgloss.NewStyle().Foreground(lavender).Background(surface).Padding(0, 1).MarginRight(1),

		BadgeCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(red).Padding(0, 1),
		BadgeSoon:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(amber).Padding(0, 1),
		BadgeUpcoming: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lavender).Padding(0, 1),

		CountdownLabel:    lipgloss.NewStyle().Foreground(muted),
		CountdownNeutral:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		CountdownSoon:     lipgloss.NewStyle().Bold(true).Foreground(amber),
		CountdownCritical: lipgloss.NewStyle().Bold(true).Foreground(red),
		CountdownUnit:     lipgloss.NewStyle().Foreground(dim),
		EndedBanner:       lipgloss.NewStyle().Bold(true).Foreground(text).Background(dim).Padding(0, 1),
		AbstractOpen:      lipgloss.NewStyle().Bold(true).Foreground(accent),

		DeadlineText: lipgloss.NewStyle().Foreground(muted),
		LinkActive:   lipgloss.NewStyle().Foreground(accent).Underline(true),
		LinkDisabled: lipgloss.NewStyle().Foreground(dim),

		FilterLabel:  lipgloss.NewStyle().Foreground(muted),
		FilterActive: lipgloss.NewStyle().Bold(true).Foreground(accent),
		TagButton:    lipgloss.NewStyle().Foreground(muted).Background(surface).Padding(0, 1).MarginRight(1),
		TagActive:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(accent).Padding(0, 1).MarginRight(1),
		TagCursor:    lipgloss.NewStyle().Bold(true).Underline(true),

		ModalBox:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(red).Padding(1, 3),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(red),

		EmptyBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(dim).Padding(1, 3),
		EmptyTitle: lipgloss.NewStyle().Bold(true).Foreground(text),
	}
}

// LightTheme is the same layout on a light palette.
func LightTheme() Theme {
	var (
		accent  = lipgloss.Color("162") // deep pink
		text    = lipgloss.Color("16")
		muted   = lipgloss.Color("240")
		dim     = lipgloss.Color("249")
		surface = lipgloss.Color("254")
		red     = lipgloss.Color("124")
		amber   = lipgloss.Color("130")
		violet  = lipgloss.Color("97")
	)

	t := DarkTheme()
	t.Name = "light"

	t.Header = lipgloss.NewStyle().Bold(true).Foreground(text).Background(surface).Padding(0, 1)
	t.StatusBar = lipgloss.NewStyle().Foreground(text).Background(surface).Padding(0, 1)
	t.Help = lipgloss.NewStyle().Foreground(muted)

	t.Card = t.Card.BorderForeground(dim)
	t.CardSelected = t.CardSelected.BorderForeground(accent)
	t.CardTitle = lipgloss.NewStyle().Bold(true).Foreground(text)
	t.CardMeta = lipgloss.NewStyle().Foreground(muted)
	t.CardDates = lipgloss.NewStyle().Foreground(muted)
	t.CardNote = lipgloss.NewStyle().Foreground(muted).Italic(true)

	t.Tag = lipgloss.NewStyle().Foreground(violet).Background(surface).Padding(0, 1).MarginRight(1)

	t.BadgeCritical = t.BadgeCritical.Background(red)
	t.BadgeSoon = t.BadgeSoon.Background(amber).Foreground(lipgloss.Color("231"))
	t.BadgeUpcoming = t.BadgeUpcoming.Background(violet).Foreground(lipgloss.Color("231"))

	t.CountdownLabel = lipgloss.NewStyle().Foreground(muted)
	t.CountdownNeutral = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.CountdownSoon = lipgloss.NewStyle().Bold(true).Foreground(amber)
	t.CountdownCritical = lipgloss.NewStyle().Bold(true).Foreground(red)
	t.CountdownUnit = lipgloss.NewStyle().Foreground(dim)
	t.EndedBanner = lipgloss.NewStyle().Bold(true).Foreground(text).Background(dim).Padding(0, 1)
	t.AbstractOpen = lipgloss.NewStyle().Bold(true).Foreground(accent)

	t.DeadlineText = lipgloss.NewStyle().Foreground(muted)
	t.LinkActive = lipgloss.NewStyle().Foreground(accent).Underline(true)
	t.LinkDisabled = lipgloss.NewStyle().Foreground(dim)

	t.FilterLabel = lipgloss.NewStyle().Foreground(muted)
	t.FilterActive = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.TagButton = lipgloss.NewStyle().Foreground(muted).Background(surface).Padding(0, 1).MarginRight(1)
	t.TagActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(accent).Padding(0, 1).MarginRight(1)

	t.ModalBox = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(red).Padding(1, 3)
	t.ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(red)

	t.EmptyBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(dim).Padding(1, 3)
	t.EmptyTitle = lipgloss.NewStyle().Bold(true).Foreground(text)

	return t
}

// ThemeByName resolves a stored preference to a palette, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}
