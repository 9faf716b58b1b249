package report

import (
	"charm.land/lipgloss/v2"
)

// Color palette. Calm and high contrast, chosen for readers who find busy
// screens tiring.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Theme holds the styles a Renderer draws with. The plain theme applies no
// styling so output stays byte-stable for pipes and tests.
type Theme struct {
	plain bool

	Title      lipgloss.Style
	Heading    lipgloss.Style
	Label      lipgloss.Style
	Body       lipgloss.Style
	Hint       lipgloss.Style
	Good       lipgloss.Style
	Caution    lipgloss.Style
	Weak       lipgloss.Style
	Disclaimer lipgloss.Style
	BarFilled  lipgloss.Style
	BarEmpty   lipgloss.Style
}

// ColorTheme is the styled terminal theme.
func ColorTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary),
		Label: lipgloss.NewStyle().
			Foreground(TextDim),
		Body: lipgloss.NewStyle().
			Foreground(Text),
		Hint: lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true),
		Good: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),
		Caution: lipgloss.NewStyle().
			Foreground(Warning),
		Weak: lipgloss.NewStyle().
			Foreground(Error).
			Bold(true),
		Disclaimer: lipgloss.NewStyle().
			Foreground(Accent).
			Italic(true),
		BarFilled: lipgloss.NewStyle().
			Foreground(Secondary),
		BarEmpty: lipgloss.NewStyle().
			Foreground(Border),
	}
}

// PlainTheme renders text without escape sequences.
func PlainTheme() Theme {
	return Theme{plain: true}
}

// paint renders s in style unless the theme is plain.
func (t Theme) paint(style lipgloss.Style, s string) string {
	if t.plain || s == "" {
		return s
	}
	return style.Render(s)
}
