package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	primary   lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	error     lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
	highlight lipgloss.Color
}

var darkPalette = palette{
	primary:   lipgloss.Color("#6C63FF"),
	accent:    lipgloss.Color("#FF6B6B"),
	muted:     lipgloss.Color("#666666"),
	success:   lipgloss.Color("#2ECC71"),
	warning:   lipgloss.Color("#F39C12"),
	error:     lipgloss.Color("#E74C3C"),
	fg:        lipgloss.Color("#C0CAF5"),
	subtle:    lipgloss.Color("#414868"),
	highlight: lipgloss.Color("#7AA2F7"),
}

var lightPalette = palette{
	primary:   lipgloss.Color("#4B3FD9"),
	accent:    lipgloss.Color("#C0392B"),
	muted:     lipgloss.Color("#8A8A8A"),
	success:   lipgloss.Color("#1E8449"),
	warning:   lipgloss.Color("#B9770E"),
	error:     lipgloss.Color("#C0392B"),
	fg:        lipgloss.Color("#1A1B26"),
	subtle:    lipgloss.Color("#C8CCD8"),
	highlight: lipgloss.Color("#2E59C7"),
}

// theme carries every style the views use. It is built once and handed to
// the views; nothing reads the terminal background after startup.
type theme struct {
	dark bool

	date  lipgloss.Style
	clock lipgloss.Style

	panel       lipgloss.Style
	activePanel lipgloss.Style

	button    lipgloss.Style
	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	negative  lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	errorText lipgloss.Style
	muted     lipgloss.Style
	highlight lipgloss.Style
	header    lipgloss.Style
	footer    lipgloss.Style
	selected  lipgloss.Style
	normal    lipgloss.Style
	underBar  lipgloss.Style
	overBar   lipgloss.Style
}

func newTheme(dark bool) theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return theme{
		dark: dark,

		date:  lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		clock: lipgloss.NewStyle().Bold(true).Foreground(p.primary),

		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.subtle).
			Padding(0, 2),
		activePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2),

		button: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 2),
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		label:     lipgloss.NewStyle().Foreground(p.fg),
		value:     lipgloss.NewStyle().Bold(true).Foreground(p.highlight),
		negative:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		success:   lipgloss.NewStyle().Foreground(p.success),
		warning:   lipgloss.NewStyle().Foreground(p.warning),
		errorText: lipgloss.NewStyle().Foreground(p.error),
		muted:     lipgloss.NewStyle().Foreground(p.muted),
		highlight: lipgloss.NewStyle().Foreground(p.highlight),
		header:    lipgloss.NewStyle().Padding(0, 1),
		footer:    lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		selected:  lipgloss.NewStyle().Foreground(p.primary).Bold(true),
		normal:    lipgloss.NewStyle().Foreground(p.fg),
		underBar:  lipgloss.NewStyle().Foreground(p.success),
		overBar:   lipgloss.NewStyle().Foreground(p.warning),
	}
}

// themeFor resolves the configured theme name. "auto" asks the terminal.
func themeFor(name string) theme {
	switch name {
	case "dark":
		return newTheme(true)
	case "light":
		return newTheme(false)
	default:
		return newTheme(lipgloss.HasDarkBackground())
	}
}
