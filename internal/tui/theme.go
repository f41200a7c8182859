package tui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	catppuccin "github.com/catppuccin/go"
)

// Theme holds the styles the list, its chrome and the preview panel are drawn
// with.
type Theme struct {
	// List rows.
	Header         lipgloss.Style
	FloatingHeader lipgloss.Style // a header pinned to the top of the list
	Footer         lipgloss.Style
	Cursor         lipgloss.Style
	Normal         lipgloss.Style

	// Chrome around the list.
	Rule       lipgloss.Style // breadcrumb chevrons and the separator
	Prompt     lipgloss.Style
	FilterText lipgloss.Style
	HintText   lipgloss.Style
	DimText    lipgloss.Style
	StatusBar  lipgloss.Style
	PickerBox  lipgloss.Style

	// Preview panel.
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	ErrorText  lipgloss.Style

	ChromaStyleName string
}

var activeTheme = ThemeDark()

// SetTheme sets the active global theme.
func SetTheme(t Theme) { activeTheme = t }

// ThemeDark returns the dark theme (Catppuccin Mocha palette).
func ThemeDark() Theme { return newTheme(catppuccin.Mocha, true) }

// ThemeLight returns the light theme (Catppuccin Latte palette).
func ThemeLight() Theme { return newTheme(catppuccin.Latte, false) }

// ThemeForBackground returns the appropriate theme for the terminal background.
func ThemeForBackground(isDark bool) Theme {
	if isDark {
		return ThemeDark()
	}
	return ThemeLight()
}

// palette names the flavor colors a theme is built from.
type palette struct {
	primary  color.Color // headers, prompt, borders
	accent   color.Color // floating header, filter text
	danger   color.Color
	rule     color.Color
	text     color.Color
	dim      color.Color
	hint     color.Color
	cursorBg color.Color
	pinnedBg color.Color
	statusBg color.Color
}

func hex(c catppuccin.Color) color.Color { return lipgloss.Color(c.Hex) }

// paletteFor picks palette colors from flavor. Light terminals swap the dim
// and hint tokens so dim text keeps its contrast.
func paletteFor(flavor catppuccin.Flavor, isDark bool) palette {
	p := palette{
		primary:  hex(flavor.Sapphire()),
		accent:   hex(flavor.Yellow()),
		danger:   hex(flavor.Red()),
		rule:     hex(flavor.Overlay0()),
		text:     hex(flavor.Text()),
		dim:      hex(flavor.Overlay1()),
		hint:     hex(flavor.Subtext0()),
		cursorBg: hex(flavor.Surface0()),
		pinnedBg: hex(flavor.Surface1()),
		statusBg: hex(flavor.Mantle()),
	}
	if !isDark {
		p.dim, p.hint = p.hint, p.dim
	}
	return p
}

func newTheme(flavor catppuccin.Flavor, isDark bool) Theme {
	p := paletteFor(flavor, isDark)
	t := Theme{ChromaStyleName: "catppuccin-mocha"}
	if !isDark {
		t.ChromaStyleName = "catppuccin-latte"
	}

	t.Header = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	t.FloatingHeader = lipgloss.NewStyle().Bold(true).Foreground(p.accent).Background(p.pinnedBg)
	t.Footer = lipgloss.NewStyle().Foreground(p.dim).Italic(true)
	t.Cursor = lipgloss.NewStyle().Bold(true).Foreground(p.text).Background(p.cursorBg)
	t.Normal = lipgloss.NewStyle().Foreground(p.text)

	t.Rule = lipgloss.NewStyle().Foreground(p.rule)
	t.Prompt = lipgloss.NewStyle().Foreground(p.primary)
	t.FilterText = lipgloss.NewStyle().Foreground(p.accent)
	t.HintText = lipgloss.NewStyle().Foreground(p.hint)
	t.DimText = lipgloss.NewStyle().Foreground(p.dim)
	t.StatusBar = lipgloss.NewStyle().Foreground(p.text).Background(p.statusBg).Padding(0, 1)
	t.PickerBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.primary).
		Padding(1, 2)

	t.Panel = lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.dim).
		Padding(0, 1)
	t.PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	t.ErrorText = lipgloss.NewStyle().Foreground(p.danger)

	return t
}
