package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	devicons "github.com/epilande/go-devicons"
)

// IconMode controls which icon set the TUI uses.
type IconMode string

// Icon mode values controlling which icon set is displayed.
const (
	IconModeNerdFont IconMode = "nerdfont"
	IconModeUnicode  IconMode = "unicode"
	IconModeNone     IconMode = "none"
)

var validIconModes = []IconMode{IconModeNerdFont, IconModeUnicode, IconModeNone}

// ParseIconMode validates and normalizes an icon mode string.
func ParseIconMode(s string) (IconMode, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return IconModeNerdFont, nil
	}
	for _, m := range validIconModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid icons mode %q (valid: nerdfont, unicode, none)", s)
}

// Section header glyphs.
const (
	nerdFontSectionIcon = "\uf115"    // nf-fa-folder_open_o
	unicodeSectionIcon  = "\U0001F4C2" // 📂
)

// unicodeIcons maps file extensions to standard Unicode symbols.
var unicodeIcons = map[string]string{
	".md":   "\U0001F4DD", // 📝
	".txt":  "\U0001F4C4", // 📄
	".png":  "\U0001F5BC", // 🖼
	".jpg":  "\U0001F5BC", // 🖼
	".jpeg": "\U0001F5BC", // 🖼
	".gif":  "\U0001F5BC", // 🖼
	".svg":  "\U0001F5BC", // 🖼
	".zip":  "\U0001F4E6", // 📦
	".tar":  "\U0001F4E6", // 📦
	".gz":   "\U0001F4E6", // 📦
	".yaml": "\u2699",     // ⚙
	".yml":  "\u2699",     // ⚙
	".toml": "\u2699",     // ⚙
	".json": "\u2699",     // ⚙
	".sh":   "\u25B6",     // ▶
	".bash": "\u25B6",     // ▶
	".zsh":  "\u25B6",     // ▶
	".go":   "\u25C6",     // ◆
}

const unicodeDefaultIcon = "\U0001F4C4" // 📄

// itemIcon returns the glyph for a catalog item, chosen by file name.
func itemIcon(name string, mode IconMode) string {
	switch mode {
	case IconModeUnicode:
		if icon, ok := unicodeIcons[strings.ToLower(filepath.Ext(name))]; ok {
			return icon
		}
		return unicodeDefaultIcon
	case IconModeNerdFont:
		return devicons.IconForPath(name).Icon
	default:
		return ""
	}
}

// sectionIcon returns the glyph drawn before a section title.
func sectionIcon(mode IconMode) string {
	switch mode {
	case IconModeUnicode:
		return unicodeSectionIcon
	case IconModeNerdFont:
		return nerdFontSectionIcon
	default:
		return ""
	}
}

// renderItemIcon returns a styled icon followed by a space, or "" when icons
// are off. Selected cells keep the selection colors, so no color is applied.
func renderItemIcon(name string, selected bool, mode IconMode) string {
	icon := itemIcon(name, mode)
	if icon == "" {
		return ""
	}
	if selected {
		return icon + " "
	}
	if mode == IconModeNerdFont {
		if hex := devicons.IconForPath(name).Color; hex != "" {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(icon) + " "
		}
	}
	return activeTheme.DimText.Render(icon) + " "
}
