package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

const appName = "stickit"

var breadcrumbPadStyle = lipgloss.NewStyle().Padding(0, 1)

func renderBreadcrumb(segments ...string) string {
	var parts []string
	chevron := activeTheme.Rule.Render(" > ")
	style := activeTheme.HintText.Bold(true)
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		parts = append(parts, style.Render(seg))
	}
	return breadcrumbPadStyle.Render(strings.Join(parts, chevron))
}

func renderSeparator(width int) string {
	return activeTheme.Rule.Render(strings.Repeat("─", max(0, width)))
}
