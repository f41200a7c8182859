package tui

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

const pickerSectionKey = "section"

// openSectionPicker builds the jump-to-section form and returns its Init cmd.
func (m Model) openSectionPicker() (tea.Model, tea.Cmd) {
	if len(m.list.visible.Sections) == 0 {
		m.ui.message = "No sections to jump to"
		return m, nil
	}
	m.view = PickerScreen
	choice := strconv.Itoa(m.currentSection())
	m.picker.choice = &choice
	m.picker.form = m.buildSectionForm(m.picker.choice)
	return m, m.picker.form.Init()
}

// buildSectionForm creates a huh.Select over the visible sections bound to
// choice, which starts at the section under the cursor.
func (m Model) buildSectionForm(choice *string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(m.list.visible.Sections))
	for i, sec := range m.list.visible.Sections {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%d)", sec.Title, len(sec.Items)), strconv.Itoa(i)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(pickerSectionKey).
				Title("Jump to section").
				Options(opts...).
				Value(choice),
		),
	).WithTheme(huh.ThemeFunc(huh.ThemeCatppuccin)).
		WithWidth(56).
		WithShowHelp(false)
}

// handlePickerUpdate routes messages to the section form and handles
// completion or abort.
func (m Model) handlePickerUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.picker.form == nil || m.picker.choice == nil {
		m.view = ListScreen
		return m, nil
	}
	form, cmd := m.picker.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.picker.form = f
	}

	switch m.picker.form.State {
	case huh.StateCompleted:
		return m.completeSectionPicker()
	case huh.StateAborted:
		m.view = ListScreen
		m.picker.form, m.picker.choice = nil, nil
		return m, nil
	}
	return m, cmd
}

// completeSectionPicker closes the picker and jumps to the chosen section.
func (m Model) completeSectionPicker() (tea.Model, tea.Cmd) {
	m.view = ListScreen
	section, err := strconv.Atoi(*m.picker.choice)
	m.picker.form, m.picker.choice = nil, nil
	if err != nil {
		return m, nil
	}
	return m.jumpToSection(section)
}

// renderPicker wraps the form's View() in a centered box.
func (m Model) renderPicker() string {
	if m.picker.form == nil {
		return ""
	}
	box := activeTheme.PickerBox.Width(60)
	return lipgloss.Place(m.effectiveWidth(), m.effectiveHeight(), lipgloss.Center, lipgloss.Center, box.Render(m.picker.form.View()))
}
