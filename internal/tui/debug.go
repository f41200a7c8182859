package tui

import (
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
)

// logMsg logs a tea.Msg to the debug logger if one is configured.
// Spinner ticks are dropped to reduce noise.
func (m Model) logMsg(msg tea.Msg) {
	if m.debugLog == nil {
		return
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return
	}
	m.debugLog.Info("msg",
		"type", fmt.Sprintf("%T", msg),
		"detail", formatMsgDetail(msg),
	)
}

// formatMsgDetail extracts key fields from known message types for readable
// log output. Unknown types log their type name only; %#v could leak the
// environment carried by tea.EnvMsg.
func formatMsgDetail(msg tea.Msg) string {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return msg.String()
	case tea.WindowSizeMsg:
		return fmt.Sprintf("%dx%d", msg.Width, msg.Height)
	case tea.MouseClickMsg:
		return fmt.Sprintf("x=%d y=%d", msg.X, msg.Y)
	case tea.MouseWheelMsg:
		return fmt.Sprintf("x=%d y=%d", msg.X, msg.Y)
	case tea.BackgroundColorMsg:
		return fmt.Sprintf("dark=%t", msg.IsDark())

	case catalogLoadedMsg:
		return genErr(msg.gen, msg.err, fmt.Sprintf("sections=%d items=%d terminated=%q",
			msg.metrics.Sections, msg.metrics.Items, msg.metrics.Terminated))
	case panelContentLoadedMsg:
		return pathErr(msg.path, msg.err)
	case editorDoneMsg:
		return pathErr(msg.path, msg.err)
	case openDoneMsg:
		return pathErr(msg.path, msg.err)
	default:
		return ""
	}
}

func genErr(gen uint64, err error, extra string) string {
	if err != nil {
		return fmt.Sprintf("gen=%d err=%q %s", gen, err.Error(), extra)
	}
	return fmt.Sprintf("gen=%d %s", gen, extra)
}

func pathErr(path string, err error) string {
	if err != nil {
		return fmt.Sprintf("path=%q err=%q", path, err.Error())
	}
	return fmt.Sprintf("path=%q", path)
}
