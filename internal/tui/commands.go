package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/daptify14/stickit/internal/catalog"
)

// walkTimeout bounds a single directory walk.
const walkTimeout = 30 * time.Second

// panelMaxBytes caps how much of a file the preview panel reads.
const panelMaxBytes = 256 * 1024

// walkCmd starts a walk of the root directory, cancelling any walk still in
// flight. The result is tagged with the current generation; callers bump it
// first when the walk replaces an earlier one.
func (m *Model) walkCmd() tea.Cmd {
	if m.walk.cancel != nil {
		m.walk.cancel()
	}
	gen := m.gen
	root := m.root
	opts := m.opts.Walk

	ctx, cancel := context.WithTimeout(context.Background(), walkTimeout)
	m.walk.cancel = cancel
	return func() tea.Msg {
		defer cancel()
		c, metrics, err := catalog.Walk(ctx, root, opts)
		return catalogLoadedMsg{catalog: c, metrics: metrics, err: err, gen: gen}
	}
}

// loadPanelContentCmd reads a file for the preview panel.
func loadPanelContentCmd(path string) tea.Cmd {
	return func() tea.Msg {
		content, err := readPreview(path)
		return panelContentLoadedMsg{path: path, content: content, err: err}
	}
}

var errBinaryFile = errors.New("binary file")

func readPreview(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	buf := make([]byte, min(info.Size(), panelMaxBytes))
	n, err := f.Read(buf)
	if err != nil && n == 0 && info.Size() > 0 {
		return "", err
	}
	buf = buf[:n]
	if !utf8.Valid(buf) || strings.ContainsRune(string(buf), 0) {
		return "", errBinaryFile
	}
	content := string(buf)
	if info.Size() > panelMaxBytes {
		content += "\n…"
	}
	return content, nil
}

// editorCommand resolves the editor: option > $EDITOR > "vi".
func (m Model) editorCommand(path string) *exec.Cmd {
	editor := strings.TrimSpace(m.opts.Editor)
	if editor == "" {
		editor = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	args := append(parts[1:], path)
	return exec.Command(parts[0], args...) //#nosec G204 -- user-configured editor
}

// editCmd suspends the program and runs the editor on path.
func (m Model) editCmd(path string) tea.Cmd {
	return tea.ExecProcess(m.editorCommand(path), func(err error) tea.Msg {
		return editorDoneMsg{path: path, err: err}
	})
}

// openCmd hands path to the system opener.
func openCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return openDoneMsg{path: path, err: openPath(path)}
	}
}
