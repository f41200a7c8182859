package tui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

// capability reports whether a host integration can run, and why not.
type capability struct {
	Available bool
	Reason    string
}

var (
	cachedFileManagerCap capability
	fileManagerCapOnce   sync.Once
)

// fileManagerCapability probes once for the system opener used by the open key.
func fileManagerCapability() capability {
	fileManagerCapOnce.Do(func() {
		cachedFileManagerCap = computeFileManagerCapability()
	})
	return cachedFileManagerCap
}

func computeFileManagerCapability() capability {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("open"); err != nil {
			return capability{Available: false, Reason: "open command not found"}
		}
		return capability{Available: true}
	case "linux":
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return capability{Available: false, Reason: "xdg-open command not found"}
		}
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return capability{Available: false, Reason: "no GUI session detected"}
		}
		return capability{Available: true}
	default:
		return capability{Available: false, Reason: "unsupported platform"}
	}
}

// openerCommand returns the command that opens path with the desktop's
// default application.
func openerCommand(path string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path), nil
	case "linux":
		return exec.Command("xdg-open", path), nil
	default:
		return nil, fmt.Errorf("open path not supported on platform %s", runtime.GOOS)
	}
}

// openPath starts the opener without waiting for it.
func openPath(path string) error {
	cmd, err := openerCommand(path)
	if err != nil {
		return err
	}
	return cmd.Start()
}
