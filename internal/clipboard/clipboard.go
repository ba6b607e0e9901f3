// Package clipboard copies text to the system clipboard via the
// platform's native helper binary.
package clipboard

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// helper returns the clipboard write command for the current platform,
// or nil when none is available.
func helper() *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("pbcopy")
	case "windows":
		return exec.Command("cmd", "/c", "clip")
	default:
		// Wayland first, then the X11 helpers.
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			if _, err := exec.LookPath("wl-copy"); err == nil {
				return exec.Command("wl-copy")
			}
		}
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard")
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input")
		}
		return nil
	}
}

// Write copies text to the system clipboard.
func Write(text string) error {
	cmd := helper()
	if cmd == nil {
		return errors.New("no clipboard helper found")
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// Available reports whether a clipboard helper exists on this system.
func Available() bool {
	return helper() != nil
}
