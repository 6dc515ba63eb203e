//go:build unix

package render

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminalWidth returns the current stdout width, falling back to 80
// columns when stdout isn't a terminal or the ioctl fails (e.g. when
// piped).
func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 80
	}
	return int(ws.Col)
}
