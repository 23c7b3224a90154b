//go:build darwin

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// listenForKeyboard puts the terminal in raw mode and feeds keys to k. It
// returns true when a quit key is pressed.
func listenForKeyboard(k *keyHandler) bool {
	fd := int(os.Stdin.Fd())
	oldState, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		// Not a terminal
		k.log.Debug("Keyboard shortcuts unavailable", "error", err)
		return false
	}

	newState := *oldState
	newState.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TIOCSETA, &newState); err != nil {
		return false
	}
	defer unix.IoctlSetTermios(fd, unix.TIOCSETA, oldState)

	buf := make([]byte, 8)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return false
		}
		for _, key := range splitKeys(buf[:n]) {
			if k.handle(key) {
				return true
			}
		}
	}
}
