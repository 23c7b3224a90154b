//go:build linux

package main

import (
	"os"
	"syscall"
	"unsafe"
)

// listenForKeyboard puts the terminal in raw mode and feeds keys to k. It
// returns true when a quit key is pressed.
func listenForKeyboard(k *keyHandler) bool {
	fd := int(os.Stdin.Fd())
	var oldState syscall.Termios
	if _, _, err := syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), syscall.TCGETS, uintptr(unsafe.Pointer(&oldState))); err != 0 {
		// Not a terminal
		k.log.Debug("Keyboard shortcuts unavailable", "error", err)
		return false
	}

	newState := oldState
	// Keep OPOST so \n still moves to column 0
	newState.Lflag &^= syscall.ICANON | syscall.ECHO | syscall.ISIG
	newState.Cc[syscall.VMIN] = 1
	newState.Cc[syscall.VTIME] = 0

	if _, _, err := syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), syscall.TCSETS, uintptr(unsafe.Pointer(&newState))); err != 0 {
		return false
	}
	defer syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), syscall.TCSETS, uintptr(unsafe.Pointer(&oldState)))

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
