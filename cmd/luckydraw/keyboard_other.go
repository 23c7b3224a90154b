//go:build !linux && !darwin

package main

import (
	"os"
)

// listenForKeyboard reads line-buffered console input, so keys take effect
// after Enter and Enter itself is not a draw key here. It returns true when
// a quit key is pressed.
func listenForKeyboard(k *keyHandler) bool {
	buf := make([]byte, 64)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return false
		}
		for _, key := range splitKeys(buf[:n]) {
			if key == keyEnter {
				continue
			}
			if k.handle(key) {
				return true
			}
		}
	}
}
