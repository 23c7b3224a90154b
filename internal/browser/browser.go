// Package browser opens the operator page in the desktop's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Commander starts an external program.
type Commander interface {
	Start(name string, args ...string) error
}

// ExecCommander starts programs with os/exec.
type ExecCommander struct{}

func (ExecCommander) Start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open opens url with the platform's URL handler.
func Open(url string) error {
	return OpenWith(url, ExecCommander{}, runtime.GOOS)
}

// OpenWith is Open with an explicit commander and GOOS.
func OpenWith(url string, c Commander, goos string) error {
	name, args, err := command(url, goos)
	if err != nil {
		return err
	}
	return c.Start(name, args...)
}

func command(url, goos string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
