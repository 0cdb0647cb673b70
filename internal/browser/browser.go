// Package browser opens calculator pages with the system URL handler.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener launches a URL outside the terminal
type Opener interface {
	// Name returns the display name of the opener
	Name() string

	// Open launches url without waiting for the browser to exit
	Open(url string) error
}

// Config holds opener configuration
type Config struct {
	// Command forces a specific opener command; empty means auto-detect
	Command string

	// Priority order for auto-detection
	Priority []string
}

// DefaultConfig returns the default opener configuration for the running OS
func DefaultConfig() *Config {
	switch runtime.GOOS {
	case "darwin":
		return &Config{Priority: []string{"open"}}
	case "windows":
		return &Config{Priority: []string{"rundll32"}}
	default:
		return &Config{Priority: []string{"xdg-open", "wslview", "sensible-browser"}}
	}
}

// lookPath is swapped in tests
var lookPath = exec.LookPath

// startCommand is swapped in tests
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Detect finds an installed opener based on priority order
func Detect(cfg *Config) (Opener, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// If a specific command is requested, use only that
	if cfg.Command != "" {
		if isCommandAvailable(cfg.Command) {
			return newCommandOpener(cfg.Command), nil
		}
		return nil, fmt.Errorf("opener %s is not installed", cfg.Command)
	}

	priority := cfg.Priority
	if len(priority) == 0 {
		priority = DefaultConfig().Priority
	}

	for _, name := range priority {
		if isCommandAvailable(name) {
			return newCommandOpener(name), nil
		}
	}

	return nil, fmt.Errorf("no URL opener found (tried %v)", priority)
}

// isCommandAvailable checks if a command exists in PATH
func isCommandAvailable(name string) bool {
	_, err := lookPath(name)
	return err == nil
}

// commandOpener runs an external command with the URL as last argument
type commandOpener struct {
	command string
	args    []string
}

func newCommandOpener(command string) *commandOpener {
	o := &commandOpener{command: command}
	if command == "rundll32" {
		o.args = []string{"url.dll,FileProtocolHandler"}
	}
	return o
}

func (o *commandOpener) Name() string {
	return o.command
}

func (o *commandOpener) Open(url string) error {
	args := append(append([]string{}, o.args...), url)
	if err := startCommand(o.command, args...); err != nil {
		return fmt.Errorf("%s %s: %w", o.command, url, err)
	}
	return nil
}
