// Package browser opens post permalinks in the system browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Validate checks that rawURL is an absolute http or https URL with a host,
// so it can be handed to the system opener without being read as a flag or a
// local file.
func Validate(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q (only http and https allowed)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: %q has no host", rawURL)
	}
	return nil
}

// command returns the opener invocation for goos.
func command(goos, rawURL string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{rawURL}, nil
	case "darwin":
		return "open", []string{rawURL}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Open validates rawURL and opens it in the default browser without waiting
// for the browser to exit.
func Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}

	name, args, err := command(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}

	return exec.Command(name, args...).Start() // #nosec G204 -- URL validated above
}
