package browser

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/pkg/browser"
)

// Opener launches URLs in the system's default browser
type Opener struct {
	logger *slog.Logger
	open   func(string) error
}

func NewOpener(logger *slog.Logger) *Opener {
	// keep the launcher's own chatter off the terminal
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &Opener{
		logger: logger.With("component", "browser"),
		open:   browser.OpenURL,
	}
}

// OpenURL opens an http or https URL. It returns once the browser has been
// launched.
func (o *Opener) OpenURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: unsupported scheme", rawURL)
	}
	o.logger.Debug("opening browser", "url", rawURL)
	if err := o.open(rawURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
