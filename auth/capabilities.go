package auth

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// BrowserOpener opens a URL in the user's browser.
type BrowserOpener interface {
	OpenURL(url string) error
}

// SystemClipboard uses the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemBrowser opens URLs with the OS default browser.
type SystemBrowser struct{}

func (SystemBrowser) OpenURL(url string) error {
	return browser.OpenURL(url)
}

// NoopClipboard never copies anything.
type NoopClipboard struct{}

func (NoopClipboard) WriteAll(string) error { return nil }

// NoopBrowser never opens anything.
type NoopBrowser struct{}

func (NoopBrowser) OpenURL(string) error { return nil }

// Clock drives the polling loop.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
