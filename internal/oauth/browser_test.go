package oauth

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

// mockBrowserLauncher replaces the real browser launcher for testing.
// It prevents actual browser opening and records what command would be executed.
func mockBrowserLauncher(launched *[]string) func(cmd *exec.Cmd) error {
	return func(cmd *exec.Cmd) error {
		*launched = append(*launched, strings.Join(cmd.Args, " "))
		return nil
	}
}

func withMockLauncher(t *testing.T) *[]string {
	t.Helper()
	var launched []string
	original := browserLauncher
	browserLauncher = mockBrowserLauncher(&launched)
	t.Cleanup(func() { browserLauncher = original })
	return &launched
}

func isSupportedPlatform() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "darwin", "windows":
		return true
	}
	return false
}

func TestOpenBrowser_SupportedPlatforms(t *testing.T) {
	launched := withMockLauncher(t)

	err := OpenBrowser(context.Background(), "https://example.com")

	if !isSupportedPlatform() {
		if err == nil || !strings.Contains(err.Error(), "unsupported platform") {
			t.Errorf("Expected 'unsupported platform' error on %s, got: %v", runtime.GOOS, err)
		}
		return
	}

	if err != nil {
		t.Fatalf("Expected no error on supported platform %s, got: %v", runtime.GOOS, err)
	}
	if len(*launched) != 1 || !strings.Contains((*launched)[0], "https://example.com") {
		t.Errorf("Expected one launch with the URL, got %v", *launched)
	}
}

func TestOpenBrowser_EmptyURL(t *testing.T) {
	launched := withMockLauncher(t)

	err := OpenBrowser(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "cannot be empty") {
		t.Errorf("Expected 'cannot be empty' error, got: %v", err)
	}
	if len(*launched) != 0 {
		t.Errorf("Expected no launch, got %v", *launched)
	}
}

func TestOpenBrowser_InvalidURLScheme(t *testing.T) {
	launched := withMockLauncher(t)

	invalid := []struct {
		name string
		url  string
	}{
		{"file scheme", "file:///etc/passwd"},
		{"javascript scheme", "javascript:alert(1)"},
		{"ftp scheme", "ftp://example.com/file"},
		{"no scheme", "example.com"},
		{"custom scheme", "myapp://callback"},
		{"missing host", "https://"},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			err := OpenBrowser(context.Background(), tc.url)
			if err == nil {
				t.Fatalf("Expected error for URL with %s: %s", tc.name, tc.url)
			}
			if !strings.Contains(err.Error(), "invalid URL") {
				t.Errorf("Expected 'invalid URL' in error, got: %s", err.Error())
			}
		})
	}

	if len(*launched) != 0 {
		t.Errorf("Expected no launches for invalid URLs, got %v", *launched)
	}
}
