package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenshotPath is <dir>/<test name>_<YYYYMMDD_HHMMSS>.png.
func ScreenshotPath(dir, testName string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", SanitizeName(testName), at.Format("20060102_150405")))
}

// CaptureScreenshot saves a full-page screenshot of page for testName and
// returns the written path.
func CaptureScreenshot(page playwright.Page, dir, testName string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	path := ScreenshotPath(dir, testName, time.Now())
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}
	return path, nil
}
