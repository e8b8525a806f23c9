package helpers

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

// Viewport is the window size every session opens with.
var Viewport = playwright.Size{Width: 1920, Height: 1080}

// ChromiumArgs are the command-line switches passed to Chromium.
var ChromiumArgs = []string{
	"--no-sandbox",
	"--disable-dev-shm-usage",
	"--window-size=1920,1080",
	"--disable-gpu",
	"--disable-blink-features=AutomationControlled",
	"--disable-features=PasswordLeakDetection",
}

// FirefoxArgs are the command-line switches passed to Firefox.
var FirefoxArgs = []string{"--width=1920", "--height=1080"}

// ChromePreferences silences the password manager and its leak warnings,
// both of which pop dialogs over the login form.
var ChromePreferences = map[string]any{
	"credentials_enable_service": false,
	"profile": map[string]any{
		"password_manager_enabled":        false,
		"password_manager_leak_detection": false,
	},
}

var (
	installOnce sync.Once
	installErr  error
)

// InstallBrowsers downloads the Playwright driver and the configured
// browser. It runs at most once per process.
func InstallBrowsers(cfg *config.Config) error {
	installOnce.Do(func() {
		if installErr = ExportBrowsersPath(cfg); installErr != nil {
			return
		}
		installErr = playwright.Install(runOptions(cfg))
	})
	return installErr
}

// ExportBrowsersPath copies a browsers path that came from the config file
// into PLAYWRIGHT_BROWSERS_PATH. The installer and the driver read only the
// environment, and the driver lookup must search the directory they use.
func ExportBrowsersPath(cfg *config.Config) error {
	if cfg.BrowsersPath == "" || os.Getenv(browsersPathEnv) == cfg.BrowsersPath {
		return nil
	}
	if err := os.Setenv(browsersPathEnv, cfg.BrowsersPath); err != nil {
		return fmt.Errorf("could not export %s: %w", browsersPathEnv, err)
	}
	return nil
}

func runOptions(cfg *config.Config) *playwright.RunOptions {
	browser := "chromium"
	if cfg.Browser == config.Firefox {
		browser = "firefox"
	}
	return &playwright.RunOptions{Browsers: []string{browser}}
}

// Session owns one browser instance and its page for the duration of a test.
type Session struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Config     *config.Config

	t          testing.TB
	profileDir string
	closed     bool
}

// NewSession starts a browser for t and registers its release with
// t.Cleanup, so it is torn down whether the test passes or fails.
func NewSession(t testing.TB, cfg *config.Config) *Session {
	t.Helper()
	s := &Session{Config: cfg, t: t}
	t.Cleanup(s.TearDown)
	if err := s.Setup(); err != nil {
		t.Fatalf("could not start browser session: %v", err)
	}
	return s
}

// Setup launches the configured browser and opens a page.
func (s *Session) Setup() error {
	if err := os.MkdirAll(s.Config.ScreenshotsDir, 0o755); err != nil {
		return fmt.Errorf("could not create screenshots directory: %w", err)
	}

	if err := ExportBrowsersPath(s.Config); err != nil {
		return err
	}
	if !s.Config.Preinstalled {
		if err := InstallBrowsers(s.Config); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err := playwright.Run(runOptions(s.Config))
	if err != nil {
		// Fallback: install the driver explicitly, then retry once.
		_ = playwright.Install(runOptions(s.Config))
		pw, err = playwright.Run(runOptions(s.Config))
		if err != nil {
			return fmt.Errorf("could not start playwright after retry: %w", err)
		}
	}
	s.Playwright = pw

	if s.Config.Browser == config.Firefox {
		err = s.launchFirefox()
	} else {
		err = s.launchChromium()
	}
	if err != nil {
		return err
	}

	s.Page.SetDefaultTimeout(milliseconds(s.Config.Timeouts.Implicit))
	s.Page.SetDefaultNavigationTimeout(milliseconds(s.Config.Timeouts.PageLoad))
	log.Printf("[e2e-browser] %s session ready for %s", s.Config.Browser, s.t.Name())
	return nil
}

func (s *Session) launchChromium() error {
	exe, err := ResolveChromium(s.Config)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "wonka-e2e-profile-")
	if err != nil {
		return fmt.Errorf("could not create browser profile: %w", err)
	}
	s.profileDir = dir
	if err := WritePreferences(dir); err != nil {
		return err
	}

	ctx, err := s.Playwright.Chromium.LaunchPersistentContext(dir, playwright.BrowserTypeLaunchPersistentContextOptions{
		ExecutablePath:    playwright.String(exe),
		Headless:          playwright.Bool(s.Config.Headless),
		SlowMo:            playwright.Float(milliseconds(s.Config.SlowMo)),
		Args:              ChromiumArgs,
		IgnoreDefaultArgs: []string{"--enable-automation"},
		Viewport:          &Viewport,
	})
	if err != nil {
		return fmt.Errorf("could not launch chromium (%s): %w", exe, err)
	}
	s.Context = ctx

	if pages := ctx.Pages(); len(pages) > 0 {
		s.Page = pages[0]
		return nil
	}
	page, err := ctx.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	s.Page = page
	return nil
}

func (s *Session) launchFirefox() error {
	browser, err := s.Playwright.Firefox.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.Config.Headless),
		SlowMo:   playwright.Float(milliseconds(s.Config.SlowMo)),
		Args:     FirefoxArgs,
	})
	if err != nil {
		return fmt.Errorf("could not launch firefox: %w", err)
	}
	s.Browser = browser

	ctx, err := browser.NewContext(playwright.BrowserNewContextOptions{Viewport: &Viewport})
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	s.Context = ctx

	page, err := ctx.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	s.Page = page
	return nil
}

// WritePreferences seeds a Chromium user data directory with
// ChromePreferences.
func WritePreferences(userDataDir string) error {
	dir := filepath.Join(userDataDir, "Default")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create profile directory: %w", err)
	}
	data, err := json.Marshal(ChromePreferences)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "Preferences"), data, 0o644)
}

// TearDown screenshots a failed test, then releases the page, context,
// browser and driver. Calling it twice is harmless.
func (s *Session) TearDown() {
	if s.closed {
		return
	}
	s.closed = true

	if s.t.Failed() && s.Page != nil {
		if path, err := CaptureScreenshot(s.Page, s.Config.ScreenshotsDir, s.t.Name()); err != nil {
			log.Printf("[e2e-browser] failure screenshot for %s not saved: %v", s.t.Name(), err)
		} else {
			log.Printf("[e2e-browser] failure screenshot saved: %s", path)
		}
	}

	if s.Page != nil {
		_ = s.Page.Close()
	}
	if s.Context != nil {
		_ = s.Context.Close()
	}
	if s.Browser != nil {
		_ = s.Browser.Close()
	}
	if s.Playwright != nil {
		_ = s.Playwright.Stop()
	}
	if s.profileDir != "" {
		_ = os.RemoveAll(s.profileDir)
	}
}

// NavigateTo opens a route relative to the frontend base URL.
func (s *Session) NavigateTo(path string) error {
	url := s.Config.URL(path)
	_, err := s.Page.Goto(url)
	if err != nil && strings.Contains(err.Error(), "ERR_CONNECTION_REFUSED") {
		return fmt.Errorf("frontend not reachable at %s (check BASE_URL): %w", url, err)
	}
	return err
}

// Refresh reloads the current page.
func (s *Session) Refresh() error {
	_, err := s.Page.Reload()
	return err
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
