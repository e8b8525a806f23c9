package helpers

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
)

func TestWritePreferences(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WritePreferences(dir))

	data, err := os.ReadFile(filepath.Join(dir, "Default", "Preferences"))
	require.NoError(t, err)

	var prefs struct {
		CredentialsEnableService *bool `json:"credentials_enable_service"`
		Profile                  struct {
			PasswordManagerEnabled       *bool `json:"password_manager_enabled"`
			PasswordManagerLeakDetection *bool `json:"password_manager_leak_detection"`
		} `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(data, &prefs))
	require.NotNil(t, prefs.CredentialsEnableService)
	assert.False(t, *prefs.CredentialsEnableService)
	require.NotNil(t, prefs.Profile.PasswordManagerEnabled)
	assert.False(t, *prefs.Profile.PasswordManagerEnabled)
	require.NotNil(t, prefs.Profile.PasswordManagerLeakDetection)
	assert.False(t, *prefs.Profile.PasswordManagerLeakDetection)
}

func TestChromiumArgs(t *testing.T) {
	assert.Contains(t, ChromiumArgs, "--no-sandbox")
	assert.Contains(t, ChromiumArgs, "--disable-dev-shm-usage")
	assert.Contains(t, ChromiumArgs, "--window-size=1920,1080")
	assert.Contains(t, ChromiumArgs, "--disable-blink-features=AutomationControlled")
	assert.Equal(t, []string{"--width=1920", "--height=1080"}, FirefoxArgs)
}

func TestRunOptionsPicksBrowser(t *testing.T) {
	assert.Equal(t, []string{"chromium"}, runOptions(&config.Config{Browser: config.Chrome}).Browsers)
	assert.Equal(t, []string{"firefox"}, runOptions(&config.Config{Browser: config.Firefox}).Browsers)
}

func TestTearDownWithoutBrowserIsSafe(t *testing.T) {
	s := &Session{Config: &config.Config{ScreenshotsDir: t.TempDir()}, t: t}
	s.TearDown()
	s.TearDown()
	assert.True(t, s.closed)
}

func TestExportBrowsersPath(t *testing.T) {
	t.Setenv("PLAYWRIGHT_BROWSERS_PATH", "")
	dir := t.TempDir()
	cfg := &config.Config{BrowsersPath: dir}

	require.NoError(t, ExportBrowsersPath(cfg))
	assert.Equal(t, dir, os.Getenv("PLAYWRIGHT_BROWSERS_PATH"))
	assert.Equal(t, BrowsersDir(&config.Config{}), BrowsersDir(cfg), "lookup and install must agree")
}

func TestExportBrowsersPathKeepsEnvironment(t *testing.T) {
	t.Setenv("PLAYWRIGHT_BROWSERS_PATH", "/env/pw")

	require.NoError(t, ExportBrowsersPath(&config.Config{}))
	assert.Equal(t, "/env/pw", os.Getenv("PLAYWRIGHT_BROWSERS_PATH"))
}

// gotoPage records navigations and fails them with err.
type gotoPage struct {
	playwright.Page
	visited []string
	err     error
}

func (p *gotoPage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.visited = append(p.visited, url)
	return nil, p.err
}

func TestNavigateTo(t *testing.T) {
	page := &gotoPage{}
	s := &Session{Page: page, Config: &config.Config{BaseURL: "http://factory.test"}, t: t}

	require.NoError(t, s.NavigateTo("booking"))
	assert.Equal(t, []string{"http://factory.test/booking"}, page.visited)
}

func TestNavigateToExplainsRefusedConnection(t *testing.T) {
	refused := errors.New("net::ERR_CONNECTION_REFUSED at http://factory.test/login")
	s := &Session{Page: &gotoPage{err: refused}, Config: &config.Config{BaseURL: "http://factory.test"}, t: t}

	err := s.NavigateTo("/login")
	require.Error(t, err)
	assert.ErrorIs(t, err, refused)
	assert.Contains(t, err.Error(), "check BASE_URL")
}
