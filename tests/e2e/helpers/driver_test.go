package helpers

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
)

func writeSized(t *testing.T, path string, size int, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), mode))
}

func TestLocateExecutableSkipsStubs(t *testing.T) {
	root := t.TempDir()
	writeSized(t, filepath.Join(root, "chromium-1000", "chrome-linux", "chrome"), 10, 0o755)
	want := filepath.Join(root, "chromium-1100", "chrome-linux", "chrome")
	writeSized(t, want, 1_000_001, 0o644)

	found, err := LocateExecutable(root, ChromiumExecutableNames, MinExecutableSize)
	require.NoError(t, err)
	assert.Equal(t, want, found)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(found)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm(), "binary should be made executable")
	}
}

func TestLocateExecutableIgnoresOtherNames(t *testing.T) {
	root := t.TempDir()
	writeSized(t, filepath.Join(root, "chromium-1100", "chrome-linux", "libchrome.so"), 2_000_000, 0o755)
	writeSized(t, filepath.Join(root, "chromium-1100", "chrome-linux", "chrome"), 1_000_000, 0o755)

	_, err := LocateExecutable(root, ChromiumExecutableNames, MinExecutableSize)
	require.Error(t, err)
	assert.True(t, IsDriverNotFound(err), "exactly the threshold is still too small")
}

func TestLocateExecutableMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "absent")

	_, err := LocateExecutable(root, ChromiumExecutableNames, MinExecutableSize)
	require.Error(t, err)
	var notFound *DriverNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, root, notFound.Dir)
	assert.Contains(t, err.Error(), "rm -rf "+root+" && wonka-e2e install")
}

func TestBrowsersDir(t *testing.T) {
	assert.Equal(t, "/opt/pw", BrowsersDir(&config.Config{BrowsersPath: "/opt/pw"}))

	t.Setenv("PLAYWRIGHT_BROWSERS_PATH", "/env/pw")
	assert.Equal(t, "/env/pw", BrowsersDir(&config.Config{}))

	t.Setenv("PLAYWRIGHT_BROWSERS_PATH", "")
	assert.Equal(t, "ms-playwright", filepath.Base(BrowsersDir(&config.Config{})))
}

func TestResolveChromium(t *testing.T) {
	root := t.TempDir()
	want := filepath.Join(root, "chromium_headless_shell-1100", "chrome-linux", "headless_shell")
	writeSized(t, want, 1_500_000, 0o755)

	got, err := ResolveChromium(&config.Config{BrowsersPath: root})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocateExecutablePrefersNewestRevision(t *testing.T) {
	root := t.TempDir()
	writeSized(t, filepath.Join(root, "chromium-999", "chrome-linux", "chrome"), 1_500_000, 0o755)
	want := filepath.Join(root, "chromium-1169", "chrome-linux", "chrome")
	writeSized(t, want, 1_500_000, 0o755)
	writeSized(t, filepath.Join(root, "chromium-1100", "chrome-linux", "chrome"), 1_500_000, 0o755)

	found, err := LocateExecutable(root, ChromiumExecutableNames, MinExecutableSize)
	require.NoError(t, err)
	assert.Equal(t, want, found)
}

func TestResolveChromiumMatchesHeadlessMode(t *testing.T) {
	root := t.TempDir()
	full := filepath.Join(root, "chromium-1169", "chrome-linux", "chrome")
	shell := filepath.Join(root, "chromium_headless_shell-1169", "chrome-linux", "headless_shell")
	writeSized(t, full, 1_500_000, 0o755)
	writeSized(t, shell, 1_500_000, 0o755)

	got, err := ResolveChromium(&config.Config{BrowsersPath: root, Headless: false})
	require.NoError(t, err)
	assert.Equal(t, full, got, "a headed run needs the full browser")

	got, err = ResolveChromium(&config.Config{BrowsersPath: root, Headless: true})
	require.NoError(t, err)
	assert.Equal(t, shell, got)
}

func TestResolveChromiumMacOSBundle(t *testing.T) {
	root := t.TempDir()
	launcher := filepath.Join(root, "chromium-1169", "chrome-mac", "Chromium.app", "Contents", "MacOS", "Chromium")
	writeSized(t, launcher, 200_000, 0o755)
	writeSized(t, filepath.Join(root, "chromium_headless_shell-1169", "chrome-mac", "headless_shell"), 1_500_000, 0o755)

	got, err := ResolveChromium(&config.Config{BrowsersPath: root})
	require.NoError(t, err)
	assert.Equal(t, launcher, got)
}

func TestChromiumNames(t *testing.T) {
	headed := ChromiumNames(false)
	assert.Equal(t, "chrome", headed[0])
	assert.Equal(t, "headless_shell", headed[len(ChromiumExecutableNames)])

	headless := ChromiumNames(true)
	assert.Equal(t, "headless_shell", headless[0])
	assert.Len(t, headless, len(ChromiumExecutableNames)+len(HeadlessShellNames))
}
