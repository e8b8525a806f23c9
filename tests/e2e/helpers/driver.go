package helpers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
)

// MinExecutableSize filters out wrapper scripts and stubs that share a name
// with the real browser binary.
const MinExecutableSize = 1_000_000

const browsersPathEnv = "PLAYWRIGHT_BROWSERS_PATH"

// ChromiumExecutableNames are the file names of a full Chromium build, in
// order of preference. The macOS entries live inside an .app bundle.
var ChromiumExecutableNames = []string{"chrome", "chrome.exe", "chromium", "Chromium", "Google Chrome for Testing"}

// HeadlessShellNames are the file names of the headless-only Chromium shell.
var HeadlessShellNames = []string{"headless_shell", "headless_shell.exe"}

// ChromiumNames orders the accepted binaries for a run. The headless shell
// cannot open a window, so headed runs only fall back to it.
func ChromiumNames(headless bool) []string {
	if headless {
		return append(append([]string{}, HeadlessShellNames...), ChromiumExecutableNames...)
	}
	return append(append([]string{}, ChromiumExecutableNames...), HeadlessShellNames...)
}

// DriverNotFoundError reports that no usable browser binary exists under Dir.
type DriverNotFoundError struct {
	Dir string
}

func (e *DriverNotFoundError) Error() string {
	return fmt.Sprintf("browser executable not found in %s. Try: rm -rf %s && wonka-e2e install", e.Dir, e.Dir)
}

// IsDriverNotFound reports whether err is (or wraps) a DriverNotFoundError.
func IsDriverNotFound(err error) bool {
	var target *DriverNotFoundError
	return errors.As(err, &target)
}

// BrowsersDir is the directory Playwright installs browsers into.
func BrowsersDir(cfg *config.Config) string {
	if cfg != nil && cfg.BrowsersPath != "" {
		return cfg.BrowsersPath
	}
	if dir := os.Getenv(browsersPathEnv); dir != "" {
		return dir
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		cache = filepath.Join(home, ".cache")
	}
	return filepath.Join(cache, "ms-playwright")
}

// LocateExecutable walks root for regular files whose base name is one of
// names and whose size exceeds minSize. Among the matches an earlier name
// wins, then the newer browser revision (the numeric suffix of the top-level
// directory, as in chromium-1169). The winner is made executable before it is
// returned. Unreadable subtrees are skipped.
func LocateExecutable(root string, names []string, minSize int64) (string, error) {
	rank := make(map[string]int, len(names))
	for i, n := range names {
		if _, dup := rank[n]; !dup {
			rank[n] = i
		}
	}

	if _, err := os.Stat(root); err != nil {
		return "", &DriverNotFoundError{Dir: root}
	}

	var best *candidate
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		r, ok := rank[d.Name()]
		if !ok {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		if info.Size() <= minSize && !inAppBundle(path) {
			return nil
		}
		c := &candidate{path: path, rank: r, revision: revisionOf(root, path)}
		if best == nil || c.beats(best) {
			best = c
		}
		return nil
	})

	if best == nil {
		return "", &DriverNotFoundError{Dir: root}
	}
	if err := ensureExecutable(best.path); err != nil {
		return "", fmt.Errorf("failed to mark %s executable: %w", best.path, err)
	}
	return best.path, nil
}

type candidate struct {
	path     string
	rank     int
	revision int
}

func (c *candidate) beats(other *candidate) bool {
	if c.rank != other.rank {
		return c.rank < other.rank
	}
	return c.revision > other.revision
}

// revisionOf reads the number after the last '-' of the first path element
// below root, or -1 when there is none.
func revisionOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return -1
	}
	top := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	i := strings.LastIndex(top, "-")
	if i < 0 {
		return -1
	}
	n, err := strconv.Atoi(top[i+1:])
	if err != nil {
		return -1
	}
	return n
}

// inAppBundle reports whether path is the launcher of a macOS .app bundle.
// Those launchers are small; the browser code sits in the framework next to
// them, so the size check does not apply.
func inAppBundle(path string) bool {
	dir := filepath.ToSlash(filepath.Dir(path))
	return strings.HasSuffix(dir, ".app/Contents/MacOS")
}

// ResolveChromium locates the Chromium binary for cfg, preferring the full
// browser for headed runs and the headless shell for headless ones.
func ResolveChromium(cfg *config.Config) (string, error) {
	return LocateExecutable(BrowsersDir(cfg), ChromiumNames(cfg.Headless), MinExecutableSize)
}

func ensureExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0o111 == 0o111 {
		return nil
	}
	return os.Chmod(path, 0o755)
}
