package helpers

import (
	"regexp"
	"strconv"
	"time"
)

// UniqueSuffix returns the current Unix time in seconds, used to keep entity
// names from colliding across runs.
func UniqueSuffix() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// DaysFromNow is now plus the given number of whole days, truncated to the minute.
func DaysFromNow(days int) time.Time {
	return time.Now().AddDate(0, 0, days).Truncate(time.Minute)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeName turns a test name into something safe to use as a file name.
func SanitizeName(name string) string {
	s := unsafeFileChars.ReplaceAllString(name, "_")
	if s == "" {
		return "test"
	}
	return s
}
