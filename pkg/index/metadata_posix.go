//go:build !windows

package index

import (
	"os"
	"strings"
	"time"
)

// isHidden reports whether path should be considered hidden on this
// platform. POSIX systems have no hidden-attribute bit, so the convention is
// a leading dot in the base name.
func isHidden(path string, _ os.FileInfo) bool {
	return strings.HasPrefix(pathName(normalizePath(path)), ".")
}

// createdTime returns the entry's creation time if the platform's stat
// structure reports one, otherwise the Unix epoch. Most POSIX filesystems
// (notably ext4 on Linux) don't expose a birth time through the standard
// stat(2) fields, so we fall back to the epoch rather than guess from
// modification or change time.
func createdTime(info os.FileInfo) time.Time {
	if birth, ok := platformBirthTime(info); ok {
		return birth
	}
	return time.Unix(0, 0).UTC()
}
