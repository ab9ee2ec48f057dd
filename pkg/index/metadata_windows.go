//go:build windows

package index

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
)

// isHidden reports whether path carries the FILE_ATTRIBUTE_HIDDEN bit.
// Queried directly via golang.org/x/sys/windows rather than relying on
// os.FileInfo, since the latter's Sys() value isn't guaranteed to round-trip
// attribute bits uniformly across all Windows filesystem drivers.
func isHidden(path string, _ os.FileInfo) bool {
	pointer, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attributes, err := windows.GetFileAttributes(pointer)
	if err != nil {
		return false
	}
	return attributes&windows.FILE_ATTRIBUTE_HIDDEN != 0
}

// createdTime extracts the creation time that Windows tracks natively for
// every file, unlike most POSIX filesystems.
func createdTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Unix(0, 0).UTC()
	}
	return time.Unix(0, stat.CreationTime.Nanoseconds())
}
