//go:build !windows && !darwin

package index

import (
	"os"
	"time"
)

// platformBirthTime reports false on platforms (notably Linux) whose stat
// structure doesn't expose a reliable creation time through os.FileInfo.
func platformBirthTime(_ os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
