package main

import (
	"fmt"
	"time"

	"github.com/foldercompare/foldercompare/pkg/progress"
)

// clearLine erases the current line on an ANSI-capable terminal, letting a
// progress message overwrite the previous one in place instead of
// scrolling the screen.
func clearLine() {
	fmt.Print("\r\033[K")
}

// percentage formats current out of total as a fixed-width percentage,
// reporting 100% for an empty total rather than dividing by zero.
func percentage(current, total int) string {
	if total == 0 {
		return "100.0%"
	}
	return fmt.Sprintf("%04.1f%%", float64(current)/float64(total)*100)
}

// reportDiscovery starts a background reporter that prints the live value
// of counter once per second until stop is called, which blocks until the
// reporter has printed its last line and exited.
func reportDiscovery(counter *progress.Counter) (stop func()) {
	done := make(chan struct{})
	wait := progress.Reporter(time.Second, done, func() {
		clearLine()
		fmt.Printf("Discovered %d entries...", counter.Value())
	})
	return func() {
		close(done)
		wait()
		clearLine()
	}
}
