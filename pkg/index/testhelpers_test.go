package index_test

import "time"

// epoch is the zero timestamp indexbuilder defaults to; tests that need to
// vary created/modified times start from here so comparisons against
// default-built entries stay meaningful.
var epoch = time.Unix(0, 0).UTC()

// fakeReader is a deterministic index.FileReader for tests that exercise
// lazy checksum computation without touching the filesystem.
type fakeReader struct {
	content map[string][]byte
}

func (r fakeReader) Read(path string, buf *[]byte) error {
	*buf = append((*buf)[:0], r.content[path]...)
	return nil
}
