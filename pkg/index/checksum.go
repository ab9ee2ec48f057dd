package index

import (
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
	"os"

	"github.com/pkg/errors"
)

// checksumBufferHint is the initial capacity reserved for the checksum
// service's scratch buffer, chosen to match the average size of a
// user-managed file and avoid reallocation for the common case.
//
// Dinneen & Nguyen (2021), "How Big Are Peoples' Computer Files?", found an
// average file size in the single-digit kilobytes.
const checksumBufferHint = 8 * 1024

// hashFactory returns a constructor for the engine's content-hashing
// algorithm. It exists as a single-entry indirection (rather than a direct
// call to sha512.New) so that an alternative algorithm can be substituted
// without touching call sites, mirroring how larger indexing engines keep
// their hash choice behind a factory rather than hard-coding it everywhere.
func hashFactory() func() hash.Hash {
	return sha512.New
}

// FileReader is the capability the checksum service uses to obtain a file's
// content. It is injectable so that tests can supply deterministic byte
// content without touching the filesystem.
type FileReader interface {
	// Read reads the entire contents of path into buf, replacing its
	// contents.
	Read(path string, buf *[]byte) error
}

// NativeFileReader is the FileReader used in production: it reads files
// directly from the local filesystem.
type NativeFileReader struct{}

// Read implements FileReader.Read.
func (NativeFileReader) Read(path string, buf *[]byte) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "unable to open file %q", path)
	}
	defer file.Close()

	*buf = (*buf)[:0]
	writer := &sliceWriter{buf: buf}
	if _, err := io.Copy(writer, file); err != nil {
		return errors.Wrapf(err, "unable to read file %q", path)
	}
	return nil
}

// sliceWriter is an io.Writer that appends to a caller-owned byte slice,
// letting NativeFileReader reuse the checksum service's scratch buffer
// across invocations instead of allocating a fresh one per file.
type sliceWriter struct {
	buf *[]byte
}

// Write implements io.Writer.Write.
func (w *sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

// computeChecksum reads path via reader into scratch (which is cleared and
// reused across calls) and returns the lower-case hex-encoded hash of its
// contents.
func computeChecksum(reader FileReader, path string, scratch *[]byte) (string, error) {
	if cap(*scratch) == 0 {
		*scratch = make([]byte, 0, checksumBufferHint)
	}
	if err := reader.Read(path, scratch); err != nil {
		return "", err
	}
	hasher := hashFactory()()
	hasher.Write(*scratch)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
