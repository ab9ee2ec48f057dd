package index

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

// fakeFileReader is a deterministic FileReader for tests, grounded in the
// injectable FileReader capability rather than touching the filesystem.
type fakeFileReader struct {
	content map[string][]byte
}

func (r fakeFileReader) Read(path string, buf *[]byte) error {
	*buf = append((*buf)[:0], r.content[path]...)
	return nil
}

func TestComputeChecksumMatchesSHA512(t *testing.T) {
	reader := fakeFileReader{content: map[string][]byte{"a.txt": []byte("hello world")}}
	var scratch []byte

	got, err := computeChecksum(reader, "a.txt", &scratch)
	if err != nil {
		t.Fatal(err)
	}

	sum := sha512.Sum512([]byte("hello world"))
	want := hex.EncodeToString(sum[:])
	if got != want {
		t.Errorf("computeChecksum() = %q, want %q", got, want)
	}
}

func TestComputeChecksumReusesScratchBuffer(t *testing.T) {
	reader := fakeFileReader{content: map[string][]byte{
		"a.txt": []byte("first"),
		"b.txt": []byte("second, and longer"),
	}}
	var scratch []byte

	if _, err := computeChecksum(reader, "a.txt", &scratch); err != nil {
		t.Fatal(err)
	}
	firstCap := cap(scratch)

	if _, err := computeChecksum(reader, "b.txt", &scratch); err != nil {
		t.Fatal(err)
	}
	if cap(scratch) < firstCap && len(reader.content["b.txt"]) <= firstCap {
		t.Errorf("scratch buffer shrank unexpectedly: cap=%d", cap(scratch))
	}
}

func TestComputeChecksumDiffersForDifferentContent(t *testing.T) {
	reader := fakeFileReader{content: map[string][]byte{
		"a.txt": []byte("content A"),
		"b.txt": []byte("content B"),
	}}
	var scratch []byte

	sumA, err := computeChecksum(reader, "a.txt", &scratch)
	if err != nil {
		t.Fatal(err)
	}
	sumB, err := computeChecksum(reader, "b.txt", &scratch)
	if err != nil {
		t.Fatal(err)
	}
	if sumA == sumB {
		t.Error("expected different checksums for different content")
	}
}
