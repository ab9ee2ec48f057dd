package index

import (
	"testing"
	"time"
)

func TestMetadataNameParentIsChildOf(t *testing.T) {
	m := Metadata{Path: "sub/dir/file.txt"}
	if m.Name() != "file.txt" {
		t.Errorf("Name() = %q, want %q", m.Name(), "file.txt")
	}
	parent, ok := m.Parent()
	if !ok || parent != "sub/dir" {
		t.Errorf("Parent() = (%q, %v), want (%q, true)", parent, ok, "sub/dir")
	}
	if !m.IsChildOf("sub") {
		t.Error("expected file to be a child of sub")
	}
	if m.IsChildOf("other") {
		t.Error("did not expect file to be a child of other")
	}
}

func TestMetadataEqual(t *testing.T) {
	now := time.Unix(1000, 0).UTC()
	a := Metadata{Path: "x", CreatedTime: now, ModifiedTime: now, Hidden: true}
	b := Metadata{Path: "x", CreatedTime: now, ModifiedTime: now, Hidden: true}
	c := Metadata{Path: "x", CreatedTime: now, ModifiedTime: now, Hidden: false}

	if !a.Equal(b) {
		t.Error("expected a and b to be equal")
	}
	if a.Equal(c) {
		t.Error("did not expect a and c to be equal")
	}
}
