package index

import "testing"

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"", ""},
		{"a", "a"},
		{"a/b", "a/b"},
		{"a/b/", "a/b"},
		{`a\b`, "a/b"},
		{`a\b\`, "a/b"},
		{"/", "/"},
	}
	for _, testCase := range testCases {
		if result := normalizePath(testCase.path); result != testCase.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", testCase.path, result, testCase.expected)
		}
	}
}

func TestPathParent(t *testing.T) {
	testCases := []struct {
		path       string
		wantParent string
		wantOK     bool
	}{
		{"a", "", false},
		{"a/b", "a", true},
		{"a/b/c", "a/b", true},
	}
	for _, testCase := range testCases {
		parent, ok := pathParent(testCase.path)
		if parent != testCase.wantParent || ok != testCase.wantOK {
			t.Errorf("pathParent(%q) = (%q, %v), want (%q, %v)", testCase.path, parent, ok, testCase.wantParent, testCase.wantOK)
		}
	}
}

func TestPathName(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"a", "a"},
		{"a/b", "b"},
		{"a/b/c", "c"},
	}
	for _, testCase := range testCases {
		if result := pathName(testCase.path); result != testCase.expected {
			t.Errorf("pathName(%q) = %q, want %q", testCase.path, result, testCase.expected)
		}
	}
}

func TestPathIsChildOf(t *testing.T) {
	testCases := []struct {
		path     string
		dir      string
		expected bool
	}{
		{"a", "", true},
		{"", "", false},
		{"a/b", "a", true},
		{"a/bc", "a/b", false},
		{"ab", "a", false},
		{"a/b/c", "a", true},
		{"a", "a", false},
	}
	for _, testCase := range testCases {
		if result := pathIsChildOf(testCase.path, testCase.dir); result != testCase.expected {
			t.Errorf("pathIsChildOf(%q, %q) = %v, want %v", testCase.path, testCase.dir, result, testCase.expected)
		}
	}
}
