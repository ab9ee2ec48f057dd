package index

// Debug enables extra invariant checks that are too costly to run
// unconditionally (notably re-validating sort order after every mutation).
// It is intended to be set by the CLI's --debug flag, never by library
// code.
var Debug = false

// assertSorted panics if paths is not strictly increasing. It is a no-op
// unless Debug is set.
func assertSorted(paths []string) {
	if !Debug {
		return
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1] >= paths[i] {
			panic("index: paths out of order at " + paths[i-1] + " / " + paths[i])
		}
	}
}
