package index

import "github.com/pkg/errors"

// ErrUnsupportedSource indicates that a path given to FromPath or AddPath
// cannot be indexed: FromPath accepts only a directory, and AddPath only a
// regular file or a directory.
var ErrUnsupportedSource = errors.New("unsupported index source")
