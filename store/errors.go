package store

import "gitlab.com/tozd/go/errors"

// ErrCacheIO is the base for persistence load/save failures. Load
// failures are logged and treated as an empty cache; save failures are
// logged only.
var ErrCacheIO = errors.Base("page cache I/O failed")
