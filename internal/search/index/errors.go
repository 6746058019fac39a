package index

import "errors"

// ErrStaleIndex indicates an exported index was built from different items
// than the ones currently loaded.
var ErrStaleIndex = errors.New("index is stale")
