// Package assets holds the data files compiled into the binaries.
package assets

import _ "embed"

// DefaultScene is the scene loaded when no -scene flag is given.
//
//go:embed world.json
var DefaultScene []byte
