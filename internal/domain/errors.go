package domain

import "errors"

// ErrMissingResource marks a font or logo that cannot be loaded and has no
// fallback. It is fatal at startup.
var ErrMissingResource = errors.New("missing resource")
