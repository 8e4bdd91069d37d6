package composite

import "errors"

var ErrInvalidColor = errors.New("invalid color")
