package operations

import "errors"

var ErrMissingStyle = errors.New("watermark style is missing")
