package processor

import "errors"

var ErrUnknownStage = errors.New("unknown stage")
