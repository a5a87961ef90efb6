package pet

import "errors"

var ErrInvalidInput = errors.New("invalid input")
