package ratecard

import "errors"

var ErrValidation = errors.New("validation error")
