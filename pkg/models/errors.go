package models

import "errors"

var ErrEmptyInput = errors.New("classification input is empty")
