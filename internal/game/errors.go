package game

import "errors"

var (
	ErrInvalidDirection = errors.New("invalid direction")
)
