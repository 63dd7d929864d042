package mines

import "errors"

var (
	ErrInvalidDimensions = errors.New("board width and height must be positive and within the maximum area")
	ErrNegativeMineCount = errors.New("mine count must not be negative")
	ErrTooManyMines      = errors.New("mine count leaves no room around the first click")
)
