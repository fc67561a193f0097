package drivemirror

import (
	"github.com/Jumpaku/go-drivemirror/errors"
)

var (
	ErrInvalidPath     = errors.ErrInvalidPath
	ErrInvalidArgument = errors.ErrInvalidArgument
	ErrAPIError        = errors.ErrAPIError
	ErrIOError         = errors.ErrIOError
	ErrNotFound        = errors.ErrNotFound
	ErrAlreadyExists   = errors.ErrAlreadyExists
	ErrNotFolder       = errors.ErrNotFolder
	ErrNotReadable     = errors.ErrNotReadable
)
