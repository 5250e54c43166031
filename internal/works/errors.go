package works

import "errors"

var (
	ErrLoad              = errors.New("works: load failed")
	ErrDecode            = errors.New("works: decode failed")
	ErrNotFound          = errors.New("works: item not found")
	ErrUnsupportedSource = errors.New("works: unsupported source")
)
