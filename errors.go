package bitmask

import "errors"

var (
	ErrNotStruct    = errors.New("expected struct")
	ErrNotStructPtr = errors.New("expected pointer to struct")
	ErrNotBool      = errors.New("field is not bool")
	ErrBadTag       = errors.New("malformed bit tag")

	// Schema resolution errors. These mean the schema definition itself is
	// broken and no codec call should be attempted with it.
	ErrMissingIndex    = errors.New("missing bit index")
	ErrIndexOutOfRange = errors.New("bit index out of range")
	ErrDuplicateIndex  = errors.New("duplicate bit index")

	// ErrSizeMismatch is the only per-call error: the supplied encoding does
	// not have the width the schema resolved to.
	ErrSizeMismatch = errors.New("encoding size mismatch")
)
