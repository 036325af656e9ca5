package repository

import "errors"

// Sentinel errors shared by every repository implementation. The pgx
// implementations translate driver errors into these so services never
// see driver specifics.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)
