package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound       = errors.New("db: key not found")
	ErrUnknownCollection = errors.New("db: unknown collection")
	ErrInvalidQuery      = errors.New("db: invalid query")
)

// Op constants name the failing operation for error context.
const (
	OpPing    = "PING"
	OpSearch  = "SEARCH"
	OpList    = "LIST"
	OpCount   = "COUNT"
	OpGet     = "GET"
	OpUpsert  = "UPSERT"
	OpMigrate = "MIGRATE"
	OpScan    = "SCAN"
	OpHGetAll = "HGETALL"
	OpHSet    = "HSET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
