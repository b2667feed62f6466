package logquery

import "errors"

var (
	// ErrRequest is returned when the request could not be completed
	// (connection error, timeout, cancellation).
	ErrRequest = errors.New("logs request failed")
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("logs request returned error status")
	// ErrDecode is returned when the body is not a JSON array of log entries.
	ErrDecode = errors.New("malformed logs response")
	// ErrMissingRange is returned by Submit for a range mode query without
	// a date range. Range mode always sends startDate and endDate.
	ErrMissingRange = errors.New("range mode query has no date range")
	// ErrSuperseded is returned by Submit when a newer submission replaced
	// this one before its response arrived. The table is left untouched.
	ErrSuperseded = errors.New("superseded by a newer query")
)
