package progress

import "errors"

var (
	// ErrOutOfRange is returned when a reported fraction exceeds 1.0 or a
	// reported count exceeds the configured total.
	ErrOutOfRange = errors.New("progress value out of range")

	// ErrNoTotal is returned when a count-based report is made on a bar
	// that was constructed without a total.
	ErrNoTotal = errors.New("count-based reporting requires a total")
)
