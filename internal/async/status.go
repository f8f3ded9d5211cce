// Package async holds the shared status tuple for asynchronous
// operations: idle, pending, succeeded, or failed with a message.
package async

// Status of one asynchronous operation.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

// String names the status for logs and display.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State pairs a status with the failure message of the last attempt.
// A new attempt always clears the message.
type State struct {
	Status Status
	Err    string
}
