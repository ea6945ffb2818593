package domain

import "time"

// FailureReason classifies why a height query failed.
type FailureReason string

const (
	// ReasonUnreachable covers transport-level failures: connection refused,
	// DNS errors, timeouts.
	ReasonUnreachable FailureReason = "unreachable"
	// ReasonProtocol covers non-2xx responses and malformed payloads.
	ReasonProtocol FailureReason = "protocol_error"
)

// HeightResult is the outcome of a single block height query against one
// endpoint. Either Height is valid (Err == nil) or Err and Reason are set.
type HeightResult struct {
	Height uint64
	Err    error
	Reason FailureReason
}

// OK reports whether the query produced a usable height.
func (r HeightResult) OK() bool {
	return r.Err == nil
}

// Snapshot pairs the local and remote query results for one polling cycle.
// A failed query is represented inside the snapshot, never as a missing one.
type Snapshot struct {
	Local      HeightResult
	Remote     HeightResult
	ObservedAt time.Time
}
