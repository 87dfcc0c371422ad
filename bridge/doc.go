// Package bridge owns the top-level poll loop connecting the embedded
// tool surface to the remote coordinator.
//
// The loop runs on a single goroutine, the host's stand-in for a cooperative
// script scheduler: each iteration is one blocking request/response exchange
// against the coordinator's long-poll endpoint, followed by synchronous
// decode, dispatch, and encode. At most one task is ever in flight, and at
// most one response is pending. Delivery is at-most-once: the pending
// response is cleared before the delivery attempt, so a result computed for
// a failed exchange is dropped rather than retried.
package bridge
