// Package sandbox runs externally supplied script source inside an embedded
// Lua interpreter, isolated from the host.
//
// A run first loads the source, then executes it under a protected call, and
// the two failure modes stay distinct: a chunk that never compiled reports
// StatusLoadFailed, one that raised reports StatusRuntimeFailed. Print calls
// are intercepted into a buffer and every return value is captured in order.
// Submitted code is not given a deadline: an infinite loop stalls the caller,
// which is the documented trade for running on the host's cooperative
// scheduler.
package sandbox
