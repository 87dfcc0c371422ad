// Package task decodes the coordinator's wire payloads into dispatchable
// tasks.
//
// A payload is a JSON document evaluating to {id, args}. The args record is
// classified by marker key into one of three shapes: direct-by-name
// ({tool_name, arguments}), the run-command shorthand, or the insert-by-query
// shorthand. Anything else yields a deterministic error-path task, so every
// decoded task completes the full dispatch, encode, and reply cycle.
package task
