// Package tools holds the bridge's tool registry: the static name-to-handler
// map built once at startup, the dispatch path every decoded task goes
// through, and the searchable catalog published to the coordinator.
//
// Dispatch contains every handler fault. A missing tool, an argument record
// carrying a decode-stage error, a handler error, or a handler panic all
// come back as a uniform error envelope; nothing propagates to the poll
// loop.
package tools
