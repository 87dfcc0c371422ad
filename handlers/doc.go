// Package handlers provides the tool handlers the bridge ships with: the
// sandboxed run_command capability, the insert-by-query asset tool, narrow
// property access over the live graph, and the catalog query tools.
//
// The wider domain tool surface (node creation, tagging, GUI construction,
// and the rest) lives with the embedding host; it registers through the same
// tools.Provider mechanism these do.
package handlers
