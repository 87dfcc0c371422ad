// Package encode renders handler results into the bounded text the wire
// protocol carries, and wraps outcomes in the uniform content envelope.
//
// Rendering is deterministic: the same record always encodes to the same
// bytes. Output is capped near 200 characters with at most two levels of
// nesting; anything deeper or longer is elided.
package encode
