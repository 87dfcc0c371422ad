// Package scene defines the host-native composite value types the bridge
// marshals to, together with the narrow capability interface handlers use to
// reach the host's live object graph.
//
// The bridge never touches host reflection directly: everything it needs from
// a live node goes through Node (Kind, Get, Set, Call). The host adapter that
// implements Node is supplied by the embedding application.
package scene
