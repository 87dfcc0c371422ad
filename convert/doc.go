// Package convert turns untyped wire records into host-native composite
// values by inferring the intended type from the target field name.
//
// The converter is an ordered list of rules, each pairing a predicate with a
// converter. The first
// rule whose predicate matches the (case-folded) field name wins; a matched
// rule either fully applies or returns an error naming the missing or invalid
// sub-fields. When no rule matches, or the raw value is not a composite, the
// value passes through unchanged with no error. Conversion never panics.
package convert
