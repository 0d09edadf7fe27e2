package symbols

// ConvertibleTo reports whether a value of type from may be used where a
// value of type to is expected:
//
//   - T converts to T (identity).
//   - T& converts to T, via implicit dereference.
//   - T never converts to T&: there is no expression that manufactures a
//     reference out of a plain value.
//   - Unknown converts to and from everything, so that one earlier
//     unresolved name doesn't cascade into a pile of unrelated
//     type-mismatch diagnostics about the same mistake.
func ConvertibleTo(from, to TypeSymbol) bool {
	if from == nil || to == nil {
		return false
	}
	if from.Underlying() == Unknown || to.Underlying() == Unknown {
		return true
	}
	if from.Underlying() != to.Underlying() {
		return false
	}
	if to.IsReference() {
		return from.IsReference()
	}
	return true
}

// LeastUpperBound returns the most specific type both a and b convert to,
// or Unknown if they share none. CO's value types have no subtyping, so
// the only non-trivial case is a plain T and its own T&, whose bound is
// the plain T both can be used as.
func LeastUpperBound(a, b TypeSymbol) TypeSymbol {
	if a == nil || b == nil {
		return Unknown
	}
	if a.Underlying() == Unknown || b.Underlying() == Unknown {
		return Unknown
	}
	if a.Underlying() != b.Underlying() {
		return Unknown
	}
	if a.IsReference() == b.IsReference() {
		return a
	}
	return a.Underlying()
}
