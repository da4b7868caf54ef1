package encode

type EncodeOption func(*EncState)

// SetIntent requests that non-empty homogeneous arrays of strings or
// numbers be encoded as wire set variants (string set / number set)
// rather than lists. It is a capability the caller grants explicitly,
// never inferred from content, so order-significant lists are not
// silently collapsed into sets. Arrays with duplicate members, empty
// members, or mixed kinds fall back to lists, as does every empty array.
// The option applies recursively to each eligible array in the value.
func SetIntent(v bool) EncodeOption {
	return func(es *EncState) { es.setIntent = v }
}
