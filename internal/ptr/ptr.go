// Package ptr has helpers for the optional score and band fields, which are
// modelled as pointers.
package ptr

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Value returns the pointed-to value, or the zero value when p is nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
