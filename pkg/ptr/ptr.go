package ptr

// Ptr returns a pointer to v. Convenience for literals and struct fields.
func Ptr[T any](v T) *T {
	return &v
}
