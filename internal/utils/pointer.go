package utils

// Ptr returns a pointer to v. Useful for optional API fields that distinguish
// "unset" from a zero value.
func Ptr[T any](v T) *T {
	return &v
}
