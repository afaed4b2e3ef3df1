package common

// RightPadSlice returns a copy of source resized to the given size, padded
// with zero elements at the end or truncated.
func RightPadSlice[T any](source []T, size int) []T {
	res := make([]T, size)
	copy(res, source)
	return res
}

// LeftPadSlice returns a copy of source resized to the given size, padded
// with zero elements at the front. Longer sources keep their leading
// elements.
func LeftPadSlice[T any](source []T, size int) []T {
	res := make([]T, size)
	if size < len(source) {
		copy(res, source)
	} else {
		copy(res[size-len(source):], source)
	}
	return res
}
