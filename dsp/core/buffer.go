package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Clone returns a copy of src that does not alias it.
func Clone(src []float64) []float64 {
	if src == nil {
		return nil
	}
	return append(make([]float64, 0, len(src)), src...)
}
