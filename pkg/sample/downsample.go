package sample

// Downsample reduces values to at most maxPoints by decimation, for display.
// Destination-based: reuses dst if it has sufficient capacity, otherwise allocates new.
// If len(values) <= maxPoints, all values are copied.
func Downsample[T any](dst []T, values []T, maxPoints int) []T {
	if maxPoints <= 0 || len(values) <= maxPoints {
		if cap(dst) >= len(values) {
			dst = dst[:len(values)]
		} else {
			dst = make([]T, len(values))
		}
		copy(dst, values)
		return dst
	}

	if cap(dst) >= maxPoints {
		dst = dst[:0]
	} else {
		dst = make([]T, 0, maxPoints)
	}

	step := float64(len(values)) / float64(maxPoints)
	for i := range maxPoints {
		idx := int(float64(i) * step)
		if idx < len(values) {
			dst = append(dst, values[idx])
		}
	}

	return dst
}
