package game

// Append returns a new slice holding s followed by items. The backing array of
// s is never written, so two successors built from the same state stay
// independent.
func Append[T any](s []T, items ...T) []T {
	if len(s)+len(items) == 0 {
		return nil
	}
	out := make([]T, 0, len(s)+len(items))
	out = append(out, s...)
	return append(out, items...)
}

// RemoveAt returns a copy of s without the element at index i.
func RemoveAt[T any](s []T, i int) []T {
	if i < 0 || i >= len(s) {
		return s
	}
	if len(s) == 1 {
		return nil
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// RemoveFirst removes the first element equal to v.
func RemoveFirst[T comparable](s []T, v T) ([]T, bool) {
	for i, item := range s {
		if item == v {
			return RemoveAt(s, i), true
		}
	}
	return s, false
}

// ReplaceAt returns a copy of s with index i set to v.
func ReplaceAt[T any](s []T, i int, v T) []T {
	out := make([]T, len(s))
	copy(out, s)
	out[i] = v
	return out
}

// Count returns how many elements equal v.
func Count[T comparable](s []T, v T) int {
	n := 0
	for _, item := range s {
		if item == v {
			n++
		}
	}
	return n
}

// Contains reports whether v is in s.
func Contains[T comparable](s []T, v T) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// nilIfEmpty normalizes empty slices so structural equality is stable across
// JSON round trips.
func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
