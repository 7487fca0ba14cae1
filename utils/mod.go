package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// RemoveAt deletes the i-th element in place, keeping the order of the rest.
func RemoveAt[T any](slice []T, i int) []T {
	copy(slice[i:], slice[i+1:])
	var zero T
	slice[len(slice)-1] = zero
	return slice[:len(slice)-1]
}
