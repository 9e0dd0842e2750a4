package mapping

// MapViewModels maps entities to view models.
func MapViewModels[T any, V any](entities []T, mapFunc func(T) V) []V {
	viewModels := make([]V, len(entities))
	for i, entity := range entities {
		viewModels[i] = mapFunc(entity)
	}
	return viewModels
}

// Pointer returns a pointer to a copy of v.
func Pointer[T any](v T) *T {
	return &v
}
