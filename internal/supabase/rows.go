package supabase

// One returns the first row of a representation response.
func One[T any](rows []T) (*T, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyResponse
	}
	return &rows[0], nil
}
