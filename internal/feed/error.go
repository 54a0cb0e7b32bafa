package feed

import "fmt"

// LoadError wraps a failed window fetch. The pager keeps its previous
// pages; the same window can be requested again.
type LoadError struct {
	Offset int
	Limit  int
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load products offset=%d limit=%d: %v", e.Offset, e.Limit, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
