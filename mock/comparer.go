package mock

import "github.com/fwojciec/linkexport"

var _ linkexport.Comparer = (*Comparer)(nil)

// Comparer is a mock implementation of linkexport.Comparer.
type Comparer struct {
	CompareStringFn func(a, b string) int
}

func (c *Comparer) CompareString(a, b string) int {
	return c.CompareStringFn(a, b)
}
