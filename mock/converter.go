package mock

import "github.com/fwojciec/findable"

var _ findable.Converter = (*Converter)(nil)

// Converter is a mock implementation of findable.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
