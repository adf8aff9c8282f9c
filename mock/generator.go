package mock

import (
	"context"

	"github.com/fwojciec/findable"
)

var _ findable.Generator = (*Generator)(nil)

// Generator is a mock implementation of findable.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, req findable.GenerateRequest) (string, error)
}

func (g *Generator) Generate(ctx context.Context, req findable.GenerateRequest) (string, error) {
	return g.GenerateFn(ctx, req)
}
