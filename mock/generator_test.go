package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/findable"
	"github.com/fwojciec/findable/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("delegates to GenerateFn", func(t *testing.T) {
		t.Parallel()

		var calledWith findable.GenerateRequest
		g := &mock.Generator{
			GenerateFn: func(_ context.Context, req findable.GenerateRequest) (string, error) {
				calledWith = req
				return "[]", nil
			},
		}

		req := findable.GenerateRequest{System: "sys", Prompt: "hi", Temperature: 0.3, MaxTokens: 1000}
		got, err := g.Generate(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "[]", got)
		assert.Equal(t, req, calledWith)
	})
}
