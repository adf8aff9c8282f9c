package findable_test

import (
	"testing"

	"github.com/fwojciec/findable"
	"github.com/stretchr/testify/assert"
)

func TestClampPageCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, findable.ClampPageCount(1))
	assert.Equal(t, 10, findable.ClampPageCount(-5))
	assert.Equal(t, 42, findable.ClampPageCount(42))
	assert.Equal(t, 300, findable.ClampPageCount(1000))
}

func TestParsePageCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50, findable.ParsePageCount(""))
	assert.Equal(t, 50, findable.ParsePageCount("lots"))
	assert.Equal(t, 60, findable.ParsePageCount(" 60 "))
	assert.Equal(t, 10, findable.ParsePageCount("3"))
	assert.Equal(t, 300, findable.ParsePageCount("301"))
}

func TestNormalizeSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"intro", "intro"},
		{"Getting Started", "getting-started"},
		{"API & SDK (v2)", "api--sdk-v2"},
		{"already-a-slug-123", "already-a-slug-123"},
		{"Ünïcode/Paths", "ncodepaths"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, findable.NormalizeSlug(tt.in))
		})
	}
}

func TestSlugSet_Claim(t *testing.T) {
	t.Parallel()

	t.Run("suffixes collisions in order", func(t *testing.T) {
		t.Parallel()

		set := findable.NewSlugSet()

		assert.Equal(t, "intro", set.Claim("intro"))
		assert.Equal(t, "intro-1", set.Claim("intro"))
		assert.Equal(t, "intro-2", set.Claim("intro"))
		assert.Equal(t, 3, set.Len())
	})

	t.Run("skips suffixes that are already taken", func(t *testing.T) {
		t.Parallel()

		set := findable.NewSlugSet()
		set.Claim("intro-1")
		set.Claim("intro")

		assert.Equal(t, "intro-2", set.Claim("intro"))
	})
}

func TestFindPage(t *testing.T) {
	t.Parallel()

	pages := []*findable.Page{{Slug: "a"}, {Slug: "b", Title: "B"}}

	assert.Equal(t, "B", findable.FindPage(pages, "b").Title)
	assert.Nil(t, findable.FindPage(pages, "c"))
}
