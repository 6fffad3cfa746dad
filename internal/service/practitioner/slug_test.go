package practitioner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseSlug(t *testing.T) {
	cases := map[[2]string]string{
		{"John", "Smith"}:        "john-smith",
		{"Mary-Jane", "O'Brien"}: "mary-jane-obrien",
		{"Zoë", "Smith Jr."}:     "zo-smithjr",
		{"Dr. Ann", "Lee 2"}:     "drann-lee2",
	}
	for in, want := range cases {
		assert.Equal(t, want, BaseSlug(in[0], in[1]), in)
	}
}

func TestNextSlug(t *testing.T) {
	assert.Equal(t, "john-smith", NextSlug("john-smith", 0))
	assert.Equal(t, "john-smith-2", NextSlug("john-smith", 1))
	assert.Equal(t, "john-smith-3", NextSlug("john-smith", 2))
}
