package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderListing(t *testing.T) {
	page, err := RenderListing([]Book{{Title: "dune", Author: "frank herbert"}})

	require.NoError(t, err)
	assert.Equal(t, "<html><body><h1>Finished Books 1</h1><p>Dune, Frank Herbert</p></body></html>", string(page))
}
