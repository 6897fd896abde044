package frame

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunks(t *testing.T) {
	assert.Nil(t, Chunks(0, 10))
	assert.Equal(t, [][2]int{{0, 5}}, Chunks(5, 10))
	assert.Equal(t, [][2]int{{0, 10}, {10, 12}}, Chunks(12, 10))
}

func TestFirstValid(t *testing.T) {
	c := Col("v", nil, nil, "hit", "later")
	assert.Equal(t, "hit", c.FirstValid())

	empty := Col("v", nil, nil, nil)
	assert.Nil(t, empty.FirstValid())

	none := Col("v")
	assert.Nil(t, none.FirstValid())
}

func TestFirstValid_LargeColumnMatchesSequentialScan(t *testing.T) {
	// Force the chunked path and make sure an earlier chunk's hit wins over
	// a later chunk's.
	values := make([]any, 3*defaultChunkSize)
	values[defaultChunkSize+7] = "first"
	values[2*defaultChunkSize+1] = "second"

	c := Column{Name: "v", Values: values}
	assert.Equal(t, "first", c.FirstValid())
}

func TestMaxStringLen(t *testing.T) {
	c := Col("v", "ab", nil, 42, "abcd", "a")
	assert.Equal(t, 4, c.MaxStringLen())

	noStrings := Col("v", nil, 1, 2.0)
	assert.Equal(t, 0, noStrings.MaxStringLen())
}

func TestMaxStringLen_Runes(t *testing.T) {
	// Rune count, not byte count.
	c := Col("v", "héllo")
	assert.Equal(t, 5, c.MaxStringLen())
}

func TestMaxStringLen_LargeColumn(t *testing.T) {
	values := make([]any, 2*defaultChunkSize+10)
	for i := range values {
		values[i] = "xx"
	}
	values[2*defaultChunkSize+3] = "the longest string here"

	c := Column{Name: "v", Values: values}
	assert.Equal(t, len("the longest string here"), c.MaxStringLen())
}

func TestReductions_Deterministic(t *testing.T) {
	values := make([]any, 2*defaultChunkSize)
	for i := range values {
		if i%3 == 0 {
			values[i] = fmt.Sprintf("val-%d", i)
		}
	}
	c := Column{Name: "v", Values: values}

	first := c.FirstValid()
	max := c.MaxStringLen()
	for range 10 {
		require.Equal(t, first, c.FirstValid())
		require.Equal(t, max, c.MaxStringLen())
	}
}
