package promo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSet(t *testing.T) {
	set := NewMapSet(10).(*mapSet)

	assert.Equal(t, 0, set.Size())
	assert.False(t, set.Contains("SAVE10"))

	set.Add("SAVE10")
	set.Add("BULK0001")

	assert.Equal(t, 2, set.Size())
	assert.True(t, set.Contains("SAVE10"))
	assert.True(t, set.Contains("BULK0001"))
	assert.False(t, set.Contains("UNKNOWN"))
}

func TestMapSet_CaseSensitive(t *testing.T) {
	set := NewMapSet(1).(*mapSet)
	set.Add("SAVE10")

	assert.True(t, set.Contains("SAVE10"))
	assert.False(t, set.Contains("save10"))
}

func TestMapSet_DuplicateAdd(t *testing.T) {
	set := NewMapSet(1).(*mapSet)
	set.Add("SAVE10")
	set.Add("SAVE10")

	assert.Equal(t, 1, set.Size())
}
