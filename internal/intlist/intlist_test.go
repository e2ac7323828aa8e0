package intlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddGrowsAndPreservesOrder(t *testing.T) {
	l := New(2)
	for i := int32(0); i < 40; i++ {
		l.Add(i)
	}
	assert.Equal(t, 40, l.Size())
	for i := int32(0); i < 40; i++ {
		assert.Equal(t, i, l.Get(int(i)))
	}
}

func TestDefaultCapacity(t *testing.T) {
	l := New(0)
	assert.Equal(t, 0, l.Size())
	assert.Equal(t, DefaultCapacity, cap(l.data))
}

func TestUpdateOverwritesInPlace(t *testing.T) {
	l := New(4)
	l.Add(1)
	l.Add(2)
	l.Add(3)
	l.Update(1, 99)
	assert.Equal(t, []int32{1, 99, 3}, l.Values())
}

func TestNewFromSlice(t *testing.T) {
	l := NewFromSlice([]int32{5, 6, 7})
	assert.Equal(t, 3, l.Size())
	l.Add(8)
	assert.Equal(t, []int32{5, 6, 7, 8}, l.Values())
}
