package vectorstore

import (
	"testing"

	"github.com/ivfflat/ivfflat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreVariants(t *testing.T) {
	for _, kind := range []Kind{OffHeap, Heap} {
		t.Run(kindName(kind), func(t *testing.T) {
			s, err := New(kind, 3, 4)
			require.NoError(t, err)
			defer s.Close()

			assert.Equal(t, 3, s.D())
			assert.Equal(t, 4, s.N())

			require.NoError(t, s.AddVector(model.VectorId(0), []float32{1, 2, 3}))
			require.NoError(t, s.AddVector(model.VectorId(3), []float32{7, 8, 9}))

			seg, err := s.GetSegment(model.VectorId(0))
			require.NoError(t, err)
			assert.Equal(t, []float32{1, 2, 3}, seg)

			cp, err := s.GetVector(model.VectorId(3))
			require.NoError(t, err)
			assert.Equal(t, []float32{7, 8, 9}, cp)

			dst := make([]float32, 3)
			require.NoError(t, s.LoadVectorInArray(model.VectorId(3), dst))
			assert.Equal(t, []float32{7, 8, 9}, dst)
		})
	}
}

func TestStoreOutOfRange(t *testing.T) {
	s, err := New(OffHeap, 2, 2)
	require.NoError(t, err)
	defer s.Close()

	err = s.AddVector(model.VectorId(5), []float32{1, 2})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = s.GetSegment(model.VectorId(5))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestStoreWrongDimension(t *testing.T) {
	s, err := New(Heap, 4, 1)
	require.NoError(t, err)
	defer s.Close()

	err = s.AddVector(model.VectorId(0), []float32{1, 2})
	assert.ErrorIs(t, err, ErrWrongDimension)
}

func TestOffHeapRawDataIsContiguous(t *testing.T) {
	s, err := New(OffHeap, 2, 3)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.AddVector(model.VectorId(0), []float32{1, 2}))
	require.NoError(t, s.AddVector(model.VectorId(1), []float32{3, 4}))
	require.NoError(t, s.AddVector(model.VectorId(2), []float32{5, 6}))

	oh := s.(*offHeapStore)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, oh.RawData())
}

func kindName(k Kind) string {
	if k == Heap {
		return "heap"
	}
	return "off-heap"
}
