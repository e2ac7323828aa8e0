package vectorstore

import (
	"errors"
	"fmt"

	"github.com/ivfflat/ivfflat/internal/conv"
	"github.com/ivfflat/ivfflat/internal/mem"
	"github.com/ivfflat/ivfflat/model"
)

// ErrOutOfRange is returned when a VectorId falls outside [0, N).
var ErrOutOfRange = errors.New("vectorstore: id out of range")

// ErrWrongDimension is returned when a supplied row does not have length D.
var ErrWrongDimension = errors.New("vectorstore: wrong vector dimension")

// Kind selects a Store implementation.
type Kind int

const (
	// OffHeap allocates one contiguous, 64-byte-aligned region for all rows.
	// This is the default: it is what makes the persistence package's bulk
	// zero-copy write/read possible.
	OffHeap Kind = iota
	// Heap allocates one []float32 row per id.
	Heap
)

// Store is the canonical storage interface for vectors: a mapping
// VectorId -> Vector over keys {0,...,N-1} with a fixed dimension D.
//
// All rows exist from New(D, N) onward with unspecified contents; AddVector
// fully overwrites a row. Implementations do not support deletion - the
// library never removes a vector after build.
type Store interface {
	// D returns the configured vector dimensionality.
	D() int
	// N returns the configured row count.
	N() int
	// AddVector writes src[0:D) into row id. Fails if id is out of [0,N)
	// or len(src) != D.
	AddVector(id model.VectorId, src []float32) error
	// LoadVectorInArray copies row id into dst[0:D).
	LoadVectorInArray(id model.VectorId, dst []float32) error
	// GetSegment returns a read view over row id for use by the distance
	// kernel without a copy. The returned slice aliases store memory and
	// must not be retained past the store's lifetime.
	GetSegment(id model.VectorId) ([]float32, error)
	// GetVector returns a freshly allocated copy of row id. Intended for
	// cold paths only (e.g. persistence, diagnostics).
	GetVector(id model.VectorId) ([]float32, error)
	// Close releases the store's backing region. Safe to call once; a
	// no-op on subsequent calls.
	Close() error
}

// New constructs a Store of the requested kind with n rows of dimension d.
func New(kind Kind, d, n int) (Store, error) {
	if d <= 0 {
		return nil, fmt.Errorf("vectorstore: invalid dimension %d", d)
	}
	if n < 0 {
		return nil, fmt.Errorf("vectorstore: invalid row count %d", n)
	}
	switch kind {
	case Heap:
		return newHeapStore(d, n), nil
	default:
		return newOffHeapStore(d, n)
	}
}

func checkID(id model.VectorId, n int) error {
	if int(id) >= n {
		return fmt.Errorf("%w: id=%d n=%d", ErrOutOfRange, id, n)
	}
	return nil
}

func checkDim(src []float32, d int) error {
	if len(src) != d {
		return fmt.Errorf("%w: expected %d, got %d", ErrWrongDimension, d, len(src))
	}
	return nil
}

// offHeapStore backs every row in one contiguous, 64-byte aligned
// []float32 slab: row i occupies data[i*d : (i+1)*d]. This is the layout
// persistence bulk-copies to and from F.vec.
type offHeapStore struct {
	d, n int
	data []float32
}

func newOffHeapStore(d, n int) (*offHeapStore, error) {
	data := mem.AllocAlignedFloat32(d * n)
	if data == nil && d*n > 0 {
		data = make([]float32, d*n)
	}
	return &offHeapStore{d: d, n: n, data: data}, nil
}

func (s *offHeapStore) D() int { return s.d }
func (s *offHeapStore) N() int { return s.n }

func (s *offHeapStore) AddVector(id model.VectorId, src []float32) error {
	if err := checkID(id, s.n); err != nil {
		return err
	}
	if err := checkDim(src, s.d); err != nil {
		return err
	}
	start, err := conv.Uint32ToInt(uint32(id))
	if err != nil {
		return err
	}
	start *= s.d
	copy(s.data[start:start+s.d], src)
	return nil
}

func (s *offHeapStore) LoadVectorInArray(id model.VectorId, dst []float32) error {
	if err := checkID(id, s.n); err != nil {
		return err
	}
	if err := checkDim(dst, s.d); err != nil {
		return err
	}
	start := int(id) * s.d
	copy(dst, s.data[start:start+s.d])
	return nil
}

func (s *offHeapStore) GetSegment(id model.VectorId) ([]float32, error) {
	if err := checkID(id, s.n); err != nil {
		return nil, err
	}
	start := int(id) * s.d
	end := start + s.d
	return s.data[start:end:end], nil
}

func (s *offHeapStore) GetVector(id model.VectorId) ([]float32, error) {
	seg, err := s.GetSegment(id)
	if err != nil {
		return nil, err
	}
	out := make([]float32, s.d)
	copy(out, seg)
	return out, nil
}

// RawData exposes the contiguous backing slice for zero-copy persistence.
// Callers must not retain the slice past the store's lifetime.
func (s *offHeapStore) RawData() []float32 { return s.data }

func (s *offHeapStore) Close() error {
	s.data = nil
	return nil
}

// heapStore backs each row with its own []float32, at the cost of one
// allocation and one pointer indirection per row.
type heapStore struct {
	d, n int
	rows [][]float32
}

func newHeapStore(d, n int) *heapStore {
	rows := make([][]float32, n)
	for i := range rows {
		rows[i] = make([]float32, d)
	}
	return &heapStore{d: d, n: n, rows: rows}
}

func (s *heapStore) D() int { return s.d }
func (s *heapStore) N() int { return s.n }

func (s *heapStore) AddVector(id model.VectorId, src []float32) error {
	if err := checkID(id, s.n); err != nil {
		return err
	}
	if err := checkDim(src, s.d); err != nil {
		return err
	}
	copy(s.rows[id], src)
	return nil
}

func (s *heapStore) LoadVectorInArray(id model.VectorId, dst []float32) error {
	if err := checkID(id, s.n); err != nil {
		return err
	}
	if err := checkDim(dst, s.d); err != nil {
		return err
	}
	copy(dst, s.rows[id])
	return nil
}

func (s *heapStore) GetSegment(id model.VectorId) ([]float32, error) {
	if err := checkID(id, s.n); err != nil {
		return nil, err
	}
	return s.rows[id], nil
}

func (s *heapStore) GetVector(id model.VectorId) ([]float32, error) {
	seg, err := s.GetSegment(id)
	if err != nil {
		return nil, err
	}
	out := make([]float32, s.d)
	copy(out, seg)
	return out, nil
}

func (s *heapStore) Close() error {
	s.rows = nil
	return nil
}
