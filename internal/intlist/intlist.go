package intlist

// DefaultCapacity is the initial backing capacity when none is requested.
const DefaultCapacity = 16

// List is a growable array of int32 with size <= cap(data). Add appends,
// doubling capacity on overflow; Update overwrites an existing element in
// place (used by the reservoir sampler to replace a victim).
type List struct {
	data []int32
}

// New creates an empty List with the given initial capacity. A non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *List {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &List{data: make([]int32, 0, capacity)}
}

// NewFromSlice wraps an existing slice of values as a List, taking
// ownership of the backing array.
func NewFromSlice(values []int32) *List {
	return &List{data: values}
}

// Add appends v, growing the backing array (doubling capacity) if full.
func (l *List) Add(v int32) {
	if len(l.data) == cap(l.data) {
		newCap := 2 * cap(l.data)
		if newCap == 0 {
			newCap = DefaultCapacity
		}
		grown := make([]int32, len(l.data), newCap)
		copy(grown, l.data)
		l.data = grown
	}
	l.data = append(l.data, v)
}

// Get returns the element at index i. Panics if i is out of range, matching
// slice semantics - callers are expected to respect Size().
func (l *List) Get(i int) int32 {
	return l.data[i]
}

// Update overwrites the element at index i (i < Size()).
func (l *List) Update(i int, v int32) {
	l.data[i] = v
}

// Size returns the number of elements currently stored.
func (l *List) Size() int {
	return len(l.data)
}

// Values returns the backing slice. Callers must not retain it past the
// List's lifetime if the List is mutated afterward; for read-only use
// (e.g. persistence) this is a zero-copy view.
func (l *List) Values() []int32 {
	return l.data
}
