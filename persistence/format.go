package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ivfflat/ivfflat/internal/conv"
	"github.com/ivfflat/ivfflat/internal/intlist"
	"github.com/ivfflat/ivfflat/internal/mmap"
	"github.com/ivfflat/ivfflat/internal/vectorstore"
	"github.com/ivfflat/ivfflat/model"
)

// nullPosting marks an absent posting list on disk.
const nullPosting = -1

// WriteClus writes the F.clus section: centroid matrix followed by one
// posting list per centroid. Size -1 marks a null slot; size 0 marks a
// present-but-empty slot. Both are read back as an empty list.
func WriteClus(w io.Writer, centroids vectorstore.Store, postings []*intlist.List) error {
	bw := NewBinaryIndexWriter(w)

	d, err := conv.IntToUint32(centroids.D())
	if err != nil {
		return err
	}
	n, err := conv.IntToUint32(centroids.N())
	if err != nil {
		return err
	}
	if err := bw.WriteInt32(int32(d)); err != nil {
		return err
	}
	if err := bw.WriteInt32(int32(n)); err != nil {
		return err
	}

	raw, err := rawFloats(centroids)
	if err != nil {
		return err
	}
	if err := bw.WriteFloat32Slice(raw); err != nil {
		return err
	}

	count, err := conv.IntToUint32(len(postings))
	if err != nil {
		return err
	}
	if err := bw.WriteInt32(int32(count)); err != nil {
		return err
	}

	for _, p := range postings {
		if p == nil {
			if err := bw.WriteInt32(nullPosting); err != nil {
				return err
			}
			continue
		}
		size, err := conv.IntToUint32(p.Size())
		if err != nil {
			return err
		}
		if err := bw.WriteInt32(int32(size)); err != nil {
			return err
		}
		if err := bw.WriteInt32Slice(p.Values()); err != nil {
			return err
		}
	}
	return nil
}

// ReadClus reads the F.clus section written by WriteClus. Both -1 (null)
// and 0 (present-but-empty) decode to an empty *intlist.List.
func ReadClus(r io.Reader) (vectorstore.Store, []*intlist.List, error) {
	br := NewBinaryIndexReader(r)

	dRaw, err := br.ReadInt32()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading centroid dimension: %w", ErrInvalidFormat, err)
	}
	nRaw, err := br.ReadInt32()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading centroid count: %w", ErrInvalidFormat, err)
	}
	if dRaw < 0 || nRaw < 0 {
		return nil, nil, fmt.Errorf("%w: negative centroid shape d=%d n=%d", ErrInvalidFormat, dRaw, nRaw)
	}
	d, n := int(dRaw), int(nRaw)

	centroids, err := vectorstore.New(vectorstore.OffHeap, d, n)
	if err != nil {
		return nil, nil, err
	}
	raw, err := rawFloats(centroids)
	if err != nil {
		return nil, nil, err
	}
	if err := br.ReadFloat32SliceInto(raw); err != nil {
		return nil, nil, fmt.Errorf("%w: reading centroid bytes: %w", ErrInvalidFormat, err)
	}

	countRaw, err := br.ReadInt32()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading posting count: %w", ErrInvalidFormat, err)
	}
	if countRaw < 0 {
		return nil, nil, fmt.Errorf("%w: negative posting count %d", ErrInvalidFormat, countRaw)
	}

	postings := make([]*intlist.List, countRaw)
	for c := range postings {
		size, err := br.ReadInt32()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: reading posting list %d size: %w", ErrInvalidFormat, c, err)
		}
		if size == nullPosting {
			postings[c] = intlist.New(0)
			continue
		}
		if size < 0 {
			return nil, nil, fmt.Errorf("%w: posting list %d has invalid size %d", ErrInvalidFormat, c, size)
		}
		ids, err := br.ReadInt32Slice(int(size))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: reading posting list %d ids: %w", ErrInvalidFormat, c, err)
		}
		postings[c] = intlist.NewFromSlice(ids)
	}
	return centroids, postings, nil
}

// WriteVec writes the F.vec section: the full vector matrix, bulk-copied
// from the store's contiguous backing when one is available.
func WriteVec(w io.Writer, vectors vectorstore.Store) error {
	bw := NewBinaryIndexWriter(w)

	d, err := conv.IntToUint32(vectors.D())
	if err != nil {
		return err
	}
	n, err := conv.IntToUint32(vectors.N())
	if err != nil {
		return err
	}
	if err := bw.WriteInt32(int32(d)); err != nil {
		return err
	}
	if err := bw.WriteInt32(int32(n)); err != nil {
		return err
	}

	raw, err := rawFloats(vectors)
	if err != nil {
		return err
	}
	return bw.WriteFloat32Slice(raw)
}

// ReadVec reads the F.vec section written by WriteVec, materializing the
// result in the off-heap VectorStore variant.
func ReadVec(r io.Reader) (vectorstore.Store, error) {
	br := NewBinaryIndexReader(r)

	dRaw, err := br.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading vector dimension: %w", ErrInvalidFormat, err)
	}
	nRaw, err := br.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading vector count: %w", ErrInvalidFormat, err)
	}
	if dRaw < 0 || nRaw < 0 {
		return nil, fmt.Errorf("%w: negative vector shape d=%d n=%d", ErrInvalidFormat, dRaw, nRaw)
	}
	d, n := int(dRaw), int(nRaw)

	vectors, err := vectorstore.New(vectorstore.OffHeap, d, n)
	if err != nil {
		return nil, err
	}
	raw, err := rawFloats(vectors)
	if err != nil {
		return nil, err
	}
	if err := br.ReadFloat32SliceInto(raw); err != nil {
		return nil, fmt.Errorf("%w: reading vector bytes: %w", ErrInvalidFormat, err)
	}
	return vectors, nil
}

// ReadVecMmap reads the F.vec section straight out of a memory-mapped file,
// sparing the buffered read a kernel-to-userspace copy through a read(2)
// buffer for files too large to comfortably page through normally. The
// mapping is unmapped before this function returns; the resulting store
// owns its own off-heap copy of the float data and has no lingering
// reference to the file.
func ReadVecMmap(path string) (vectorstore.Store, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %s: %w", ErrIoFailure, path, err)
	}
	defer m.Close()
	return ReadVec(bytes.NewReader(m.Bytes()))
}

// Write persists centroids, postings, and vectors under baseName, producing
// baseName+".clus" and baseName+".vec". Each file is written atomically
// (temp file plus rename), .clus first: a failure while writing .clus leaves
// both prior files in place, while a failure while writing .vec leaves the
// new .clus beside the prior .vec.
func Write(baseName string, centroids vectorstore.Store, postings []*intlist.List, vectors vectorstore.Store) error {
	if err := SaveToFile(baseName+".clus", func(w io.Writer) error {
		return WriteClus(w, centroids, postings)
	}); err != nil {
		return fmt.Errorf("%w: writing %s.clus: %w", ErrIoFailure, baseName, err)
	}
	if err := SaveToFile(baseName+".vec", func(w io.Writer) error {
		return WriteVec(w, vectors)
	}); err != nil {
		return fmt.Errorf("%w: writing %s.vec: %w", ErrIoFailure, baseName, err)
	}
	return nil
}

// Read loads an index previously persisted with Write. Both baseName+".clus"
// and baseName+".vec" MUST exist; if either is absent, Read returns
// ErrMissingFile without touching the other.
func Read(baseName string) (vectorstore.Store, []*intlist.List, vectorstore.Store, error) {
	clusPath := baseName + ".clus"
	vecPath := baseName + ".vec"

	if _, err := os.Stat(clusPath); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil, fmt.Errorf("%w: %s: %w", ErrMissingFile, clusPath, ErrIoFailure)
		}
		return nil, nil, nil, fmt.Errorf("%w: stat %s: %w", ErrIoFailure, clusPath, err)
	}
	if _, err := os.Stat(vecPath); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil, fmt.Errorf("%w: %s: %w", ErrMissingFile, vecPath, ErrIoFailure)
		}
		return nil, nil, nil, fmt.Errorf("%w: stat %s: %w", ErrIoFailure, vecPath, err)
	}

	var centroids vectorstore.Store
	var postings []*intlist.List
	if err := LoadFromFile(clusPath, func(r io.Reader) error {
		var err error
		centroids, postings, err = ReadClus(r)
		return err
	}); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, nil, nil, fmt.Errorf("%w: %s: %w", ErrIoFailure, clusPath, err)
		}
		return nil, nil, nil, err
	}

	vectors, err := ReadVecMmap(vecPath)
	if err != nil {
		return nil, nil, nil, err
	}

	return centroids, postings, vectors, nil
}

// rawFloats returns the store's contiguous backing slice for a bulk
// read/write, or materializes one row by row when the store has no single
// contiguous region (the heap-backed variant).
func rawFloats(s vectorstore.Store) ([]float32, error) {
	if oh, ok := s.(interface{ RawData() []float32 }); ok {
		return oh.RawData(), nil
	}
	out := make([]float32, s.N()*s.D())
	for i := 0; i < s.N(); i++ {
		row, err := s.GetSegment(model.VectorId(i))
		if err != nil {
			return nil, err
		}
		copy(out[i*s.D():(i+1)*s.D()], row)
	}
	return out, nil
}
