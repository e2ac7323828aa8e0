//go:build amd64 || arm64

// Package persistence implements IndexIo: the two-file binary format that
// persists an index as F.clus (centroids + posting lists) and F.vec
// (vectors). There is no magic number, version tag, or checksum - the
// layout is the contract (see format.go) and both files must be present for
// a load to succeed.
//
// PLATFORM REQUIREMENTS:
// - Architecture: amd64 or arm64 only
// - Endianness: Little-endian (native on x86_64 and ARM64)
// - Alignment: 4-byte for float32/int32
//
// The unsafe operations in this package are verified at runtime with
// alignment checks and platform validation. See safety.go.
package persistence
