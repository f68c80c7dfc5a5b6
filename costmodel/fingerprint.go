package costmodel

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// fingerprintMatrix hashes the matrix order followed by the row-major
// IEEE-754 bit patterns of every entry. Using the raw bit patterns keeps the
// hash exact (no formatting, no rounding) and platform-independent; +Inf has
// a single canonical bit pattern, so unreachable edges hash deterministically.
//
// Complexity: O(n²) time, O(1) extra space.
func fingerprintMatrix(flat []float64, n int) uint64 {
	var (
		d   xxhash.Digest
		buf [8]byte
		i   int
	)
	d.Reset()

	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	_, _ = d.Write(buf[:])

	for i = 0; i < len(flat); i++ {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(flat[i]))
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}

// SubFingerprint returns the content hash of the submatrix induced by the
// given stop-index set. The set is sorted and de-duplicated internally, so
// callers may pass stops in any order; two calls with the same set always
// produce the same hash.
//
// Contract: every index must lie in [0..n-1]; otherwise ErrIndexOutOfRange.
//
// Complexity: O(k log k + k²) time for k = len(stops), O(k) space.
func (m *Model) SubFingerprint(stops []int) (uint64, error) {
	// Sorted working copy; duplicates collapse so the set semantics hold.
	idx := make([]int, 0, len(stops))

	var (
		i, j int
		v    int
	)
	for i = 0; i < len(stops); i++ {
		v = stops[i]
		if v < 0 || v >= m.n {
			return 0, ErrIndexOutOfRange
		}
		idx = append(idx, v)
	}
	sort.Ints(idx)

	// Collapse duplicates in place.
	var k int
	for i = 0; i < len(idx); i++ {
		if i == 0 || idx[i] != idx[i-1] {
			idx[k] = idx[i]
			k++
		}
	}
	idx = idx[:k]

	var (
		d   xxhash.Digest
		buf [8]byte
	)
	d.Reset()

	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	_, _ = d.Write(buf[:])

	for i = 0; i < k; i++ {
		binary.LittleEndian.PutUint64(buf[:], uint64(idx[i]))
		_, _ = d.Write(buf[:])
	}
	for i = 0; i < k; i++ {
		for j = 0; j < k; j++ {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(m.costs[idx[i]*m.n+idx[j]]))
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64(), nil
}
