package costmodel_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/routeplan/costmodel"
	"github.com/stretchr/testify/require"
)

// square4 returns a symmetric 4×4 metric matrix used across tests.
func square4() [][]float64 {
	return [][]float64{
		{0, 1, 4, 3},
		{1, 0, 2, 5},
		{4, 2, 0, 1},
		{3, 5, 1, 0},
	}
}

func TestNew_ValidSymmetric(t *testing.T) {
	m, err := costmodel.New(square4())
	require.NoError(t, err)
	require.Equal(t, 4, m.Size())
	require.True(t, m.IsSymmetric())
	require.Equal(t, 2.0, m.Cost(1, 2))
	require.Equal(t, 2.0, m.Cost(2, 1))
}

func TestNew_Asymmetric(t *testing.T) {
	costs := square4()
	costs[1][2] = 7 // one-way penalty
	m, err := costmodel.New(costs)
	require.NoError(t, err)
	require.False(t, m.IsSymmetric())
	require.Equal(t, 7.0, m.Cost(1, 2))
	require.Equal(t, 2.0, m.Cost(2, 1))
}

func TestNew_RejectsMalformed(t *testing.T) {
	// Non-square row.
	bad := square4()
	bad[2] = bad[2][:3]
	_, err := costmodel.New(bad)
	require.ErrorIs(t, err, costmodel.ErrInvalidCostModel)

	// Negative entry.
	bad = square4()
	bad[0][3] = -1
	_, err = costmodel.New(bad)
	require.ErrorIs(t, err, costmodel.ErrInvalidCostModel)

	// NaN entry.
	bad = square4()
	bad[3][0] = math.NaN()
	_, err = costmodel.New(bad)
	require.ErrorIs(t, err, costmodel.ErrInvalidCostModel)

	// Non-zero diagonal.
	bad = square4()
	bad[1][1] = 0.5
	_, err = costmodel.New(bad)
	require.ErrorIs(t, err, costmodel.ErrInvalidCostModel)

	// Empty matrix.
	_, err = costmodel.New(nil)
	require.ErrorIs(t, err, costmodel.ErrInvalidCostModel)
}

func TestNew_DeepCopies(t *testing.T) {
	costs := square4()
	m, err := costmodel.New(costs)
	require.NoError(t, err)

	// Mutating the input after construction must not leak into the Model.
	costs[0][1] = 99
	require.Equal(t, 1.0, m.Cost(0, 1))
}

func TestUnreachable_Sentinel(t *testing.T) {
	costs := square4()
	costs[1][3] = costmodel.Unreachable
	costs[3][1] = costmodel.Unreachable
	m, err := costmodel.New(costs)
	require.NoError(t, err)
	require.True(t, costmodel.IsUnreachable(m.Cost(1, 3)))
	require.True(t, m.IsSymmetric()) // Inf↔Inf pairs count as symmetric
}

func TestFingerprint_StableAndSensitive(t *testing.T) {
	a, err := costmodel.New(square4())
	require.NoError(t, err)
	b, err := costmodel.New(square4())
	require.NoError(t, err)

	// Identical content ⇒ identical fingerprint.
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	// A single-entry change must move the fingerprint.
	costs := square4()
	costs[0][2] = 4.000000001
	costs[2][0] = 4.000000001
	c, err := costmodel.New(costs)
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestSubFingerprint_OrderIndependent(t *testing.T) {
	m, err := costmodel.New(square4())
	require.NoError(t, err)

	fp1, err := m.SubFingerprint([]int{0, 2, 3})
	require.NoError(t, err)
	fp2, err := m.SubFingerprint([]int{3, 0, 2})
	require.NoError(t, err)
	require.Equal(t, fp1, fp2)

	// A different set hashes differently.
	fp3, err := m.SubFingerprint([]int{0, 1, 2})
	require.NoError(t, err)
	require.NotEqual(t, fp1, fp3)

	// Out-of-range index is rejected.
	_, err = m.SubFingerprint([]int{0, 4})
	require.ErrorIs(t, err, costmodel.ErrIndexOutOfRange)
}
