package flowshop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"flowShopIG/internal/flowshop"
)

func TestSolutionInsertBestPosition(t *testing.T) {
	inst := mustInstance(t, 3, 2, []int{
		4, 3,
		2, 5,
		6, 1,
	})
	sol, err := flowshop.NewSolution(inst)
	require.NoError(t, err)

	ms, err := sol.InsertBestPosition(1, false)
	require.NoError(t, err)
	require.Equal(t, 7, ms)
	require.Equal(t, []int{1}, sol.Sequence)

	// Повторная вставка той же работы запрещена.
	_, err = sol.InsertBestPosition(1, false)
	require.Error(t, err)

	_, err = sol.InsertBestPosition(2, false)
	require.NoError(t, err)
	_, err = sol.InsertBestPosition(3, false)
	require.NoError(t, err)
	require.NoError(t, flowshop.ValidatePermutation(sol.Sequence, 3))

	recomputed, err := sol.CalculateMakespan()
	require.NoError(t, err)
	require.Equal(t, recomputed, sol.Makespan)
}

func TestSolutionRemove(t *testing.T) {
	inst := mustInstance(t, 3, 1, []int{3, 5, 2})
	sol, err := flowshop.NewSolution(inst)
	require.NoError(t, err)
	sol.Sequence = append(sol.Sequence, 1, 2, 3)

	require.True(t, sol.Remove(2))
	require.Equal(t, []int{1, 3}, sol.Sequence)
	require.Equal(t, 0, sol.Makespan)
	require.False(t, sol.Remove(2))
}

// TestSolutionCloneIsDeep: копии не разделяют последовательность.
func TestSolutionCloneIsDeep(t *testing.T) {
	inst := mustInstance(t, 3, 1, []int{3, 5, 2})
	sol, err := flowshop.NewSolution(inst)
	require.NoError(t, err)
	sol.Sequence = append(sol.Sequence, 1, 2, 3)
	_, err = sol.CalculateMakespan()
	require.NoError(t, err)

	clone := sol.Clone()
	require.Equal(t, sol.Sequence, clone.Sequence)
	require.Equal(t, sol.Makespan, clone.Makespan)

	clone.Sequence[0], clone.Sequence[2] = clone.Sequence[2], clone.Sequence[0]
	require.Equal(t, []int{1, 2, 3}, sol.Sequence)

	other, err := flowshop.NewSolution(inst)
	require.NoError(t, err)
	other.CopyFrom(sol)
	other.Remove(1)
	require.Equal(t, []int{1, 2, 3}, sol.Sequence)
}
