package neh_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"flowShopIG/internal/flowshop"
	"flowShopIG/internal/neh"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, neh.DefaultConfig().Validate())
	require.Error(t, neh.Config{Ordering: "best"}.Validate())
}

func TestNewRequiresRng(t *testing.T) {
	_, err := neh.New(neh.DefaultConfig(), nil)
	require.Error(t, err)
}

// TestTwoJobsOneMachine: сценарий 2x1 из литературы - оба порядка дают
// makespan 8.
func TestTwoJobsOneMachine(t *testing.T) {
	inst, err := flowshop.NewInstance(2, 1, []int{3, 5})
	require.NoError(t, err)

	solver, err := neh.New(neh.DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), inst)
	require.NoError(t, err)
	require.Equal(t, 8, res.Makespan)
	require.NoError(t, flowshop.ValidatePermutation(res.Permutation, 2))
	// Две оценки засева начальной пары.
	require.Equal(t, 2, res.Evaluations)
}

// TestCompleteness: после построения последовательность является полной
// перестановкой 1..N при любом правиле упорядочивания.
func TestCompleteness(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	inst := flowshop.RandomInstance(12, 4, 1, 99, rng)

	for _, ordering := range []neh.Ordering{neh.OrderingSD, neh.OrderingAD, neh.OrderingRandom} {
		t.Run(string(ordering), func(t *testing.T) {
			solver, err := neh.New(neh.Config{Ordering: ordering}, rand.New(rand.NewSource(2)))
			require.NoError(t, err)

			sol, err := flowshop.NewSolution(inst)
			require.NoError(t, err)
			require.NoError(t, solver.Construct(sol))

			require.NoError(t, flowshop.ValidatePermutation(sol.Sequence, inst.Jobs))
			recomputed, err := sol.CalculateMakespan()
			require.NoError(t, err)
			require.Equal(t, recomputed, sol.Makespan)
		})
	}
}

func TestConstructRequiresEmptySolution(t *testing.T) {
	inst, err := flowshop.NewInstance(2, 1, []int{3, 5})
	require.NoError(t, err)
	sol, err := flowshop.NewSolution(inst)
	require.NoError(t, err)
	sol.Sequence = append(sol.Sequence, 1)

	solver, err := neh.New(neh.DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Error(t, solver.Construct(sol))
}

func TestSingleJob(t *testing.T) {
	inst, err := flowshop.NewInstance(1, 3, []int{2, 4, 6})
	require.NoError(t, err)

	solver, err := neh.New(neh.DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	res, err := solver.Solve(context.Background(), inst)
	require.NoError(t, err)
	require.Equal(t, []int{1}, res.Permutation)
	require.Equal(t, 12, res.Makespan)
	require.Equal(t, 1, res.Evaluations)
}

// TestEvaluationCount: построение N-работной последовательности стоит ровно
// N оценок - две на засев пары и по одной вставке на оставшиеся работы.
func TestEvaluationCount(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	inst := flowshop.RandomInstance(10, 3, 1, 50, rng)

	solver, err := neh.New(neh.DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	res, err := solver.Solve(context.Background(), inst)
	require.NoError(t, err)
	require.Equal(t, inst.Jobs, res.Evaluations)
}

// TestDeterminism: одинаковые конфигурация и сид дают одинаковую
// последовательность.
func TestDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	inst := flowshop.RandomInstance(15, 5, 1, 99, rng)

	for _, ordering := range []neh.Ordering{neh.OrderingSD, neh.OrderingAD, neh.OrderingRandom} {
		t.Run(string(ordering), func(t *testing.T) {
			cfg := neh.Config{Ordering: ordering}

			a, err := neh.New(cfg, rand.New(rand.NewSource(33)))
			require.NoError(t, err)
			b, err := neh.New(cfg, rand.New(rand.NewSource(33)))
			require.NoError(t, err)

			resA, err := a.Solve(context.Background(), inst)
			require.NoError(t, err)
			resB, err := b.Solve(context.Background(), inst)
			require.NoError(t, err)

			require.Equal(t, resA.Permutation, resB.Permutation)
			require.Equal(t, resA.Makespan, resB.Makespan)
		})
	}
}
