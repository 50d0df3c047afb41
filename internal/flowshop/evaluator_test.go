package flowshop_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"flowShopIG/internal/flowshop"
)

func mustInstance(t *testing.T, jobs, machines int, pt []int) *flowshop.Instance {
	t.Helper()
	inst, err := flowshop.NewInstance(jobs, machines, pt)
	require.NoError(t, err)
	return inst
}

func mustEvaluator(t *testing.T, inst *flowshop.Instance) *flowshop.Evaluator {
	t.Helper()
	eval, err := flowshop.NewEvaluator(inst)
	require.NoError(t, err)
	return eval
}

func randomPermutation(n int, rng *rand.Rand) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i + 1
	}
	rng.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return perm
}

func TestInstanceValidate(t *testing.T) {
	cases := []struct {
		name     string
		jobs     int
		machines int
		pt       []int
	}{
		{"ZeroJobs", 0, 2, []int{}},
		{"ZeroMachines", 2, 0, []int{}},
		{"WrongLength", 2, 2, []int{1, 2, 3}},
		{"NegativeTime", 2, 2, []int{1, 2, -3, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := flowshop.NewInstance(tc.jobs, tc.machines, tc.pt)
			require.Error(t, err)
		})
	}
}

func TestCompletionTimesForwardRecurrence(t *testing.T) {
	// 3 работы, 2 станка: проверка прямой рекурсии вручную.
	inst := mustInstance(t, 3, 2, []int{
		4, 3,
		2, 5,
		6, 1,
	})
	eval := mustEvaluator(t, inst)

	c, err := eval.CompletionTimes([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, [][]int{
		{4, 7},
		{6, 12},
		{12, 13},
	}, c)

	ms, err := eval.Makespan([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 13, ms)
}

func TestMakespanPartialAndEmpty(t *testing.T) {
	inst := mustInstance(t, 3, 2, []int{
		4, 3,
		2, 5,
		6, 1,
	})
	eval := mustEvaluator(t, inst)

	ms, err := eval.Makespan(nil)
	require.NoError(t, err)
	require.Equal(t, 0, ms)

	ms, err = eval.Makespan([]int{2})
	require.NoError(t, err)
	require.Equal(t, 7, ms)

	_, err = eval.Makespan([]int{2, 2})
	require.Error(t, err)

	_, err = eval.Makespan([]int{0})
	require.Error(t, err)
}

// TestMakespanLowerBound: makespan любой перестановки не меньше загрузки
// самого нагруженного станка.
func TestMakespanLowerBound(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		jobs := 2 + rng.Intn(7)
		machines := 1 + rng.Intn(5)
		inst := flowshop.RandomInstance(jobs, machines, 1, 50, rng)
		eval := mustEvaluator(t, inst)

		bound := 0
		for m := 0; m < machines; m++ {
			load := 0
			for job := 1; job <= jobs; job++ {
				load += inst.Time(job, m)
			}
			if load > bound {
				bound = load
			}
		}

		perm := randomPermutation(jobs, rng)
		ms, err := eval.Makespan(perm)
		require.NoError(t, err)
		require.GreaterOrEqual(t, ms, bound)
	}
}

func TestIdleTimes(t *testing.T) {
	inst := mustInstance(t, 3, 2, []int{
		4, 3,
		2, 5,
		6, 1,
	})
	eval := mustEvaluator(t, inst)

	// Работа 1 ждёт 4 единицы на втором станке (фронтальная задержка),
	// работы 2 и 3 стартуют без простоев.
	idle, err := eval.IdleTimes([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []int{0, 4, 0, 0}, idle)
}

func TestIdleTimesSingleMachine(t *testing.T) {
	inst := mustInstance(t, 3, 1, []int{3, 5, 2})
	eval := mustEvaluator(t, inst)

	// На одном станке простоев нет.
	idle, err := eval.IdleTimes([]int{2, 1, 3})
	require.NoError(t, err)
	require.Equal(t, []int{0, 0, 0, 0}, idle)
}
