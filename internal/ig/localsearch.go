package ig

import (
	"math/rand"

	"flowShopIG/internal/flowshop"
)

// InsertionNeighborhood улучшает решение локальным поиском в окрестности
// вставки: работы обходятся в случайном порядке, каждая извлекается из
// последовательности и вставляется в свою лучшую позицию. Makespan решения
// не возрастает. При localOptimum == true проходы повторяются, пока проход
// не перестанет улучшать решение, иначе выполняется ровно один проход.
// Работает и с частичными последовательностями.
func InsertionNeighborhood(sol *flowshop.Solution, localOptimum, tieBreaking bool, rng *rand.Rand) error {
	if len(sol.Sequence) < 2 {
		_, err := sol.CalculateMakespan()
		return err
	}
	if sol.Makespan == 0 {
		if _, err := sol.CalculateMakespan(); err != nil {
			return err
		}
	}

	current := sol.Makespan
	visiting := make([]int, 0, len(sol.Sequence))

	improve := true
	for improve {
		improve = false

		// Случайный порядок обхода убирает позиционное смещение.
		visiting = append(visiting[:0], sol.Sequence...)
		rng.Shuffle(len(visiting), func(i, j int) {
			visiting[i], visiting[j] = visiting[j], visiting[i]
		})

		for _, job := range visiting {
			sol.Remove(job)
			if _, err := sol.InsertBestPosition(job, tieBreaking); err != nil {
				return err
			}
			if sol.Makespan < current {
				improve = true
				current = sol.Makespan
			}
		}

		if !localOptimum {
			break
		}
	}
	return nil
}
