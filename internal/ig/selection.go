package ig

import "math/rand"

// Методы отбора работают с весами, индексированными идентификатором работы
// (срез длины N+1, нулевой индекс не используется), и возвращают
// идентификаторы работ, удаляемых на фазе разрушения.

// randomSelection возвращает num различных работ, выбранных равномерно из
// population без повторений. population не изменяется.
func randomSelection(population []int, num int, rng *rand.Rand) []int {
	pool := make([]int, len(population))
	copy(pool, population)
	chosen := make([]int, 0, num)
	for i := 0; i < num && len(pool) > 0; i++ {
		j := rng.Intn(len(pool))
		chosen = append(chosen, pool[j])
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return chosen
}

// tournamentSelection проводит num турниров над популяцией всех работ.
// В каждом турнире участвуют tournamentSize различных работ, побеждает
// работа с наибольшим весом; при нулевом максимальном весе победитель
// выбирается среди участников равномерно. Победители исключаются из
// популяции, поэтому выбранные работы различны.
func tournamentSelection(weights []float64, tournamentSize, num int, rng *rand.Rand) []int {
	pool := make([]int, 0, len(weights)-1)
	for job := 1; job < len(weights); job++ {
		pool = append(pool, job)
	}
	chosen := make([]int, 0, num)
	aspirants := make([]int, 0, tournamentSize)

	for t := 0; t < num && len(pool) > 0; t++ {
		size := tournamentSize
		if size > len(pool) {
			size = len(pool)
		}

		// Участники турнира: size различных работ из оставшейся популяции.
		aspirants = aspirants[:0]
		for i := 0; i < size; i++ {
			j := i + rng.Intn(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
			aspirants = append(aspirants, pool[i])
		}

		winner := aspirants[0]
		best := weights[winner]
		for _, asp := range aspirants[1:] {
			if weights[asp] > best {
				best = weights[asp]
				winner = asp
			}
		}
		// Все простои нулевые - победитель выбирается случайно.
		if best == 0 {
			winner = aspirants[rng.Intn(len(aspirants))]
		}

		chosen = append(chosen, winner)
		for i, v := range pool {
			if v == winner {
				pool[i] = pool[len(pool)-1]
				pool = pool[:len(pool)-1]
				break
			}
		}
	}
	return chosen
}

// rouletteWheel - пропорциональный отбор: num независимых розыгрышей по
// накопленным весам. Работы могут повторяться; вызывающая сторона
// устраняет дубликаты. При исчерпании накопленной суммы из-за ошибок
// округления выбирается последняя работа.
func rouletteWheel(weights []float64, num int, rng *rand.Rand) []int {
	total := 0.0
	for _, w := range weights[1:] {
		total += w
	}

	chosen := make([]int, 0, num)
	last := len(weights) - 1
	for i := 0; i < num; i++ {
		r := rng.Float64() * total
		picked := last
		for job := 1; job < len(weights); job++ {
			r -= weights[job]
			if r <= 0 {
				picked = job
				break
			}
		}
		chosen = append(chosen, picked)
	}
	return chosen
}

// stochasticUniversalSampling - отбор с равноотстоящими указателями:
// один случайный сдвиг и num указателей с шагом total/num по накопленным
// весам, что даёт один коррелированный розыгрыш с низкой дисперсией
// вместо num независимых.
func stochasticUniversalSampling(weights []float64, num int, rng *rand.Rand) []int {
	total := 0.0
	for _, w := range weights[1:] {
		total += w
	}
	distance := total / float64(num)
	start := rng.Float64() * distance

	chosen := make([]int, 0, num)
	last := len(weights) - 1
	job := 1
	cum := weights[1]
	for i := 0; i < num; i++ {
		point := start + float64(i)*distance
		for cum < point && job < last {
			job++
			cum += weights[job]
		}
		chosen = append(chosen, job)
	}
	return chosen
}
