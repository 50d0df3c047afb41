package ig

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"flowShopIG/internal/flowshop"
	"flowShopIG/internal/neh"
	"flowShopIG/internal/opt"
)

// Solver - реализация метаэвристики Iterated Greedy (Ruiz and Stützle,
// 2007) для перестановочной flow-shop задачи с критерием makespan.
// Начальное решение строится NEH, затем повторяются фазы разрушения
// (отбор и удаление работ), восстановления (вставка в лучшие позиции),
// локального поиска и вероятностного принятия по критерию Метрополиса
// с постоянной температурой.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый IG-солвер с валидацией конфигурации, с
// использованием инициализированного генератора случайных чисел.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// ComputationalTime возвращает принятый в литературе бюджет времени
// param * N * (M/2) в миллисекундах. Значение носит справочный характер
// и не навязывается солверу.
func ComputationalTime(inst *flowshop.Instance, param float64) time.Duration {
	ms := param * float64(inst.Jobs) * float64(inst.Machines) / 2.0
	return time.Duration(ms * float64(time.Millisecond))
}

// Solve - реализация метаэвристики. Работает до исчерпания бюджета
// времени Cfg.Budget; отмена через context проверяется на границе
// итерации. Текущая итерация всегда завершается целиком.
func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if s.Cfg.NumJobsRemove >= inst.Jobs {
		return opt.Result{}, fmt.Errorf(
			"NumJobsRemove должно быть меньше числа работ %d (получено %d)",
			inst.Jobs, s.Cfg.NumJobsRemove,
		)
	}
	if s.Cfg.Selection == SelectionTournament && s.Cfg.TournamentSize > inst.Jobs {
		return opt.Result{}, fmt.Errorf(
			"TournamentSize должно быть <= числа работ %d (получено %d)",
			inst.Jobs, s.Cfg.TournamentSize,
		)
	}

	// Постоянная температура критерия принятия.
	temperature := s.Cfg.TemperatureParam * float64(inst.Total()) /
		float64(inst.Jobs*inst.Machines*10)
	deadline := start.Add(s.Cfg.Budget)

	// Начальное решение: NEH + локальный поиск.
	constructor, err := neh.New(neh.Config{
		Ordering:    s.Cfg.Ordering,
		TieBreaking: s.Cfg.TieBreaking,
	}, s.Rng)
	if err != nil {
		return opt.Result{}, err
	}
	current, err := flowshop.NewSolution(inst)
	if err != nil {
		return opt.Result{}, err
	}
	if err := constructor.Construct(current); err != nil {
		return opt.Result{}, err
	}
	if err := InsertionNeighborhood(current, s.Cfg.LocalOptimum, s.Cfg.TieBreaking, s.Rng); err != nil {
		return opt.Result{}, err
	}

	best := current.Clone()
	working := current.Clone()
	iterations := 0
	stopped := "deadline"

	for time.Now().Before(deadline) {
		// Для поддержки отмены через context.
		if ctx.Err() != nil {
			stopped = "context"
			break
		}

		// Фаза разрушения.
		removed, err := s.selectJobsToRemove(current)
		if err != nil {
			return opt.Result{}, err
		}
		removedSet := mapset.NewThreadUnsafeSet[int]()
		unique := make([]int, 0, len(removed))
		for _, job := range removed {
			// Рулетка и SUS могут вернуть дубликаты - они поглощаются.
			if removedSet.Add(job) {
				unique = append(unique, job)
			}
		}

		working.Sequence = working.Sequence[:0]
		for _, job := range current.Sequence {
			if !removedSet.Contains(job) {
				working.Sequence = append(working.Sequence, job)
			}
		}
		working.Makespan = 0

		if s.Cfg.LocalSearchPartial {
			if err := InsertionNeighborhood(working, s.Cfg.LocalOptimum, s.Cfg.TieBreaking, s.Rng); err != nil {
				return opt.Result{}, err
			}
		}

		// Фаза восстановления: вставка в порядке отбора.
		for _, job := range unique {
			if _, err := working.InsertBestPosition(job, s.Cfg.TieBreaking); err != nil {
				return opt.Result{}, err
			}
		}

		if err := InsertionNeighborhood(working, s.Cfg.LocalOptimum, s.Cfg.TieBreaking, s.Rng); err != nil {
			return opt.Result{}, err
		}

		// Критерий принятия.
		if working.Makespan < current.Makespan {
			current.CopyFrom(working)
			if current.Makespan < best.Makespan {
				best.CopyFrom(current)
			}
		} else {
			diff := working.Makespan - current.Makespan
			if s.Rng.Float64() <= math.Exp(-float64(diff)/temperature) {
				current.CopyFrom(working)
			}
		}

		iterations++
	}

	return opt.Result{
		Permutation: best.Sequence,
		Makespan:    best.Makespan,
		Evaluations: current.Evaluations() + working.Evaluations() + best.Evaluations(),
		Iterations:  iterations,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"stopped":          stopped,
			"temperature":      temperature,
			"selection":        string(s.Cfg.Selection),
			"ordering":         string(s.Cfg.Ordering),
			"num_jobs_remove":  s.Cfg.NumJobsRemove,
			"current_makespan": current.Makespan,
		},
	}, nil
}

// selectJobsToRemove возвращает работы, удаляемые на текущей итерации.
// Работа в первой позиции последовательности всегда получает нулевой вес
// и не удаляется взвешенными методами.
func (s *Solver) selectJobsToRemove(current *flowshop.Solution) ([]int, error) {
	num := s.Cfg.NumJobsRemove

	switch s.Cfg.Selection {
	case SelectionTournament:
		idle, err := current.CalculateIdleTimes()
		if err != nil {
			return nil, err
		}
		weights := make([]float64, len(idle))
		for job, v := range idle {
			weights[job] = float64(v)
		}
		weights[current.Sequence[0]] = 0
		chosen := tournamentSelection(weights, s.Cfg.TournamentSize, num, s.Rng)
		if len(chosen) != num {
			return nil, fmt.Errorf("турнирный отбор вернул %d работ вместо %d", len(chosen), num)
		}
		return chosen, nil

	case SelectionRoulette, SelectionSUS:
		weights, err := s.selectionWeights(current)
		if err != nil {
			return nil, err
		}
		total := 0.0
		for _, w := range weights[1:] {
			total += w
		}
		// Вырожденный случай нулевой суммы весов: равномерный отбор
		// вместо деления на ноль.
		if total == 0 {
			return randomSelection(current.Sequence, num, s.Rng), nil
		}
		if s.Cfg.Selection == SelectionRoulette {
			return rouletteWheel(weights, num, s.Rng), nil
		}
		return stochasticUniversalSampling(weights, num, s.Rng), nil

	default:
		chosen := randomSelection(current.Sequence, num, s.Rng)
		if len(chosen) != num {
			return nil, fmt.Errorf("случайный отбор вернул %d работ вместо %d", len(chosen), num)
		}
		return chosen, nil
	}
}

// selectionWeights возвращает веса (idle + total) / total по каждой
// работе; работа из первой позиции получает нулевой вес.
func (s *Solver) selectionWeights(current *flowshop.Solution) ([]float64, error) {
	idle, err := current.CalculateIdleTimes()
	if err != nil {
		return nil, err
	}
	inst := current.Instance()
	weights := make([]float64, len(idle))
	for job := 1; job <= inst.Jobs; job++ {
		total := float64(inst.JobTotal(job))
		if total == 0 {
			weights[job] = 0
			continue
		}
		weights[job] = (total + float64(idle[job])) / total
	}
	weights[current.Sequence[0]] = 0
	return weights, nil
}
