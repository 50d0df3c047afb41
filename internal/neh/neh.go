package neh

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/oleiade/lane/v2"

	"flowShopIG/internal/flowshop"
	"flowShopIG/internal/opt"
)

// Solver - реализация конструктивной эвристики NEH (Nawaz, Enscore and
// Ham, 1983): работы упорядочиваются по выбранному правилу, первые две
// размещаются в лучшем из двух порядков, остальные вставляются в позицию,
// минимизирующую частичный makespan.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый NEH-солвер с валидацией конфигурации.
// Генератор случайных чисел нужен только для Ordering == OrderingRandom,
// но должен быть задан всегда.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Construct строит решение NEH в переданном пустом объекте Solution.
func (s *Solver) Construct(sol *flowshop.Solution) error {
	if sol == nil {
		return fmt.Errorf("решение не инициализировано (nil)")
	}
	if len(sol.Sequence) != 0 {
		return fmt.Errorf("NEH требует пустое решение (длина последовательности %d)", len(sol.Sequence))
	}
	inst := sol.Instance()
	order := s.orderJobs(inst)

	if len(order) == 1 {
		sol.Sequence = append(sol.Sequence, order[0])
		_, err := sol.CalculateMakespan()
		return err
	}

	// Первые две работы: выбирается порядок с меньшим частичным makespan,
	// при равенстве сохраняется порядок сортировки.
	sol.Sequence = append(sol.Sequence, order[0], order[1])
	ms1, err := sol.CalculateMakespan()
	if err != nil {
		return err
	}
	sol.Sequence[0], sol.Sequence[1] = order[1], order[0]
	ms2, err := sol.CalculateMakespan()
	if err != nil {
		return err
	}
	if ms1 <= ms2 {
		sol.Sequence[0], sol.Sequence[1] = order[0], order[1]
		sol.Makespan = ms1
	}

	for _, job := range order[2:] {
		if _, err := sol.InsertBestPosition(job, s.Cfg.TieBreaking); err != nil {
			return err
		}
	}
	return nil
}

// Solve - реализация эвристики в виде opt.Optimizer.
func (s *Solver) Solve(_ context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()

	sol, err := flowshop.NewSolution(inst)
	if err != nil {
		return opt.Result{}, err
	}
	if err := s.Construct(sol); err != nil {
		return opt.Result{}, err
	}

	return opt.Result{
		Permutation: sol.Sequence,
		Makespan:    sol.Makespan,
		Evaluations: sol.Evaluations(),
		Iterations:  1,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"ordering":     string(s.Cfg.Ordering),
			"tie_breaking": s.Cfg.TieBreaking,
		},
	}, nil
}

// orderJobs возвращает работы в порядке убывания приоритета выбранного
// правила. Очередь с приоритетами даёт детерминированный порядок при
// фиксированной последовательности вставок.
func (s *Solver) orderJobs(inst *flowshop.Instance) []int {
	order := make([]int, 0, inst.Jobs)

	if s.Cfg.Ordering == OrderingRandom {
		for job := 1; job <= inst.Jobs; job++ {
			order = append(order, job)
		}
		s.Rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		return order
	}

	pq := lane.NewMaxPriorityQueue[int, float64]()
	for job := 1; job <= inst.Jobs; job++ {
		switch s.Cfg.Ordering {
		case OrderingAD:
			pq.Push(job, meanPlusDeviation(inst, job))
		default:
			pq.Push(job, float64(inst.JobTotal(job)))
		}
	}
	for {
		job, _, ok := pq.Pop()
		if !ok {
			break
		}
		order = append(order, job)
	}
	return order
}

// meanPlusDeviation возвращает сумму среднего и стандартного отклонения
// времён обработки работы по всем станкам.
func meanPlusDeviation(inst *flowshop.Instance, job int) float64 {
	nm := inst.Machines
	mean := float64(inst.JobTotal(job)) / float64(nm)
	variance := 0.0
	for m := 0; m < nm; m++ {
		d := float64(inst.Time(job, m)) - mean
		variance += d * d
	}
	variance /= float64(nm)
	return mean + math.Sqrt(variance)
}
