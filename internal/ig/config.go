package ig

import (
	"fmt"
	"time"

	"flowShopIG/internal/neh"
)

// SelectionMethod задаёт способ выбора удаляемых работ на фазе разрушения.
type SelectionMethod string

const (
	// SelectionRandom - равномерный выбор без повторений.
	SelectionRandom SelectionMethod = "random"
	// SelectionTournament - турнирный отбор по простою работ.
	SelectionTournament SelectionMethod = "tournament"
	// SelectionRoulette - пропорциональный отбор (рулетка).
	SelectionRoulette SelectionMethod = "roulette"
	// SelectionSUS - stochastic universal sampling.
	SelectionSUS SelectionMethod = "sus"
)

type Config struct {
	// TemperatureParam - параметр постоянной температуры критерия
	// Метрополиса (Osman and Potts, 1989).
	TemperatureParam float64

	// NumJobsRemove - число работ, удаляемых на каждой итерации.
	// Должно быть меньше числа работ экземпляра.
	NumJobsRemove int

	TieBreaking bool

	// LocalOptimum - повторять локальный поиск до локального оптимума,
	// иначе выполняется один проход.
	LocalOptimum bool

	// LocalSearchPartial - применять локальный поиск к частичному
	// решению после фазы разрушения.
	LocalSearchPartial bool

	Selection SelectionMethod

	// TournamentSize - размер турнира при Selection == SelectionTournament.
	TournamentSize int

	// Ordering - правило упорядочивания работ в NEH.
	Ordering neh.Ordering

	// Budget - бюджет времени работы алгоритма.
	Budget time.Duration
}

func DefaultConfig() Config {
	return Config{
		TemperatureParam:   0.4,
		NumJobsRemove:      4,
		TieBreaking:        false,
		LocalOptimum:       true,
		LocalSearchPartial: false,
		Selection:          SelectionRandom,
		TournamentSize:     5,
		Ordering:           neh.OrderingSD,
		Budget:             time.Second,
	}
}

func (c Config) Validate() error {
	if c.TemperatureParam <= 0 {
		return fmt.Errorf(
			"TemperatureParam должно быть > 0 (получено %f)",
			c.TemperatureParam,
		)
	}
	if c.NumJobsRemove < 1 {
		return fmt.Errorf(
			"NumJobsRemove должно быть >= 1 (получено %d)",
			c.NumJobsRemove,
		)
	}
	switch c.Selection {
	case SelectionRandom, SelectionTournament, SelectionRoulette, SelectionSUS:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный метод отбора %q",
			c.Selection,
		)
	}
	if c.Selection == SelectionTournament && c.TournamentSize < 1 {
		return fmt.Errorf(
			"TournamentSize должно быть >= 1 (получено %d)",
			c.TournamentSize,
		)
	}
	if err := (neh.Config{Ordering: c.Ordering}).Validate(); err != nil {
		return err
	}
	if c.Budget < time.Millisecond {
		return fmt.Errorf(
			"Budget должно быть >= 1ms (получено %v)",
			c.Budget,
		)
	}
	return nil
}
