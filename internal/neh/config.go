package neh

import "fmt"

// Ordering задаёт правило начального упорядочивания работ.
type Ordering string

const (
	// OrderingSD - по невозрастанию суммарного времени обработки.
	OrderingSD Ordering = "sd"
	// OrderingAD - по невозрастанию суммы среднего и стандартного
	// отклонения времён обработки (Huang and Chen, 2008).
	OrderingAD Ordering = "ad"
	// OrderingRandom - случайный порядок работ.
	OrderingRandom Ordering = "random"
)

type Config struct {
	Ordering Ordering

	TieBreaking bool
}

func DefaultConfig() Config {
	return Config{
		Ordering:    OrderingSD,
		TieBreaking: false,
	}
}

func (c Config) Validate() error {
	switch c.Ordering {
	case OrderingSD, OrderingAD, OrderingRandom:
		// ok
	default:
		return fmt.Errorf(
			"неизвестное правило упорядочивания %q",
			c.Ordering,
		)
	}
	return nil
}
