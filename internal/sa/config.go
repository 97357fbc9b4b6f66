package sa

import "github.com/cockroachdb/errors"

// Тип окрестности
type Neighborhood string

const (
	// NeighborhoodCritical — обмен соседних операций на границе блока критического пути.
	NeighborhoodCritical Neighborhood = "critical"
	// NeighborhoodAdjacent — обмен двух соседних операций на случайной машине.
	NeighborhoodAdjacent Neighborhood = "adjacent"
)

type Config struct {
	Iterations       int
	IterationsPerJob int

	InitialTemp float64
	FinalTemp   float64
	Alpha       float64

	Neighborhood Neighborhood
}

func DefaultConfig() Config {
	return Config{
		Iterations:       0,
		IterationsPerJob: 500,

		InitialTemp: 20.0,
		FinalTemp:   0.05,
		Alpha:       0.995,

		Neighborhood: NeighborhoodCritical,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerJob <= 0 {
		return errors.New("должно быть задано Iterations > 0 или IterationsPerJob > 0")
	}
	if c.InitialTemp <= 0 {
		return errors.Newf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.FinalTemp <= 0 {
		return errors.Newf(
			"FinalTemp должно быть > 0 (получено %f)",
			c.FinalTemp,
		)
	}
	if c.FinalTemp >= c.InitialTemp {
		return errors.Newf(
			"FinalTemp должно быть < InitialTemp (получено %f >= %f)",
			c.FinalTemp,
			c.InitialTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return errors.Newf(
			"alpha должно лежать в интервале (0,1) (получено %f)",
			c.Alpha,
		)
	}
	switch c.Neighborhood {
	case NeighborhoodCritical, NeighborhoodAdjacent:
		// ok
	default:
		return errors.Newf(
			"неизвестный тип окрестности %q",
			c.Neighborhood,
		)
	}
	return nil
}
