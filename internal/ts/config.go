package ts

import "github.com/cockroachdb/errors"

type Config struct {
	Iterations       int
	IterationsPerJob int

	// TabuTenure — число итераций, в течение которых обмен остаётся запрещённым.
	TabuTenure int

	// TabuTenureRand — случайная добавка к сроку табу [0..rand]; 0 — детерминированный поиск.
	TabuTenureRand int

	// Workers — число горутин для оценки соседей.
	Workers int

	// CacheSize — ёмкость кэша мейкспанов (0 — без кэша).
	CacheSize int
}

func DefaultConfig() Config {
	return Config{
		Iterations:       0,
		IterationsPerJob: 100,

		TabuTenure:     7,
		TabuTenureRand: 0,

		Workers:   1,
		CacheSize: 8192,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerJob <= 0 {
		return errors.New("должно быть задано Iterations > 0 или IterationsPerJob > 0")
	}
	if c.TabuTenure <= 0 {
		return errors.Newf(
			"TabuTenure должно быть > 0 (получено %d)",
			c.TabuTenure,
		)
	}
	if c.TabuTenureRand < 0 {
		return errors.Newf(
			"TabuTenureRand должно быть >= 0 (получено %d)",
			c.TabuTenureRand,
		)
	}
	if c.Workers <= 0 {
		return errors.Newf(
			"Workers должно быть > 0 (получено %d)",
			c.Workers,
		)
	}
	if c.CacheSize < 0 {
		return errors.Newf(
			"CacheSize должно быть >= 0 (получено %d)",
			c.CacheSize,
		)
	}
	return nil
}

// maxIter возвращает число итераций для экземпляра с jobs заданиями.
func (c Config) maxIter(jobs int) int {
	if c.Iterations > 0 {
		return c.Iterations
	}
	return c.IterationsPerJob * jobs
}
