package descent

import "github.com/cockroachdb/errors"

type Config struct {
	// MaxIterations ограничивает число шагов; 0 — до локального минимума.
	MaxIterations int

	// Workers — число горутин для оценки соседей (1 — последовательно).
	Workers int

	// CacheSize — ёмкость кэша мейкспанов (0 — без кэша).
	CacheSize int
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: 0,
		Workers:       1,
		CacheSize:     4096,
	}
}

func (c Config) Validate() error {
	if c.MaxIterations < 0 {
		return errors.Newf("MaxIterations должно быть >= 0 (получено %d)", c.MaxIterations)
	}
	if c.Workers <= 0 {
		return errors.Newf("Workers должно быть > 0 (получено %d)", c.Workers)
	}
	if c.CacheSize < 0 {
		return errors.Newf("CacheSize должно быть >= 0 (получено %d)", c.CacheSize)
	}
	return nil
}
