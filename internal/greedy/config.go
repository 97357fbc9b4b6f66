package greedy

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Priority — правило выбора операции из множества готовых.
type Priority string

const (
	SPT  Priority = "SPT"  // кратчайшая длительность
	LPT  Priority = "LPT"  // наибольшая длительность
	SRPT Priority = "SRPT" // наименьшая оставшаяся работа задания
	LRPT Priority = "LRPT" // наибольшая оставшаяся работа задания

	// EST_* сначала ограничивают выбор операциями с наименьшим ранним началом.
	EST_SPT  Priority = "EST_SPT"
	EST_LPT  Priority = "EST_LPT"
	EST_SRPT Priority = "EST_SRPT"
	EST_LRPT Priority = "EST_LRPT"
)

// Priorities перечисляет все поддерживаемые правила.
var Priorities = []Priority{SPT, LPT, SRPT, LRPT, EST_SPT, EST_LPT, EST_SRPT, EST_LRPT}

// ParsePriority принимает имя правила без учёта регистра; '-' эквивалентен '_'.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	for _, known := range Priorities {
		if p == known {
			return p, nil
		}
	}
	return "", errors.Newf("неизвестное правило приоритета %q", s)
}

func (p Priority) est() bool {
	return strings.HasPrefix(string(p), "EST_")
}

func (p Priority) base() Priority {
	return Priority(strings.TrimPrefix(string(p), "EST_"))
}

type Config struct {
	Priority Priority
}

func DefaultConfig() Config {
	return Config{Priority: EST_SPT}
}

func (c Config) Validate() error {
	if _, err := ParsePriority(string(c.Priority)); err != nil {
		return err
	}
	return nil
}
