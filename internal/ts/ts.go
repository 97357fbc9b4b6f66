package ts

import (
	"context"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"

	"jobShop/internal/jobshop"
	"jobShop/internal/logger"
	"jobShop/internal/memo"
	"jobShop/internal/nowicki"
	"jobShop/internal/opt"
)

// Solver - структура реализации табу-поиска по окрестности Новицкого–Смутницкого.
type Solver struct {
	Cfg  Config
	Base opt.Optimizer
	Rng  *rand.Rand
}

// New возвращает новый TS-солвер с валидацией конфигурации.
// Генератор нужен только при TabuTenureRand > 0.
func New(cfg Config, base opt.Optimizer, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if base == nil {
		return nil, errors.New("базовый солвер не задан (nil)")
	}
	if cfg.TabuTenureRand > 0 && rng == nil {
		return nil, errors.New("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Base: base, Rng: rng}, nil
}

// Solve — основной цикл алгоритма
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()
	log := logger.Named("tabu")

	// Валидация входных данных
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}

	cache, err := memo.New(s.Cfg.CacheSize)
	if err != nil {
		return opt.Result{}, err
	}
	eval := nowicki.Evaluator{Workers: s.Cfg.Workers, Cache: cache}

	// Начальное решение от базового солвера
	curr, sched, err := opt.InitialOrder(ctx, s.Base, inst)
	if err != nil {
		return opt.Result{}, err
	}
	currCost := sched.Makespan()
	evals := 1

	// Глобально лучшее решение
	best := curr
	bestCost := currCost
	lb := inst.LowerBound()

	tabu := newTabuList()
	maxIter := s.Cfg.maxIter(inst.Jobs)

	stopped := opt.StopMaxIter
	iter := 0
	if bestCost == lb {
		stopped = opt.StopLowerBound
	}
	for stopped == opt.StopMaxIter && iter < maxIter {
		// Дедлайн проверяется только на границе итераций
		if opt.Deadline(ctx) {
			stopped = opt.StopDeadline
			break
		}
		iter++

		swaps := nowicki.AllSwaps(curr)
		if len(swaps) == 0 {
			// Критический путь без блоков: ни один обмен не может его сократить
			stopped = opt.StopNoMove
			break
		}
		cands := eval.Evaluate(curr, swaps)
		evals += len(cands)

		chosen, ok := choose(cands, tabu, iter, bestCost)
		// Нет допустимых ходов — завершаем поиск
		if !ok {
			stopped = opt.StopNoMove
			break
		}

		curr, currCost = chosen.Order, chosen.Makespan

		tenure := s.Cfg.TabuTenure
		if s.Cfg.TabuTenureRand > 0 {
			tenure += s.Rng.Intn(s.Cfg.TabuTenureRand + 1)
		}
		tabu.Add(chosen.Swap, iter, iter+tenure)

		// Обновление глобально лучшего решения
		if currCost < bestCost {
			best, bestCost = curr, currCost
			log.Debugw("new best", "iteration", iter, "swap", chosen.Swap.String(), "makespan", bestCost)
			if bestCost == lb {
				stopped = opt.StopLowerBound
			}
		}
	}

	final, ok := best.Decode()
	if !ok {
		return opt.Result{}, errors.AssertionFailedf("tabu best order of %s does not decode", inst.Name)
	}
	hits, misses := cache.Stats()
	log.Infow("done",
		"instance", inst.Name,
		"makespan", bestCost,
		"iterations", iter,
		"stopped", stopped,
	)

	return opt.Result{
		Order:       best,
		Schedule:    final,
		Makespan:    bestCost,
		Evaluations: evals,
		Iterations:  iter,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"tabu_tenure":      s.Cfg.TabuTenure,
			"tabu_tenure_rand": s.Cfg.TabuTenureRand,
			"max_iter":         maxIter,
			"workers":          s.Cfg.Workers,
			"cache_hits":       hits,
			"cache_misses":     misses,
			"stopped":          stopped,
		},
	}, nil
}

// choose возвращает лучший допустимый ход: не табу либо выполняется критерий аспирации
// (мейкспан меньше лучшего найденного). Если все ходы табуированы, берётся наименее
// ухудшающий; ok == false, когда допустимых соседей нет вовсе.
func choose(cands []nowicki.Candidate, tabu *tabuList, iter, bestCost int) (nowicki.Candidate, bool) {
	chosen, ok := nowicki.Best(cands, func(c nowicki.Candidate) bool {
		return !tabu.IsTabu(c.Swap, iter) || c.Makespan < bestCost
	})
	if ok {
		return chosen, true
	}
	return nowicki.Best(cands, nil)
}

// tabuList — память табу: обмен → итерация, начиная с которой он снова разрешён.
// Запрещается дескриптор обмена (машина и позиции), а не посещённое решение.
type tabuList struct {
	until map[nowicki.Swap]int
}

func newTabuList() *tabuList {
	return &tabuList{until: make(map[nowicki.Swap]int)}
}

// IsTabu проверяет, запрещён ли обмен на итерации iter.
func (t *tabuList) IsTabu(s nowicki.Swap, iter int) bool {
	return t.until[s] > iter
}

// Add запрещает обмен до итерации expiry. Истёкшие к итерации iter записи удаляются.
func (t *tabuList) Add(s nowicki.Swap, iter, expiry int) {
	if len(t.until) > 64 {
		for k, until := range t.until {
			if until <= iter {
				delete(t.until, k)
			}
		}
	}
	t.until[s] = expiry
}

func (t *tabuList) Len() int { return len(t.until) }
