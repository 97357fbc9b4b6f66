package sa

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"

	"jobShop/internal/jobshop"
	"jobShop/internal/logger"
	"jobShop/internal/nowicki"
	"jobShop/internal/opt"
)

// Solver - структура реализации алгоритма имитации отжига
type Solver struct {
	Cfg  Config
	Base opt.Optimizer
	Rng  *rand.Rand
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
func New(cfg Config, base opt.Optimizer, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if base == nil {
		return nil, errors.New("базовый солвер не задан (nil)")
	}
	if rng == nil {
		return nil, errors.New("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Base: base, Rng: rng}, nil
}

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()
	log := logger.Named("sa")

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}

	curr, sched, err := opt.InitialOrder(ctx, s.Base, inst)
	if err != nil {
		return opt.Result{}, err
	}
	currCost := sched.Makespan()
	best, bestCost := curr, currCost
	lb := inst.LowerBound()

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerJob * inst.Jobs
	}

	evals := 1
	T := s.Cfg.InitialTemp
	stopped := opt.StopMaxIter
	iter := 0

	for ; iter < maxIter; iter++ {
		if T <= s.Cfg.FinalTemp {
			stopped = opt.StopFrozen
			break
		}
		if bestCost == lb {
			stopped = opt.StopLowerBound
			break
		}
		// Для поддержки отмены через context
		if opt.Deadline(ctx) {
			stopped = opt.StopDeadline
			break
		}

		var swap nowicki.Swap
		var ok bool
		switch s.Cfg.Neighborhood {
		case NeighborhoodAdjacent:
			// Обмен двух соседних операций на случайной машине
			swap, ok = randomAdjacent(curr, s.Rng)
		default:
			// Обмен на границе случайного блока критического пути
			swap, ok = randomCritical(curr, s.Rng)
		}
		if !ok {
			stopped = opt.StopNoMove
			break
		}

		cand := swap.Apply(curr)
		candSched, feasible := cand.Decode()
		evals++
		if !feasible {
			// Недопустимый порядок (цикл) пропускаем, температура всё равно снижается
			T *= s.Cfg.Alpha
			continue
		}
		candCost := candSched.Makespan()

		delta := candCost - currCost
		accept := false
		if delta <= 0 {
			// Улучшающее решение принимаем всегда
			accept = true
		} else {
			// Критерий Метрополиса:
			// допускает принятие ухудшающих решений
			p := math.Exp(-float64(delta) / T)
			if s.Rng.Float64() < p {
				accept = true
			}
		}

		if accept {
			curr, currCost = cand, candCost

			// Обновление глобально лучшего решения
			if currCost < bestCost {
				best, bestCost = curr, currCost
				log.Debugw("new best", "iteration", iter, "swap", swap.String(), "makespan", bestCost, "T", T)
			}
		}

		// Охлаждение температуры
		T *= s.Cfg.Alpha
	}

	final, ok := best.Decode()
	if !ok {
		return opt.Result{}, errors.AssertionFailedf("sa best order of %s does not decode", inst.Name)
	}
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
			"initial_temp": s.Cfg.InitialTemp,
			"final_temp":   s.Cfg.FinalTemp,
			"alpha":        s.Cfg.Alpha,
			"T":            T,
			"neighborhood": string(s.Cfg.Neighborhood),
			"stopped":      stopped,
		},
	}, nil
}

// randomCritical выбирает случайный обмен из окрестности Новицкого–Смутницкого.
func randomCritical(o *jobshop.ResourceOrder, rng *rand.Rand) (nowicki.Swap, bool) {
	swaps := nowicki.AllSwaps(o)
	if len(swaps) == 0 {
		return nowicki.Swap{}, false
	}
	return swaps[rng.Intn(len(swaps))], true
}

// randomAdjacent выбирает машину и соседнюю пару операций на ней.
func randomAdjacent(o *jobshop.ResourceOrder, rng *rand.Rand) (nowicki.Swap, bool) {
	inst := o.Instance()
	if inst.Jobs < 2 {
		return nowicki.Swap{}, false
	}
	m := rng.Intn(inst.Machines)
	i := rng.Intn(o.Len(m) - 1)
	return nowicki.NewSwap(m, i, i+1), true
}
