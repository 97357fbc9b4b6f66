package descent

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"jobShop/internal/jobshop"
	"jobShop/internal/logger"
	"jobShop/internal/memo"
	"jobShop/internal/nowicki"
	"jobShop/internal/opt"
)

// Solver — наискорейший спуск по окрестности Новицкого–Смутницкого.
type Solver struct {
	Cfg  Config
	Base opt.Optimizer
}

// New возвращает солвер спуска; base строит начальное решение.
func New(cfg Config, base opt.Optimizer) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if base == nil {
		return nil, errors.New("базовый солвер не задан (nil)")
	}
	return &Solver{Cfg: cfg, Base: base}, nil
}

// Solve переходит к лучшему соседу, пока он строго лучше текущего решения.
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()
	log := logger.Named("descent")

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

	curr, sched, err := opt.InitialOrder(ctx, s.Base, inst)
	if err != nil {
		return opt.Result{}, err
	}
	currCost := sched.Makespan()
	initial := currCost
	evals := 1

	stopped := opt.StopLocalOptimum
	iter := 0
	for ; s.Cfg.MaxIterations == 0 || iter < s.Cfg.MaxIterations; iter++ {
		// Дедлайн проверяется только между итерациями
		if opt.Deadline(ctx) {
			stopped = opt.StopDeadline
			break
		}

		cands := eval.Evaluate(curr, nowicki.AllSwaps(curr))
		evals += len(cands)

		best, ok := nowicki.Best(cands, nil)
		if !ok || best.Makespan >= currCost {
			break
		}
		log.Debugw("improved", "iteration", iter, "swap", best.Swap.String(), "makespan", best.Makespan)
		curr, currCost = best.Order, best.Makespan
	}
	if s.Cfg.MaxIterations > 0 && iter == s.Cfg.MaxIterations {
		stopped = opt.StopMaxIter
	}

	final, ok := curr.Decode()
	if !ok {
		return opt.Result{}, errors.AssertionFailedf("descent order of %s does not decode", inst.Name)
	}
	hits, misses := cache.Stats()
	log.Infow("done",
		"instance", inst.Name,
		"initial", initial,
		"makespan", currCost,
		"iterations", iter,
		"stopped", stopped,
	)

	return opt.Result{
		Order:       curr,
		Schedule:    final,
		Makespan:    currCost,
		Evaluations: evals,
		Iterations:  iter,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"initial_makespan": initial,
			"workers":          s.Cfg.Workers,
			"cache_hits":       hits,
			"cache_misses":     misses,
			"stopped":          stopped,
		},
	}, nil
}
