package greedy

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"jobShop/internal/jobshop"
	"jobShop/internal/logger"
	"jobShop/internal/opt"
)

// Solver — конструктивная эвристика: операции выбираются одна за другой по правилу приоритета
// и дописываются в порядок своей машины.
type Solver struct {
	Cfg Config
}

// New возвращает жадный солвер с валидацией конфигурации.
func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// candidate — готовая операция с её ранним началом.
type candidate struct {
	task jobshop.Task
	est  int
	dur  int
}

// Build строит полный порядок на машинах.
//
// EST_* правила выбирают только среди операций с минимальным ранним началом, поэтому
// расписание получается non-delay. Простые правила применяются к конфликтному множеству
// Гиффлера–Томпсона: операции машины, на которой раньше всех может завершиться какая-либо
// готовая операция, и которые могут начаться до этого момента. Так расписание остаётся
// активным.
func (s *Solver) Build(inst *jobshop.Instance) (*jobshop.ResourceOrder, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	p, err := ParsePriority(string(s.Cfg.Priority))
	if err != nil {
		return nil, err
	}

	order := jobshop.NewResourceOrder(inst)
	next := make([]int, inst.Jobs)
	jobAvail := make([]int, inst.Jobs)
	machineAvail := make([]int, inst.Machines)
	remaining := make([]int, inst.Jobs)
	for j := range remaining {
		remaining[j] = inst.RemainingWork(j, 0)
	}

	ready := make([]candidate, 0, inst.Jobs)
	for placed := 0; placed < inst.TotalOps(); placed++ {
		// Множество готовых операций: по одной следующей операции на незавершённое задание,
		// в порядке номеров заданий
		ready = ready[:0]
		for j := 0; j < inst.Jobs; j++ {
			if next[j] == inst.Machines {
				continue
			}
			t := jobshop.Task{Job: j, Task: next[j]}
			ready = append(ready, candidate{
				task: t,
				est:  max(jobAvail[j], machineAvail[inst.Machine(t)]),
				dur:  inst.Duration(t),
			})
		}
		if len(ready) == 0 {
			return nil, errors.AssertionFailedf("no ready task after %d of %d placements", placed, inst.TotalOps())
		}

		var pool []candidate
		if p.est() {
			pool = earliestStart(ready)
		} else {
			pool = conflictSet(inst, ready)
		}
		c := pick(p.base(), pool, remaining)

		m := inst.Machine(c.task)
		if err := order.AddTaskToMachine(m, c.task); err != nil {
			return nil, errors.NewAssertionErrorWithWrappedErrf(err, "greedy placement of %s", c.task)
		}
		end := c.est + c.dur
		jobAvail[c.task.Job] = end
		machineAvail[m] = end
		remaining[c.task.Job] -= c.dur
		next[c.task.Job]++
	}
	return order, nil
}

// earliestStart оставляет операции с минимальным ранним началом.
func earliestStart(ready []candidate) []candidate {
	minEst := ready[0].est
	for _, c := range ready[1:] {
		minEst = min(minEst, c.est)
	}
	out := make([]candidate, 0, len(ready))
	for _, c := range ready {
		if c.est == minEst {
			out = append(out, c)
		}
	}
	return out
}

// conflictSet возвращает конфликтное множество Гиффлера–Томпсона.
func conflictSet(inst *jobshop.Instance, ready []candidate) []candidate {
	first := ready[0]
	for _, c := range ready[1:] {
		if c.est+c.dur < first.est+first.dur {
			first = c
		}
	}
	cStar := first.est + first.dur
	mStar := inst.Machine(first.task)

	out := make([]candidate, 0, len(ready))
	for _, c := range ready {
		if inst.Machine(c.task) == mStar && c.est < cStar {
			out = append(out, c)
		}
	}
	return out
}

// pick выбирает операцию по базовому правилу; при равенстве — наименьшая (j,k).
// pool упорядочен по номерам заданий, поэтому достаточно строгого сравнения.
func pick(p Priority, pool []candidate, remaining []int) candidate {
	key := func(c candidate) int {
		switch p {
		case SPT:
			return c.dur
		case LPT:
			return -c.dur
		case SRPT:
			return remaining[c.task.Job]
		default: // LRPT
			return -remaining[c.task.Job]
		}
	}
	best := pool[0]
	bestKey := key(best)
	for _, c := range pool[1:] {
		if k := key(c); k < bestKey {
			best, bestKey = c, k
		}
	}
	return best
}

// Solve строит порядок и декодирует его в расписание.
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()

	order, err := s.Build(inst)
	if err != nil {
		return opt.Result{}, err
	}
	sched, ok := order.Decode()
	if !ok {
		return opt.Result{}, errors.AssertionFailedf("greedy %s order of %s does not decode", s.Cfg.Priority, inst.Name)
	}

	logger.Named("greedy").Debugw("constructed",
		"instance", inst.Name,
		"priority", string(s.Cfg.Priority),
		"makespan", sched.Makespan(),
	)

	return opt.Result{
		Order:       order,
		Schedule:    sched,
		Makespan:    sched.Makespan(),
		Evaluations: 1,
		Iterations:  inst.TotalOps(),
		Duration:    time.Since(start),
		Meta: map[string]any{
			"priority": string(s.Cfg.Priority),
			"stopped":  opt.StopConstructed,
		},
	}, nil
}
