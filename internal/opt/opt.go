package opt

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"jobShop/internal/jobshop"
)

// ErrNoSolution is returned when a solver ends without a decodable order.
var ErrNoSolution = errors.New("no solution")

// Причины остановки, записываются в Result.Meta["stopped"].
const (
	StopLocalOptimum = "local_optimum"
	StopMaxIter      = "max_iter"
	StopDeadline     = "deadline"
	StopNoMove       = "no_move"
	StopLowerBound   = "lower_bound"
	StopConstructed  = "constructed"
	StopFrozen       = "frozen"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *jobshop.Instance) (Result, error)
}

type Result struct {
	Order       *jobshop.ResourceOrder
	Schedule    *jobshop.Schedule
	Makespan    int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// Stopped returns the stop reason recorded by the solver.
func (r Result) Stopped() string {
	s, _ := r.Meta["stopped"].(string)
	return s
}

// SolveWithDeadline runs o with a wall-clock budget. The schedule is nil only together with an
// error: a malformed instance or a broken solver invariant.
func SolveWithDeadline(o Optimizer, inst *jobshop.Instance, budget time.Duration) (*jobshop.Schedule, error) {
	ctx := context.Background()
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	res, err := o.Solve(ctx, inst)
	if err != nil {
		return nil, err
	}
	if res.Schedule == nil {
		return nil, errors.Wrapf(ErrNoSolution, "instance %s", inst.Name)
	}
	return res.Schedule, nil
}

// InitialOrder runs base and returns the order of its solution, rebuilt from the schedule when
// the base solver did not report one.
func InitialOrder(ctx context.Context, base Optimizer, inst *jobshop.Instance) (*jobshop.ResourceOrder, *jobshop.Schedule, error) {
	if base == nil {
		return nil, nil, errors.New("base solver is nil")
	}
	res, err := base.Solve(ctx, inst)
	if err != nil {
		return nil, nil, errors.Wrap(err, "initial solution")
	}
	order := res.Order
	if order == nil {
		if res.Schedule == nil {
			return nil, nil, errors.Wrap(ErrNoSolution, "initial solution")
		}
		order = jobshop.FromSchedule(res.Schedule)
	}
	sched, ok := order.Decode()
	if !ok {
		return nil, nil, errors.AssertionFailedf("initial order of %s does not decode", inst.Name)
	}
	return order, sched, nil
}

// Deadline reports whether ctx is done; solvers check it between iterations only.
func Deadline(ctx context.Context) bool {
	return ctx.Err() != nil
}
