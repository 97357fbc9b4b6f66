package descent_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobShop/internal/descent"
	"jobShop/internal/greedy"
	"jobShop/internal/jobshop"
	"jobShop/internal/jobshop/jobshoptest"
	"jobShop/internal/nowicki"
	"jobShop/internal/opt"
)

// fixedBase returns a prepared order as the initial solution.
type fixedBase struct{ order *jobshop.ResourceOrder }

func (f fixedBase) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	return opt.Result{Order: f.order.Copy()}, nil
}

func newDescent(t *testing.T, cfg descent.Config, base opt.Optimizer) *descent.Solver {
	t.Helper()
	s, err := descent.New(cfg, base)
	require.NoError(t, err)
	return s
}

func estSPT(t *testing.T) opt.Optimizer {
	t.Helper()
	g, err := greedy.New(greedy.Config{Priority: greedy.EST_SPT})
	require.NoError(t, err)
	return g
}

func TestDescent_AAA1FromESTSPT(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	res, err := newDescent(t, descent.DefaultConfig(), estSPT(t)).Solve(context.Background(), inst)
	require.NoError(t, err)
	assert.Equal(t, 11, res.Makespan)
	assert.Equal(t, opt.StopLocalOptimum, res.Stopped())
}

func TestDescent_AAA1FromSuboptimal(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	base := fixedBase{order: jobshoptest.AAA1Suboptimal(t, inst)}

	res, err := newDescent(t, descent.DefaultConfig(), base).Solve(context.Background(), inst)
	require.NoError(t, err)
	assert.Equal(t, 11, res.Makespan)
	assert.Equal(t, 12, res.Meta["initial_makespan"])
	assert.Equal(t, 1, res.Iterations)
	assert.True(t, res.Order.Equal(jobshoptest.AAA1Optimal(t, inst)))
	assert.Equal(t, res.Makespan, res.Schedule.Makespan())
}

func TestDescent_LocalOptimum(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	for i := 0; i < 15; i++ {
		inst := jobshop.RandomInstance(3+rng.Intn(6), 3+rng.Intn(6), 1, 50, rng)
		start := jobshoptest.RandomOrder(inst, rng)
		initial := jobshoptest.RequireValid(t, start).Makespan()

		cfg := descent.DefaultConfig()
		cfg.Workers = 1 + i%3
		res, err := newDescent(t, cfg, fixedBase{order: start}).Solve(context.Background(), inst)
		require.NoError(t, err)

		assert.LessOrEqual(t, res.Makespan, initial)
		jobshoptest.RequireValid(t, res.Order)
		for _, n := range nowicki.Neighbors(res.Order) {
			if s, ok := n.Decode(); ok {
				assert.GreaterOrEqual(t, s.Makespan(), res.Makespan)
			}
		}
	}
}

func TestDescent_MaxIterations(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	cfg := descent.DefaultConfig()
	cfg.MaxIterations = 1
	// the single step already reaches the optimum, the cap ends the loop before checking again
	res, err := newDescent(t, cfg, fixedBase{order: jobshoptest.AAA1Suboptimal(t, inst)}).Solve(context.Background(), inst)
	require.NoError(t, err)
	assert.Equal(t, 11, res.Makespan)
	assert.Equal(t, opt.StopMaxIter, res.Stopped())
}

func TestDescent_DeadlineReturnsInitial(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newDescent(t, descent.DefaultConfig(), fixedBase{order: jobshoptest.AAA1Suboptimal(t, inst)}).Solve(ctx, inst)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Makespan)
	assert.Equal(t, opt.StopDeadline, res.Stopped())
}

func TestDescent_Config(t *testing.T) {
	assert.NoError(t, descent.DefaultConfig().Validate())
	assert.Error(t, descent.Config{Workers: 0}.Validate())
	assert.Error(t, descent.Config{Workers: 1, MaxIterations: -1}.Validate())

	_, err := descent.New(descent.DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestDescent_InfeasibleBaseIsAnError(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	cycle := jobshoptest.Order(t, inst,
		[][2]int{{1, 1}, {0, 0}},
		[][2]int{{0, 1}, {1, 0}},
		[][2]int{{1, 2}, {0, 2}},
	)
	_, err := newDescent(t, descent.DefaultConfig(), fixedBase{order: cycle}).Solve(context.Background(), inst)
	assert.Error(t, err)
}
