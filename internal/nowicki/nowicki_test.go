package nowicki_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobShop/internal/jobshop"
	"jobShop/internal/jobshop/jobshoptest"
	"jobShop/internal/memo"
	"jobShop/internal/nowicki"
)

func TestBlocks_AAA1(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	o := jobshoptest.AAA1Suboptimal(t, inst)

	blocks := nowicki.Blocks(o)
	require.Equal(t, []nowicki.Block{{Machine: 2, FirstTask: 0, LastTask: 1}}, blocks)
	assert.Equal(t, 2, blocks[0].Len())

	swaps := nowicki.AllSwaps(o)
	require.Equal(t, []nowicki.Swap{{Machine: 2, T1: 0, T2: 1}}, swaps)

	neighbors := nowicki.Neighbors(o)
	require.Len(t, neighbors, 1)
	assert.True(t, neighbors[0].Equal(jobshoptest.AAA1Optimal(t, inst)))
}

func TestBlocks_Infeasible(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	cycle := jobshoptest.Order(t, inst,
		[][2]int{{1, 1}, {0, 0}},
		[][2]int{{0, 1}, {1, 0}},
		[][2]int{{1, 2}, {0, 2}},
	)
	assert.Empty(t, nowicki.Blocks(cycle))
	assert.Empty(t, nowicki.AllSwaps(cycle))
}

func TestSwapsOf(t *testing.T) {
	cases := []struct {
		name  string
		block nowicki.Block
		want  []nowicki.Swap
	}{
		{"single", nowicki.Block{Machine: 1, FirstTask: 3, LastTask: 3}, nil},
		{"pair", nowicki.Block{Machine: 1, FirstTask: 2, LastTask: 3},
			[]nowicki.Swap{{Machine: 1, T1: 2, T2: 3}}},
		{"triple", nowicki.Block{Machine: 0, FirstTask: 0, LastTask: 2},
			[]nowicki.Swap{{Machine: 0, T1: 0, T2: 1}, {Machine: 0, T1: 1, T2: 2}}},
		{"long", nowicki.Block{Machine: 4, FirstTask: 1, LastTask: 5},
			[]nowicki.Swap{{Machine: 4, T1: 1, T2: 2}, {Machine: 4, T1: 4, T2: 5}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nowicki.SwapsOf(tc.block))
		})
	}
}

func TestSwap_ValueSemantics(t *testing.T) {
	a := nowicki.NewSwap(2, 5, 4)
	b := nowicki.NewSwap(2, 4, 5)
	assert.Equal(t, nowicki.Swap{Machine: 2, T1: 4, T2: 5}, a)
	assert.True(t, a == b)

	memory := map[nowicki.Swap]int{a: 7}
	assert.Equal(t, 7, memory[b])

	assert.Negative(t, nowicki.NewSwap(1, 4, 5).Compare(a))
	assert.Negative(t, nowicki.NewSwap(2, 3, 4).Compare(a))
	assert.Positive(t, nowicki.NewSwap(2, 4, 6).Compare(a))
	assert.Zero(t, a.Compare(b))
	assert.Equal(t, "m2[4<->5]", a.String())
}

func TestApply_PureAndInvolutive(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 30; i++ {
		inst := jobshop.RandomInstance(2+rng.Intn(6), 2+rng.Intn(6), 1, 30, rng)
		o := jobshoptest.RandomOrder(inst, rng)
		snapshot := o.Copy()

		m := rng.Intn(inst.Machines)
		t1 := rng.Intn(inst.Jobs - 1)
		s := nowicki.NewSwap(m, t1, t1+1)

		n := s.Apply(o)
		assert.True(t, o.Equal(snapshot), "Apply mutated its input")
		assert.Equal(t, o.TaskOfMachine(m, t1), n.TaskOfMachine(m, t1+1))
		assert.True(t, s.Apply(n).Equal(o))
	}
}

func TestBlocks_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 40; i++ {
		inst := jobshop.RandomInstance(2+rng.Intn(7), 2+rng.Intn(7), 1, 40, rng)
		o := jobshoptest.RandomOrder(inst, rng)
		s := jobshoptest.RequireValid(t, o)
		path := s.CriticalPath()

		onPath := make(map[jobshop.Task]int, len(path))
		for idx, tk := range path {
			onPath[tk] = idx
		}

		for _, b := range nowicki.Blocks(o) {
			require.GreaterOrEqual(t, b.Len(), 2)
			first, ok := onPath[o.TaskOfMachine(b.Machine, b.FirstTask)]
			require.True(t, ok, "block start not on the critical path")
			for k := 0; k < b.Len(); k++ {
				tk := o.TaskOfMachine(b.Machine, b.FirstTask+k)
				assert.Equal(t, first+k, onPath[tk], "block tasks must be consecutive on the path")
				assert.Equal(t, b.Machine, inst.Machine(tk))
			}
		}

		for _, sw := range nowicki.AllSwaps(o) {
			assert.Equal(t, sw.T1+1, sw.T2)
		}
	}
}

func TestNeighbors_DoNotAlias(t *testing.T) {
	inst := jobshoptest.FT06(t)
	o := jobshoptest.RandomOrder(inst, rand.New(rand.NewSource(1)))
	snapshot := o.Copy()

	for _, n := range nowicki.Neighbors(o) {
		n.SwapTasks(0, 0, 1)
	}
	assert.True(t, o.Equal(snapshot))
}

func TestEvaluator_ParallelMatchesSequential(t *testing.T) {
	inst := jobshoptest.FT06(t)
	rng := rand.New(rand.NewSource(8))
	cache, err := memo.New(256)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		o := jobshoptest.RandomOrder(inst, rng)
		swaps := nowicki.AllSwaps(o)

		seq := nowicki.Evaluator{Workers: 1}.Evaluate(o, swaps)
		par := nowicki.Evaluator{Workers: 4, Cache: cache}.Evaluate(o, swaps)
		require.Len(t, par, len(seq))
		for k := range seq {
			assert.Equal(t, seq[k].Swap, par[k].Swap)
			assert.Equal(t, seq[k].Makespan, par[k].Makespan)
			assert.Equal(t, seq[k].Feasible, par[k].Feasible)
			assert.True(t, seq[k].Order.Equal(par[k].Order))
		}

		b1, ok1 := nowicki.Best(seq, nil)
		b2, ok2 := nowicki.Best(par, nil)
		assert.Equal(t, ok1, ok2)
		assert.Equal(t, b1.Swap, b2.Swap)
	}
}

func TestBest_TieBreakAndFilter(t *testing.T) {
	cands := []nowicki.Candidate{
		{Swap: nowicki.NewSwap(3, 0, 1), Makespan: 10, Feasible: true},
		{Swap: nowicki.NewSwap(1, 2, 3), Makespan: 10, Feasible: true},
		{Swap: nowicki.NewSwap(0, 0, 1), Makespan: 5, Feasible: false},
		{Swap: nowicki.NewSwap(2, 0, 1), Makespan: 12, Feasible: true},
	}

	best, ok := nowicki.Best(cands, nil)
	require.True(t, ok)
	assert.Equal(t, nowicki.NewSwap(1, 2, 3), best.Swap)

	best, ok = nowicki.Best(cands, func(c nowicki.Candidate) bool { return c.Swap.Machine >= 2 })
	require.True(t, ok)
	assert.Equal(t, nowicki.NewSwap(3, 0, 1), best.Swap)

	_, ok = nowicki.Best(cands, func(nowicki.Candidate) bool { return false })
	assert.False(t, ok)
}
