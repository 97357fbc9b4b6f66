package ts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobShop/internal/nowicki"
)

func TestTabuList(t *testing.T) {
	l := newTabuList()
	s := nowicki.NewSwap(2, 5, 4)

	assert.False(t, l.IsTabu(s, 1))
	l.Add(s, 1, 6)
	assert.True(t, l.IsTabu(s, 5))
	assert.True(t, l.IsTabu(nowicki.NewSwap(2, 4, 5), 5), "descriptor is normalized")
	assert.False(t, l.IsTabu(s, 6))
	assert.False(t, l.IsTabu(nowicki.NewSwap(1, 4, 5), 5))
}

func TestTabuList_PrunesExpired(t *testing.T) {
	l := newTabuList()
	for i := 0; i < 100; i++ {
		l.Add(nowicki.NewSwap(i, 0, 1), i, i+3)
	}
	// only entries still active at the last insertion survive a prune
	assert.Less(t, l.Len(), 70)
	assert.True(t, l.IsTabu(nowicki.NewSwap(99, 0, 1), 100))
	assert.True(t, l.IsTabu(nowicki.NewSwap(98, 0, 1), 100))
}

func cand(m, t1, mk int, feasible bool) nowicki.Candidate {
	return nowicki.Candidate{Swap: nowicki.NewSwap(m, t1, t1+1), Makespan: mk, Feasible: feasible}
}

func TestChoose_AspirationOverridesTabu(t *testing.T) {
	l := newTabuList()
	l.Add(nowicki.NewSwap(0, 0, 1), 1, 10)

	cands := []nowicki.Candidate{cand(0, 0, 9, true), cand(1, 2, 12, true)}
	got, ok := choose(cands, l, 3, 10)
	require.True(t, ok)
	assert.Equal(t, nowicki.NewSwap(0, 0, 1), got.Swap)

	// without the improvement the tabu swap is skipped in favour of the allowed one
	cands[0].Makespan = 11
	got, ok = choose(cands, l, 3, 10)
	require.True(t, ok)
	assert.Equal(t, nowicki.NewSwap(1, 2, 3), got.Swap)
}

func TestChoose_AllTabuTakesLeastWorsening(t *testing.T) {
	l := newTabuList()
	cands := []nowicki.Candidate{
		cand(2, 0, 15, true),
		cand(1, 1, 13, true),
		cand(0, 4, 13, true),
		cand(0, 1, 12, false),
	}
	for _, c := range cands {
		l.Add(c.Swap, 1, 20)
	}

	got, ok := choose(cands, l, 5, 11)
	require.True(t, ok)
	// smallest feasible makespan, ties to the smallest (machine, t1, t2)
	assert.Equal(t, nowicki.NewSwap(0, 4, 5), got.Swap)
	assert.Equal(t, 13, got.Makespan)
}

func TestChoose_NoFeasibleCandidate(t *testing.T) {
	_, ok := choose([]nowicki.Candidate{cand(0, 0, 5, false)}, newTabuList(), 1, 10)
	assert.False(t, ok)
	_, ok = choose(nil, newTabuList(), 1, 10)
	assert.False(t, ok)
}
