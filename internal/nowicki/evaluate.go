package nowicki

import (
	"golang.org/x/sync/errgroup"

	"jobShop/internal/jobshop"
	"jobShop/internal/memo"
)

// Candidate is a neighbor produced by Swap together with its decoded makespan.
type Candidate struct {
	Swap     Swap
	Order    *jobshop.ResourceOrder
	Makespan int
	Feasible bool
}

// Evaluator materializes and decodes neighbors. With Workers > 1 the candidates are decoded
// concurrently; results keep the order of the input swaps either way.
type Evaluator struct {
	Workers int
	Cache   *memo.Cache
}

func (e Evaluator) Evaluate(current *jobshop.ResourceOrder, swaps []Swap) []Candidate {
	out := make([]Candidate, len(swaps))
	eval := func(i int) {
		n := swaps[i].Apply(current)
		ms, ok := e.Cache.Makespan(n)
		out[i] = Candidate{Swap: swaps[i], Order: n, Makespan: ms, Feasible: ok}
	}

	if e.Workers <= 1 || len(swaps) < 2 {
		for i := range swaps {
			eval(i)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(e.Workers)
	for i := range swaps {
		g.Go(func() error {
			eval(i)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Best returns the feasible candidate with the smallest makespan among those accepted by keep
// (nil keeps all). Ties go to the smallest swap.
func Best(cands []Candidate, keep func(Candidate) bool) (Candidate, bool) {
	var (
		best  Candidate
		found bool
	)
	for _, c := range cands {
		if !c.Feasible || (keep != nil && !keep(c)) {
			continue
		}
		if !found || c.Makespan < best.Makespan ||
			(c.Makespan == best.Makespan && c.Swap.Compare(best.Swap) < 0) {
			best, found = c, true
		}
	}
	return best, found
}
