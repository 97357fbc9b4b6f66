// Package jobshoptest provides fixed instances and order builders shared by solver tests.
package jobshoptest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"jobShop/internal/jobshop"
)

// FT06Optimum is the proven optimal makespan of FT06.
const FT06Optimum = 55

// AAA1 is the 2 jobs x 3 machines instance with optimum 11.
func AAA1(t testing.TB) *jobshop.Instance {
	t.Helper()
	inst, err := jobshop.NewInstance("aaa1", 2, 3,
		[]int{
			0, 1, 2,
			1, 0, 2,
		},
		[]int{
			3, 3, 2,
			2, 2, 4,
		})
	require.NoError(t, err)
	return inst
}

// FT06 is the Fisher and Thompson 6x6 instance.
func FT06(t testing.TB) *jobshop.Instance {
	t.Helper()
	inst, err := jobshop.NewInstance("ft06", 6, 6,
		[]int{
			2, 0, 1, 3, 5, 4,
			1, 2, 4, 5, 0, 3,
			2, 3, 5, 0, 1, 4,
			1, 0, 2, 3, 4, 5,
			2, 1, 4, 5, 0, 3,
			1, 3, 5, 0, 4, 2,
		},
		[]int{
			1, 3, 6, 7, 3, 6,
			8, 5, 10, 10, 10, 4,
			5, 4, 8, 9, 1, 7,
			5, 5, 5, 3, 8, 9,
			9, 3, 5, 4, 3, 1,
			3, 3, 9, 10, 4, 1,
		})
	require.NoError(t, err)
	return inst
}

// Order builds a resource order from per-machine task lists given as {job, task} pairs.
func Order(t testing.TB, inst *jobshop.Instance, machines ...[][2]int) *jobshop.ResourceOrder {
	t.Helper()
	o := jobshop.NewResourceOrder(inst)
	for m, seq := range machines {
		for _, jt := range seq {
			require.NoError(t, o.AddTaskToMachine(m, jobshop.Task{Job: jt[0], Task: jt[1]}))
		}
	}
	return o
}

// AAA1Suboptimal is the order of makespan 12: M2 runs (0,2) before (1,2).
func AAA1Suboptimal(t testing.TB, inst *jobshop.Instance) *jobshop.ResourceOrder {
	return Order(t, inst,
		[][2]int{{0, 0}, {1, 1}},
		[][2]int{{1, 0}, {0, 1}},
		[][2]int{{0, 2}, {1, 2}},
	)
}

// AAA1Optimal is the order of makespan 11.
func AAA1Optimal(t testing.TB, inst *jobshop.Instance) *jobshop.ResourceOrder {
	return Order(t, inst,
		[][2]int{{0, 0}, {1, 1}},
		[][2]int{{1, 0}, {0, 1}},
		[][2]int{{1, 2}, {0, 2}},
	)
}

// RequireValid decodes o and checks both schedule invariants.
func RequireValid(t testing.TB, o *jobshop.ResourceOrder) *jobshop.Schedule {
	t.Helper()
	s, ok := o.Decode()
	require.True(t, ok, "order does not decode:\n%s", o)
	require.NoError(t, s.Validate())
	return s
}

// RandomOrder dispatches the next task of a random unfinished job; the result is always feasible.
func RandomOrder(inst *jobshop.Instance, rng *rand.Rand) *jobshop.ResourceOrder {
	o := jobshop.NewResourceOrder(inst)
	progress := make([]int, inst.Jobs)
	for placed := 0; placed < inst.TotalOps(); placed++ {
		var open []int
		for j, k := range progress {
			if k < inst.Machines {
				open = append(open, j)
			}
		}
		j := open[rng.Intn(len(open))]
		t := jobshop.Task{Job: j, Task: progress[j]}
		if err := o.AddTaskToMachine(inst.Machine(t), t); err != nil {
			panic(err)
		}
		progress[j]++
	}
	return o
}
