// Package nowicki implements the Nowicki–Smutnicki neighborhood on the resource-order encoding.
//
// The critical path of the decoded schedule is split into blocks: maximal runs of critical
// tasks that share a machine and are adjacent in that machine's order. For every block of at
// least two tasks, the neighborhood swaps the first two and the last two tasks of the block
// (a single swap when the block has exactly two tasks).
package nowicki

import (
	"cmp"
	"fmt"

	"jobShop/internal/jobshop"
)

// Block identifies tasks FirstTask..LastTask (positions in the machine order) of Machine.
type Block struct {
	Machine   int
	FirstTask int
	LastTask  int
}

func (b Block) Len() int { return b.LastTask - b.FirstTask + 1 }

// Swap exchanges positions T1 < T2 of Machine. Swaps are comparable values, so they can be
// used directly as map keys.
type Swap struct {
	Machine int
	T1      int
	T2      int
}

// NewSwap normalizes the positions so that T1 < T2.
func NewSwap(machine, t1, t2 int) Swap {
	if t2 < t1 {
		t1, t2 = t2, t1
	}
	return Swap{Machine: machine, T1: t1, T2: t2}
}

// Compare orders swaps lexicographically on (machine, t1, t2).
func (s Swap) Compare(o Swap) int {
	return cmp.Or(
		cmp.Compare(s.Machine, o.Machine),
		cmp.Compare(s.T1, o.T1),
		cmp.Compare(s.T2, o.T2),
	)
}

// Apply returns a copy of order with the two tasks exchanged; order is left untouched.
func (s Swap) Apply(order *jobshop.ResourceOrder) *jobshop.ResourceOrder {
	n := order.Copy()
	n.SwapTasks(s.Machine, s.T1, s.T2)
	return n
}

func (s Swap) String() string {
	return fmt.Sprintf("m%d[%d<->%d]", s.Machine, s.T1, s.T2)
}

// Blocks returns the blocks of length >= 2 on the critical path of order, in path order.
// Infeasible orders have no blocks.
func Blocks(order *jobshop.ResourceOrder) []Block {
	sched, ok := order.Decode()
	if !ok {
		return nil
	}
	return blocksOf(order, sched.CriticalPath())
}

func blocksOf(order *jobshop.ResourceOrder, path []jobshop.Task) []Block {
	var blocks []Block
	if len(path) == 0 {
		return blocks
	}

	m, first := order.IndexOfTaskInMachine(path[0])
	last := first
	for _, t := range path[1:] {
		tm, idx := order.IndexOfTaskInMachine(t)
		if tm == m && idx == last+1 {
			last = idx
			continue
		}
		if last > first {
			blocks = append(blocks, Block{Machine: m, FirstTask: first, LastTask: last})
		}
		m, first, last = tm, idx, idx
	}
	if last > first {
		blocks = append(blocks, Block{Machine: m, FirstTask: first, LastTask: last})
	}
	return blocks
}

// SwapsOf returns the swaps of the first and last pair of b.
func SwapsOf(b Block) []Swap {
	switch {
	case b.LastTask-b.FirstTask < 1:
		return nil
	case b.LastTask-b.FirstTask == 1:
		return []Swap{NewSwap(b.Machine, b.FirstTask, b.LastTask)}
	default:
		return []Swap{
			NewSwap(b.Machine, b.FirstTask, b.FirstTask+1),
			NewSwap(b.Machine, b.LastTask-1, b.LastTask),
		}
	}
}

func AllSwaps(order *jobshop.ResourceOrder) []Swap {
	var swaps []Swap
	for _, b := range Blocks(order) {
		swaps = append(swaps, SwapsOf(b)...)
	}
	return swaps
}

// Neighbors materializes one independent order per swap of AllSwaps.
func Neighbors(order *jobshop.ResourceOrder) []*jobshop.ResourceOrder {
	swaps := AllSwaps(order)
	out := make([]*jobshop.ResourceOrder, len(swaps))
	for i, s := range swaps {
		out[i] = s.Apply(order)
	}
	return out
}
