package jobshop

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Schedule assigns a start time to every task of an instance.
type Schedule struct {
	inst  *Instance
	start []int
}

func NewSchedule(inst *Instance) *Schedule {
	return &Schedule{inst: inst, start: make([]int, inst.TotalOps())}
}

func (s *Schedule) Instance() *Instance { return s.inst }

func (s *Schedule) Start(t Task) int {
	return s.start[t.Job*s.inst.Machines+t.Task]
}

func (s *Schedule) SetStart(t Task, start int) {
	s.start[t.Job*s.inst.Machines+t.Task] = start
}

func (s *Schedule) End(t Task) int {
	return s.Start(t) + s.inst.Duration(t)
}

func (s *Schedule) Makespan() int {
	ms := 0
	for j := 0; j < s.inst.Jobs; j++ {
		// the last task of a job ends last in any valid schedule, but hand-built schedules may not be valid
		for k := 0; k < s.inst.Machines; k++ {
			ms = max(ms, s.End(Task{Job: j, Task: k}))
		}
	}
	return ms
}

func (s *Schedule) Copy() *Schedule {
	return &Schedule{inst: s.inst, start: slices.Clone(s.start)}
}

// Equal compares start times element-wise.
func (s *Schedule) Equal(o *Schedule) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.inst.Jobs == o.inst.Jobs && s.inst.Machines == o.inst.Machines && slices.Equal(s.start, o.start)
}

// Validate checks job precedence and machine exclusivity.
func (s *Schedule) Validate() error {
	for j := 0; j < s.inst.Jobs; j++ {
		for k := 0; k < s.inst.Machines; k++ {
			t := Task{Job: j, Task: k}
			if s.Start(t) < 0 {
				return errors.Newf("task %s starts before 0 (%d)", t, s.Start(t))
			}
			if k > 0 {
				prev := Task{Job: j, Task: k - 1}
				if s.End(prev) > s.Start(t) {
					return errors.Newf("task %s starts at %d before %s ends at %d", t, s.Start(t), prev, s.End(prev))
				}
			}
		}
	}
	for m, seq := range s.machineSequences() {
		for i := 1; i < len(seq); i++ {
			if s.End(seq[i-1]) > s.Start(seq[i]) {
				return errors.Newf("machine %d: tasks %s and %s overlap", m, seq[i-1], seq[i])
			}
		}
	}
	return nil
}

// machineSequences lists the tasks of every machine by start time, ties by job.
func (s *Schedule) machineSequences() [][]Task {
	seqs := make([][]Task, s.inst.Machines)
	for j := 0; j < s.inst.Jobs; j++ {
		for k := 0; k < s.inst.Machines; k++ {
			t := Task{Job: j, Task: k}
			m := s.inst.Machine(t)
			seqs[m] = append(seqs[m], t)
		}
	}
	for _, seq := range seqs {
		slices.SortStableFunc(seq, func(a, b Task) int {
			return cmp.Or(cmp.Compare(s.Start(a), s.Start(b)), cmp.Compare(a.Job, b.Job))
		})
	}
	return seqs
}

// CriticalPath returns a chain of tasks, linked by job or machine arcs, whose durations sum up
// to the makespan. The walk starts from the task ending last (smallest machine on ties) and,
// when both arcs are tight, follows the machine arc.
func (s *Schedule) CriticalPath() []Task {
	seqs := s.machineSequences()
	prevOnMachine := make(map[Task]Task, s.inst.TotalOps())
	for _, seq := range seqs {
		for i := 1; i < len(seq); i++ {
			prevOnMachine[seq[i]] = seq[i-1]
		}
	}

	ms := s.Makespan()
	var (
		last  Task
		found bool
	)
	for _, seq := range seqs {
		// tasks of one machine never overlap, so at most the last one can end at the makespan
		for _, t := range seq {
			if s.End(t) == ms && (!found || t.Job < last.Job) {
				last, found = t, true
			}
		}
		if found {
			break
		}
	}
	if !found {
		return nil
	}

	path := []Task{last}
	cur := last
	for s.Start(cur) > 0 {
		if q, ok := prevOnMachine[cur]; ok && s.End(q) == s.Start(cur) {
			cur = q
		} else if cur.Task > 0 && s.End(Task{Job: cur.Job, Task: cur.Task - 1}) == s.Start(cur) {
			cur = Task{Job: cur.Job, Task: cur.Task - 1}
		} else {
			// idle gap before cur: only possible for schedules that are not semi-active
			break
		}
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

func (s *Schedule) String() string {
	var b strings.Builder
	for j := 0; j < s.inst.Jobs; j++ {
		fmt.Fprintf(&b, "job %d:", j)
		for k := 0; k < s.inst.Machines; k++ {
			t := Task{Job: j, Task: k}
			fmt.Fprintf(&b, " [m%d %d-%d]", s.inst.Machine(t), s.Start(t), s.End(t))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "makespan: %d", s.Makespan())
	return b.String()
}
