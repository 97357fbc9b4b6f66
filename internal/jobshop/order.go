package jobshop

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/zeebo/blake3"
)

// ResourceOrder fixes, for every machine, the order in which its tasks are processed.
type ResourceOrder struct {
	inst  *Instance
	tasks [][]Task
}

func NewResourceOrder(inst *Instance) *ResourceOrder {
	tasks := make([][]Task, inst.Machines)
	for m := range tasks {
		tasks[m] = make([]Task, 0, inst.Jobs)
	}
	return &ResourceOrder{inst: inst, tasks: tasks}
}

// FromSchedule orders the tasks of every machine by their start time in s.
func FromSchedule(s *Schedule) *ResourceOrder {
	o := &ResourceOrder{inst: s.inst, tasks: s.machineSequences()}
	return o
}

func (o *ResourceOrder) Instance() *Instance { return o.inst }

// AddTaskToMachine appends t to the sequence of machine m.
func (o *ResourceOrder) AddTaskToMachine(m int, t Task) error {
	if m < 0 || m >= o.inst.Machines {
		return errors.Newf("machine %d out of range [0,%d)", m, o.inst.Machines)
	}
	if t.Job < 0 || t.Job >= o.inst.Jobs || t.Task < 0 || t.Task >= o.inst.Machines {
		return errors.Newf("task %s out of range", t)
	}
	if got := o.inst.Machine(t); got != m {
		return errors.Newf("task %s runs on machine %d, not %d", t, got, m)
	}
	if len(o.tasks[m]) >= o.inst.Jobs {
		return errors.Newf("machine %d already holds %d tasks", m, o.inst.Jobs)
	}
	if slices.Contains(o.tasks[m], t) {
		return errors.Newf("task %s already scheduled on machine %d", t, m)
	}
	o.tasks[m] = append(o.tasks[m], t)
	return nil
}

// SwapTasks exchanges positions t1 and t2 of machine m in place.
func (o *ResourceOrder) SwapTasks(m, t1, t2 int) {
	seq := o.tasks[m]
	seq[t1], seq[t2] = seq[t2], seq[t1]
}

func (o *ResourceOrder) TaskOfMachine(m, idx int) Task {
	return o.tasks[m][idx]
}

// Len is the number of tasks currently ordered on machine m.
func (o *ResourceOrder) Len(m int) int { return len(o.tasks[m]) }

// IndexOfTaskInMachine returns the machine of t and its position there, or -1 when t has not
// been added yet.
func (o *ResourceOrder) IndexOfTaskInMachine(t Task) (machine, idx int) {
	m := o.inst.Machine(t)
	return m, slices.Index(o.tasks[m], t)
}

func (o *ResourceOrder) IsComplete() bool {
	for _, seq := range o.tasks {
		if len(seq) != o.inst.Jobs {
			return false
		}
	}
	return true
}

func (o *ResourceOrder) Copy() *ResourceOrder {
	tasks := make([][]Task, len(o.tasks))
	for m, seq := range o.tasks {
		tasks[m] = slices.Clone(seq)
	}
	return &ResourceOrder{inst: o.inst, tasks: tasks}
}

func (o *ResourceOrder) Equal(other *ResourceOrder) bool {
	if len(o.tasks) != len(other.tasks) {
		return false
	}
	for m := range o.tasks {
		if !slices.Equal(o.tasks[m], other.tasks[m]) {
			return false
		}
	}
	return true
}

// Decode simulates the order and returns the semi-active schedule it induces. The boolean is
// false when the machine orders and job precedences contain a cycle or when the order is
// incomplete.
func (o *ResourceOrder) Decode() (*Schedule, bool) {
	inst := o.inst
	n := inst.TotalOps()

	next := make([]int, inst.Machines)
	jobProgress := make([]int, inst.Jobs)
	machineAvail := make([]int, inst.Machines)
	jobAvail := make([]int, inst.Jobs)
	sched := NewSchedule(inst)

	for placed := 0; placed < n; {
		progress := false
		for m, seq := range o.tasks {
			for next[m] < len(seq) {
				t := seq[next[m]]
				if jobProgress[t.Job] != t.Task {
					break
				}
				start := max(jobAvail[t.Job], machineAvail[m])
				end := start + inst.Duration(t)
				sched.SetStart(t, start)

				jobAvail[t.Job] = end
				machineAvail[m] = end
				jobProgress[t.Job]++
				next[m]++
				placed++
				progress = true
			}
		}
		if !progress {
			return nil, false
		}
	}
	return sched, true
}

// Fingerprint hashes the machine sequences; equal orders of one instance share a fingerprint.
func (o *ResourceOrder) Fingerprint() [32]byte {
	buf := make([]byte, 0, 8*o.inst.TotalOps()+4*len(o.tasks))
	for _, seq := range o.tasks {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(seq)))
		for _, t := range seq {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Job))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Task))
		}
	}
	return blake3.Sum256(buf)
}

func (o *ResourceOrder) String() string {
	var b strings.Builder
	for m, seq := range o.tasks {
		if m > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "m%d:", m)
		for _, t := range seq {
			b.WriteByte(' ')
			b.WriteString(t.String())
		}
	}
	return b.String()
}
