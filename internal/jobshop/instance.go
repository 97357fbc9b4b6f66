package jobshop

import (
	"cmp"
	"fmt"
	"math/rand"

	"github.com/cockroachdb/errors"
)

// ErrMalformedInstance marks every parse and validation failure of an instance.
var ErrMalformedInstance = errors.New("malformed instance")

// Task identifies the operation at position Task of job Job.
type Task struct {
	Job  int
	Task int
}

func (t Task) String() string {
	return fmt.Sprintf("(%d,%d)", t.Job, t.Task)
}

// Compare orders tasks lexicographically on (job, task).
func (t Task) Compare(o Task) int {
	return cmp.Or(cmp.Compare(t.Job, o.Job), cmp.Compare(t.Task, o.Task))
}

// Instance is a square job-shop instance: every job visits every machine exactly once,
// so the number of operations per job equals Machines.
type Instance struct {
	Name     string
	Jobs     int
	Machines int
	// MachineOf and Durations are row-major, length Jobs*Machines.
	MachineOf []int
	Durations []int
}

func NewInstance(name string, jobs, machines int, machineOf, durations []int) (*Instance, error) {
	inst := &Instance{
		Name:      name,
		Jobs:      jobs,
		Machines:  machines,
		MachineOf: machineOf,
		Durations: durations,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.Wrap(ErrMalformedInstance, "instance is nil")
	}
	if inst.Jobs <= 0 {
		return errors.Wrapf(ErrMalformedInstance, "jobs must be > 0 (got %d)", inst.Jobs)
	}
	if inst.Machines <= 0 {
		return errors.Wrapf(ErrMalformedInstance, "machines must be > 0 (got %d)", inst.Machines)
	}
	n := inst.Jobs * inst.Machines
	if len(inst.MachineOf) != n || len(inst.Durations) != n {
		return errors.Wrapf(ErrMalformedInstance,
			"machine and duration tables must have jobs*machines=%d entries (got %d and %d)",
			n, len(inst.MachineOf), len(inst.Durations))
	}
	seen := make([]int, inst.Machines)
	for j := 0; j < inst.Jobs; j++ {
		for k := 0; k < inst.Machines; k++ {
			i := j*inst.Machines + k
			m := inst.MachineOf[i]
			if m < 0 || m >= inst.Machines {
				return errors.Wrapf(ErrMalformedInstance,
					"job %d task %d: machine %d out of range [0,%d)", j, k, m, inst.Machines)
			}
			if seen[m] == j+1 {
				return errors.Wrapf(ErrMalformedInstance,
					"job %d visits machine %d more than once", j, m)
			}
			seen[m] = j + 1
			if inst.Durations[i] <= 0 {
				return errors.Wrapf(ErrMalformedInstance,
					"job %d task %d: duration must be > 0 (got %d)", j, k, inst.Durations[i])
			}
		}
	}
	return nil
}

// Tasks is the number of operations per job.
func (inst *Instance) Tasks() int { return inst.Machines }

func (inst *Instance) TotalOps() int { return inst.Jobs * inst.Machines }

func (inst *Instance) Machine(t Task) int {
	return inst.MachineOf[t.Job*inst.Machines+t.Task]
}

func (inst *Instance) Duration(t Task) int {
	return inst.Durations[t.Job*inst.Machines+t.Task]
}

// RemainingWork sums the durations of tasks k..K-1 of job j.
func (inst *Instance) RemainingWork(j, k int) int {
	sum := 0
	for ; k < inst.Machines; k++ {
		sum += inst.Durations[j*inst.Machines+k]
	}
	return sum
}

// LowerBound is the larger of the longest job and the most loaded machine.
func (inst *Instance) LowerBound() int {
	load := make([]int, inst.Machines)
	lb := 0
	for j := 0; j < inst.Jobs; j++ {
		lb = max(lb, inst.RemainingWork(j, 0))
		for k := 0; k < inst.Machines; k++ {
			t := Task{Job: j, Task: k}
			load[inst.Machine(t)] += inst.Duration(t)
		}
	}
	for _, l := range load {
		lb = max(lb, l)
	}
	return lb
}

// RandomInstance builds a jobs x machines instance where each job visits the machines in a random order.
func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if minTime <= 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	n := jobs * machines
	machineOf := make([]int, 0, n)
	durations := make([]int, n)
	span := maxTime - minTime + 1
	for j := 0; j < jobs; j++ {
		machineOf = append(machineOf, rng.Perm(machines)...)
	}
	for i := range durations {
		durations[i] = minTime
		if span > 1 {
			durations[i] += rng.Intn(span)
		}
	}
	inst, err := NewInstance(fmt.Sprintf("rand-%dx%d", jobs, machines), jobs, machines, machineOf, durations)
	if err != nil {
		panic(err)
	}
	return inst
}
