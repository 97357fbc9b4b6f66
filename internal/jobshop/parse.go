package jobshop

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Parse reads an instance in the line format
//
//	<numJobs> <numMachines>
//	<m_0> <d_0> <m_1> <d_1> ... (one line per job)
//
// Lines starting with '#' and blank lines are skipped.
func Parse(r io.Reader, name string) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var (
		jobs, machines int
		header         bool
		job            int
		machineOf      []int
		durations      []int
	)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields, err := atoiFields(line)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInstance, "%s:%d: %v", name, lineNo, err)
		}

		if !header {
			if len(fields) != 2 {
				return nil, errors.Wrapf(ErrMalformedInstance,
					"%s:%d: header must be \"<jobs> <machines>\" (got %d values)", name, lineNo, len(fields))
			}
			jobs, machines = fields[0], fields[1]
			if jobs <= 0 || machines <= 0 {
				return nil, errors.Wrapf(ErrMalformedInstance,
					"%s:%d: jobs and machines must be > 0 (got %d %d)", name, lineNo, jobs, machines)
			}
			if jobs > math.MaxInt32/machines {
				return nil, errors.Wrapf(ErrMalformedInstance,
					"%s:%d: %d x %d operations is too many", name, lineNo, jobs, machines)
			}
			// the header is not trusted for allocation: rows are appended as they arrive
			ops := min(jobs*machines, 1<<16)
			machineOf = make([]int, 0, ops)
			durations = make([]int, 0, ops)
			header = true
			continue
		}

		if job >= jobs {
			return nil, errors.Wrapf(ErrMalformedInstance,
				"%s:%d: unexpected data after the last of %d jobs", name, lineNo, jobs)
		}
		if len(fields) != 2*machines {
			return nil, errors.Wrapf(ErrMalformedInstance,
				"%s:%d: job %d must list %d machine/duration pairs (got %d values)",
				name, lineNo, job, machines, len(fields))
		}
		for i := 0; i < len(fields); i += 2 {
			machineOf = append(machineOf, fields[i])
			durations = append(durations, fields[i+1])
		}
		job++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read instance %s", name)
	}
	if !header {
		return nil, errors.Wrapf(ErrMalformedInstance, "%s: empty instance", name)
	}
	if job != jobs {
		return nil, errors.Wrapf(ErrMalformedInstance, "%s: expected %d jobs (got %d)", name, jobs, job)
	}
	inst, err := NewInstance(name, jobs, machines, machineOf, durations)
	if err != nil {
		return nil, errors.Wrapf(err, "instance %s", name)
	}
	return inst, nil
}

// LoadFile parses the instance stored at path; the instance is named after the file.
func LoadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open instance %s", path)
	}
	defer f.Close()
	return Parse(f, filepath.Base(path))
}

// Format writes inst back in the format accepted by Parse.
func Format(w io.Writer, inst *Instance) error {
	bw := bufio.NewWriter(w)
	if inst.Name != "" {
		fmt.Fprintf(bw, "# %s\n", inst.Name)
	}
	fmt.Fprintf(bw, "%d %d\n", inst.Jobs, inst.Machines)
	for j := 0; j < inst.Jobs; j++ {
		for k := 0; k < inst.Machines; k++ {
			if k > 0 {
				bw.WriteByte(' ')
			}
			t := Task{Job: j, Task: k}
			fmt.Fprintf(bw, "%d %d", inst.Machine(t), inst.Duration(t))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func atoiFields(line string) ([]int, error) {
	parts := strings.Fields(line)
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.Newf("value %q is not an integer", p)
		}
		out[i] = v
	}
	return out, nil
}
