// Package render prints schedules as text Gantt charts.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jobShop/internal/jobshop"
)

const jobSymbols = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Options control the chart layout. Width is the maximum number of time cells per row;
// 0 means one cell per time unit.
type Options struct {
	Width int
	Color bool
}

var (
	axisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	idleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// jobStyle cycles through the 256-colour palette, skipping the darkest entries.
func jobStyle(j int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(fmt.Sprint(17 + (j*37)%214)))
}

func symbol(j int) byte {
	if j < len(jobSymbols) {
		return jobSymbols[j]
	}
	return '#'
}

// Gantt writes one row per machine. A cell shows the job running at the start of the
// cell's time slice, '.' when the machine is idle.
func Gantt(w io.Writer, s *jobshop.Schedule, opts Options) error {
	inst := s.Instance()
	mk := s.Makespan()

	scale := 1
	if opts.Width > 0 && mk > opts.Width {
		scale = (mk + opts.Width - 1) / opts.Width
	}
	cells := (mk + scale - 1) / scale

	// owner[m][time] = job+1, 0 when idle
	owner := make([][]int, inst.Machines)
	for m := range owner {
		owner[m] = make([]int, mk)
	}
	for j := 0; j < inst.Jobs; j++ {
		for k := 0; k < inst.Machines; k++ {
			t := jobshop.Task{Job: j, Task: k}
			row := owner[inst.Machine(t)]
			for x := s.Start(t); x < s.End(t); x++ {
				row[x] = j + 1
			}
		}
	}

	label := len(fmt.Sprintf("m%d", inst.Machines-1))
	var b strings.Builder
	for m := 0; m < inst.Machines; m++ {
		fmt.Fprintf(&b, "%-*s |", label, fmt.Sprintf("m%d", m))
		for c := 0; c < cells; c++ {
			j := owner[m][c*scale]
			switch {
			case j == 0 && opts.Color:
				b.WriteString(idleStyle.Render("."))
			case j == 0:
				b.WriteByte('.')
			case opts.Color:
				b.WriteString(jobStyle(j - 1).Render(string(symbol(j - 1))))
			default:
				b.WriteByte(symbol(j - 1))
			}
		}
		b.WriteString("|\n")
	}

	axis := fmt.Sprintf("%*s  0%*d", label, "", cells-1, mk)
	if cells < 2 {
		axis = fmt.Sprintf("%*s  %d", label, "", mk)
	}
	if scale > 1 {
		axis += fmt.Sprintf("  (1 cell = %d)", scale)
	}
	if opts.Color {
		axis = axisStyle.Render(axis)
	}
	b.WriteString(axis)
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// CriticalPath formats the critical path as "(0,0) -> (1,1) -> ...".
func CriticalPath(s *jobshop.Schedule) string {
	path := s.CriticalPath()
	parts := make([]string, len(path))
	for i, t := range path {
		parts[i] = t.String()
	}
	return strings.Join(parts, " -> ")
}
