package main

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"jobShop/internal/greedy"
	"jobShop/internal/jobshop"
	"jobShop/internal/logger"
	"jobShop/internal/opt"
	"jobShop/internal/render"
)

var (
	solveSolver   string
	solvePriority string
	solveDeadline time.Duration
	solveSeed     int64
	solveGantt    bool
	solveWidth    int
	solveColor    bool
)

var solveCmd = &cobra.Command{
	Use:   "solve FILE",
	Short: "Решить экземпляр из файла",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := jobshop.LoadFile(args[0])
		if err != nil {
			return err
		}
		if solvePriority != "" {
			p, err := greedy.ParsePriority(solvePriority)
			if err != nil {
				return err
			}
			cfg.Greedy.Priority = string(p)
		}

		algos, err := selectAlgorithms(cfg, solveSolver)
		if err != nil {
			return err
		}
		if len(algos) != 1 {
			return errors.Newf("solve принимает один солвер (получено %d)", len(algos))
		}
		op, err := algos[0].Factory(solveSeed)
		if err != nil {
			return err
		}

		start := time.Now()
		sched, err := opt.SolveWithDeadline(op, inst, solveDeadline)
		if err != nil {
			return err
		}

		pterm.Success.Printf("%s: %s, makespan %d (нижняя оценка %d) за %s\n",
			inst.Name, algos[0].Name, sched.Makespan(), inst.LowerBound(), time.Since(start).Round(time.Microsecond))
		pterm.Println(sched.String())
		pterm.Info.Println("Критический путь: " + render.CriticalPath(sched))

		if solveGantt {
			return render.Gantt(os.Stdout, sched, ganttOptions(solveWidth, solveColor))
		}
		return nil
	},
}

// ganttOptions отключает цвет при JSON-логах.
func ganttOptions(width int, color bool) render.Options {
	return render.Options{Width: width, Color: color && !logger.JSONOutput}
}

func init() {
	solveCmd.Flags().StringVar(&solveSolver, "solver", "tabu", "солвер: greedy | SPT | LRPT | EST_SPT | EST_LRPT | ... | descent | tabu | sa")
	solveCmd.Flags().StringVar(&solvePriority, "priority", "", "правило жадного построения (по умолчанию из [greedy])")
	solveCmd.Flags().DurationVar(&solveDeadline, "deadline", 0, "ограничение по времени; 0 — без ограничения")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 1, "сид для стохастических солверов")
	solveCmd.Flags().BoolVar(&solveGantt, "gantt", false, "печатать диаграмму Ганта")
	solveCmd.Flags().IntVar(&solveWidth, "width", 100, "ширина диаграммы Ганта в символах")
	solveCmd.Flags().BoolVar(&solveColor, "color", true, "раскрашивать работы на диаграмме")
}
