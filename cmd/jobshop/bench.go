package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"jobShop/internal/bench"
	"jobShop/internal/logger"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Сравнить солверы на наборе экземпляров",
	Long: `Запускает каждый солвер --runs раз на каждом экземпляре и пишет сводку в CSV.

Экземпляры берутся из YAML-набора (--suite) либо генерируются по парам J×M (--pairs).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b := cfg.Bench
		flags := cmd.Flags()
		if flags.Changed("suite") {
			b.Suite, _ = flags.GetString("suite")
		}
		if flags.Changed("pairs") {
			b.Pairs, _ = flags.GetString("pairs")
		}
		if flags.Changed("solvers") {
			b.Solvers, _ = flags.GetString("solvers")
		}
		if flags.Changed("runs") {
			b.Runs, _ = flags.GetInt("runs")
		}
		if flags.Changed("seed") {
			b.Seed, _ = flags.GetInt64("seed")
		}
		if flags.Changed("per-run-timeout") {
			b.PerRunTimeout, _ = flags.GetDuration("per-run-timeout")
		}
		if flags.Changed("out") {
			b.Out, _ = flags.GetString("out")
		}

		var cases []bench.Case
		var err error
		if b.Suite != "" {
			cases, err = bench.LoadSuite(b.Suite)
		} else {
			cases, err = bench.ParsePairs(b.Pairs, b.InstanceSeed)
		}
		if err != nil {
			return err
		}

		selected, err := selectAlgorithms(cfg, b.Solvers)
		if err != nil {
			return err
		}

		runner := bench.NewRunner(b.Runs, b.Seed, b.PerRunTimeout)
		logger.Named("bench").Infow("batch started",
			"batch", runner.BatchID,
			"cases", len(cases),
			"solvers", len(selected),
			"runs", runner.Runs,
		)

		var records []bench.Record
		for _, c := range cases {
			for _, a := range selected {
				pterm.Info.Printf("Запущен алгоритм %s; %s (общее кол-во запусков=%d)...\n", a.Name, caseLabel(c), runner.Runs)

				rec, err := runner.RunCase(cmd.Context(), c, a)
				if err != nil {
					return err
				}
				records = append(records, rec)

				pterm.Printf("  Значение целевой функции: лучшее=%d среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms\n",
					rec.MakespanBest, rec.MakespanMean, rec.MakespanStd, rec.TimeMeanMs)
			}
		}

		table, err := bench.RenderTable(records)
		if err != nil {
			return err
		}
		pterm.Println(table)

		if err := bench.WriteCSV(b.Out, records); err != nil {
			return err
		}
		pterm.Success.Println("Saved:", b.Out)
		return nil
	},
}

func caseLabel(c bench.Case) string {
	if c.Name != "" {
		return c.Name
	}
	if c.Path != "" {
		return c.Path
	}
	return pterm.Sprintf("%d работ %d машин", c.Jobs, c.Machines)
}

func init() {
	f := benchCmd.Flags()
	f.String("suite", "", "YAML-набор экземпляров")
	f.String("pairs", "", "конфигурации: количество работ Х количество машин (через запятую)")
	f.String("solvers", "", "список солверов через запятую")
	f.Int("runs", 0, "количество запусков каждого солвера (с разными сидами)")
	f.Int64("seed", 0, "базовый сид для запусков")
	f.Duration("per-run-timeout", 0, "таймаут одного запуска; 0 — без ограничения")
	f.String("out", "", "путь к выходному CSV-файлу")
}
