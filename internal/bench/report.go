package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pterm/pterm"
)

var csvHeader = []string{
	"batch", "algo", "instance", "jobs", "machines", "runs",
	"lower_bound", "best_known",
	"time_best_ms", "time_mean_ms", "time_std_ms",
	"makespan_best", "makespan_mean", "makespan_std",
	"gap_pct", "stops",
}

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeCSV(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func EncodeCSV(out io.Writer, records []Record) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Batch,
			r.Algo,
			r.Instance,
			itoa(r.Jobs),
			itoa(r.Machines),
			itoa(r.Runs),

			itoa(r.LowerBound),
			itoa(r.BestKnown),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),

			ftoa(r.GapPct),
			formatStops(r.Stops),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// formatStops печатает причины остановки в стабильном порядке: "deadline=2;max_iter=8".
func formatStops(stops map[string]int) string {
	keys := make([]string, 0, len(stops))
	for k := range stops {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, stops[k])
	}
	return strings.Join(parts, ";")
}

// RenderTable сводит записи в таблицу для терминала.
func RenderTable(records []Record) (string, error) {
	data := pterm.TableData{
		{"Instance", "Algo", "Runs", "Best", "Mean", "Std", "LB", "Gap %", "Time mean, ms"},
	}
	for _, r := range records {
		data = append(data, []string{
			r.Instance,
			r.Algo,
			itoa(r.Runs),
			itoa(r.MakespanBest),
			fmt.Sprintf("%.2f", r.MakespanMean),
			fmt.Sprintf("%.2f", r.MakespanStd),
			itoa(r.LowerBound),
			fmt.Sprintf("%.2f", r.GapPct),
			fmt.Sprintf("%.2f", r.TimeMeanMs),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}
