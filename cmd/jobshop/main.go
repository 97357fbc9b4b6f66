package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"jobShop/internal/config"
	"jobShop/internal/logger"
)

var (
	configPath string
	jsonLogs   bool
	verbosity  int

	// cfg заполняется в PersistentPreRunE до запуска любой подкоманды.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "jobshop",
	Short: "Job-shop scheduling: greedy rules, descent and tabu search",
	Long: `jobshop решает задачу job-shop (J работ × M машин, минимизация makespan).

Команды:
  solve  - решить экземпляр из файла
  bench  - сравнить солверы на наборе экземпляров
  gen    - сгенерировать случайный экземпляр

Настройки читаются из TOML (--config), переменных окружения JOBSHOP_* и файла .env.

Примеры:
  jobshop solve ft06 --solver tabu --deadline 2s --gantt
  jobshop bench --pairs 10x5,15x10 --solvers EST_SPT,descent,tabu --runs 10
  jobshop gen --jobs 10 --machines 5 --seed 7 > rand10x5`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env не обязателен
		_ = godotenv.Load()

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("json") {
			loaded.Log.JSON = jsonLogs
		}
		if verbosity > 0 {
			loaded.Log.Verbosity = verbosity
		}
		cfg = loaded

		if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbosity); err != nil {
			return errors.Wrap(err, "initialize logger")
		}
		// JSON-логи обычно уходят в сборщик: escape-последовательности pterm там мешают
		if logger.JSONOutput {
			pterm.DisableStyling()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "путь к TOML-файлу настроек")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "логи в формате JSON")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "подробность логов (-v — debug)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(genCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}
