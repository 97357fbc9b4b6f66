package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"jobShop/internal/jobshop"
)

var (
	genJobs     int
	genMachines int
	genSeed     int64
	genMinTime  int
	genMaxTime  int
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Сгенерировать случайный экземпляр",
	RunE: func(cmd *cobra.Command, args []string) error {
		if genJobs <= 0 || genMachines <= 0 {
			return errors.Newf("количество работ и машин должно быть > 0 (получено %dx%d)", genJobs, genMachines)
		}
		if genMinTime <= 0 || genMaxTime < genMinTime {
			return errors.Newf("длительности: нужно 0 < min <= max (получено %d..%d)", genMinTime, genMaxTime)
		}
		inst := jobshop.RandomInstance(genJobs, genMachines, genMinTime, genMaxTime, rand.New(rand.NewSource(genSeed)))
		inst.Name = fmt.Sprintf("rand-%dx%d-s%d", genJobs, genMachines, genSeed)
		return jobshop.Format(os.Stdout, inst)
	},
}

func init() {
	genCmd.Flags().IntVar(&genJobs, "jobs", 10, "количество работ")
	genCmd.Flags().IntVar(&genMachines, "machines", 5, "количество машин")
	genCmd.Flags().Int64Var(&genSeed, "seed", 1, "сид генератора")
	genCmd.Flags().IntVar(&genMinTime, "min", 1, "минимальная длительность операции")
	genCmd.Flags().IntVar(&genMaxTime, "max", 99, "максимальная длительность операции")
}
