package bench

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"jobShop/internal/logger"
	"jobShop/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) (opt.Optimizer, error)
}

type Record struct {
	Batch    string
	Algo     string
	Instance string
	Jobs     int
	Machines int
	Runs     int

	LowerBound int
	BestKnown  int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64

	// GapPct — отклонение лучшего мейкспана от best_known, либо от нижней оценки.
	GapPct float64

	// Stops — сколько запусков завершилось по каждой причине.
	Stops map[string]int
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout

	// BatchID помечает все записи одного прогона; пустой заменяется новым UUID.
	BatchID string
}

// NewRunner возвращает раннер с новым идентификатором прогона.
func NewRunner(runs int, baseSeed int64, perRunTimeout time.Duration) Runner {
	return Runner{
		Runs:          runs,
		BaseSeed:      baseSeed,
		PerRunTimeout: perRunTimeout,
		BatchID:       uuid.New().String(),
	}
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	if r.Runs <= 0 {
		return Record{}, errors.Newf("Runs должно быть > 0 (получено %d)", r.Runs)
	}
	if r.BatchID == "" {
		r.BatchID = uuid.New().String()
	}
	log := logger.Named("bench")

	inst, err := c.Instance()
	if err != nil {
		return Record{}, err
	}

	makespans := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	stops := make(map[string]int)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op, err := algo.Factory(runSeed)
		if err != nil {
			return Record{}, errors.Wrapf(err, "%s: конфигурация", algo.Name)
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil {
			return Record{}, errors.Wrapf(err, "%s on %s, run %d", algo.Name, inst.Name, i)
		}
		if res.Schedule == nil {
			return Record{}, errors.Wrapf(opt.ErrNoSolution, "%s on %s, run %d", algo.Name, inst.Name, i)
		}
		// Каждое расписание проверяется независимо от солвера
		if err := res.Schedule.Validate(); err != nil {
			return Record{}, errors.Wrapf(err, "%s on %s, run %d", algo.Name, inst.Name, i)
		}

		makespans = append(makespans, res.Makespan)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
		stops[res.Stopped()]++

		log.Debugw("run",
			"algo", algo.Name,
			"instance", inst.Name,
			"run", i,
			"makespan", res.Makespan,
			"stopped", res.Stopped(),
		)
	}

	msStats := Calc(makespans)
	tStats := Calc(timesMs)

	lb := inst.LowerBound()
	ref := c.BestKnown
	if ref <= 0 {
		ref = lb
	}

	return Record{
		Batch:    r.BatchID,
		Algo:     algo.Name,
		Instance: inst.Name,
		Jobs:     inst.Jobs,
		Machines: inst.Machines,
		Runs:     r.Runs,

		LowerBound: lb,
		BestKnown:  c.BestKnown,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,

		GapPct: Gap(float64(msStats.Best), ref),
		Stops:  stops,
	}, nil
}
