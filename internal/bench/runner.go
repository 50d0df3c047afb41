package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"flowShopIG/internal/flowshop"
	"flowShopIG/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

// Case describes one benchmark instance: either a literature instance file
// (Path set) or a seeded random instance (Jobs/Machines/InstanceSeed).
type Case struct {
	Jobs         int
	Machines     int
	InstanceSeed int64

	// Path to an instance file in the literature format; when set,
	// Jobs/Machines/InstanceSeed are ignored.
	Path string
}

func (c Case) Instance() (*flowshop.Instance, error) {
	if c.Path != "" {
		return ReadInstanceFile(c.Path)
	}
	instRng := randForSeed(c.InstanceSeed)
	return flowshop.RandomInstance(c.Jobs, c.Machines, 1, 99, instRng), nil
}

func (c Case) Name() string {
	if c.Path != "" {
		return c.Path
	}
	return fmt.Sprintf("%dx%d", c.Jobs, c.Machines)
}

type Record struct {
	Algo     string
	Jobs     int
	Machines int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	inst, err := c.Instance()
	if err != nil {
		return Record{}, fmt.Errorf("case %s: %w", c.Name(), err)
	}

	makespans := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if err := flowshop.ValidatePermutation(res.Permutation, inst.Jobs); err != nil {
			return Record{}, fmt.Errorf("run %d: invalid permutation: %w", i, err)
		}

		makespans = append(makespans, res.Makespan)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	msStats := CalcStats(makespans)
	tStats := CalcStats(timesMs)

	return Record{
		Algo:     algo.Name,
		Jobs:     inst.Jobs,
		Machines: inst.Machines,
		Runs:     r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,
	}, nil
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
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "jobs", "machines", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"makespan_best", "makespan_mean", "makespan_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Jobs),
			itoa(r.Machines),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
