package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"flowShopIG/internal/bench"
	"flowShopIG/internal/ig"
	"flowShopIG/internal/neh"
	"flowShopIG/internal/opt"
)

// Фабрики

func newNEHFactory(cfg neh.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := neh.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newIGFactory(cfg ig.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := ig.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func main() {
	// CLI флаги для настройки параметров алгоритмов и политики запуска
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		suitePath    = flag.String("suite", "", "путь к YAML-файлу набора запусков (переопределяет pairs/runs/seed)")
		pairs        = flag.String("pairs", "20x5,50x10,100x20", "конфигурации: количество работ Х количество станков (через запятую)")
		instances    = flag.String("instances", "", "пути к файлам экземпляров в формате литературы (через запятую; дополняют pairs)")
		algos        = flag.String("algos", "NEH,IG", "список алгоритмов: NEH, IG (через запятую)")
		runs         = flag.Int("runs", 30, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")

		// --- Конструктивная эвристика NEH ---
		nehOrder = flag.String("neh_order", "sd", "правило упорядочивания работ: sd | ad | random")
		nehTie   = flag.Bool("neh_tie", false, "использовать механизм разрешения ничьих при вставке")

		// --- Iterated Greedy ---
		igTemp      = flag.Float64("ig_temp", 0.4, "параметр температуры критерия принятия")
		igRemove    = flag.Int("ig_remove", 4, "количество работ, удаляемых на каждой итерации")
		igTie       = flag.Bool("ig_tie", false, "использовать механизм разрешения ничьих при вставке")
		igLocalOpt  = flag.Bool("ig_local_opt", true, "повторять локальный поиск до локального оптимума")
		igLSPartial = flag.Bool("ig_ls_partial", false, "применять локальный поиск к частичному решению")
		igSelect    = flag.String("ig_select", "random", "метод отбора удаляемых работ: random | tournament | roulette | sus")
		igTour      = flag.Int("ig_tournament", 5, "размер турнира (для ig_select=tournament)")
		igOrder     = flag.String("ig_order", "sd", "правило упорядочивания работ в NEH: sd | ad | random")
		igBudget    = flag.Duration("ig_budget", time.Second, "бюджет времени одного запуска IG (если ig_runtime_param == 0)")
		igRuntime   = flag.Float64("ig_runtime_param", 0, "параметр бюджета из литературы: бюджет = param*N*(M/2) мс; 0 — использовать ig_budget")
	)
	flag.Parse()

	ctx := context.Background()

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
	}

	var cases []bench.Case
	if *suitePath != "" {
		suite, err := bench.LoadSuite(*suitePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт в файле набора запусков:", err)
			os.Exit(2)
		}
		cases = suite.CaseList()
		if suite.Out != "" {
			*out = suite.Out
		}
		runner.Runs = suite.Runs
		if suite.BaseSeed != 0 {
			runner.BaseSeed = suite.BaseSeed
		}
		if suite.PerRunTimeoutMs > 0 {
			runner.PerRunTimeout = suite.PerRunTimeout()
		}
	} else {
		var err error
		cases, err = parsePairs(*pairs, *instanceSeed)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт:", err)
			os.Exit(2)
		}
		for _, p := range splitCSV(*instances) {
			cases = append(cases, bench.Case{Path: p})
		}
	}

	nehCfg := neh.Config{
		Ordering:    neh.Ordering(*nehOrder),
		TieBreaking: *nehTie,
	}
	if err := nehCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации эвристики NEH:", err)
		os.Exit(2)
	}

	igCfg := ig.Config{
		TemperatureParam:   *igTemp,
		NumJobsRemove:      *igRemove,
		TieBreaking:        *igTie,
		LocalOptimum:       *igLocalOpt,
		LocalSearchPartial: *igLSPartial,
		Selection:          ig.SelectionMethod(*igSelect),
		TournamentSize:     *igTour,
		Ordering:           neh.Ordering(*igOrder),
		Budget:             *igBudget,
	}
	if err := igCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации Iterated Greedy:", err)
		os.Exit(2)
	}

	available := map[string]bench.Algorithm{
		"NEH": {Name: "NEH", Factory: newNEHFactory(nehCfg)},
		"IG":  {Name: "IG", Factory: newIGFactory(igCfg)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[a]
		if !ok {
			fmt.Fprintf(os.Stderr, "Алгоритм не предоставлен в программе %q; доступные: %v\n", a, keys(available))
			os.Exit(2)
		}
		selected = append(selected, al)
	}

	var records []bench.Record
	for _, c := range cases {
		// Бюджет IG из литературы зависит от размеров экземпляра,
		// поэтому конфигурация уточняется по каждому случаю.
		caseIGCfg := igCfg
		if *igRuntime > 0 {
			inst, err := c.Instance()
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			caseIGCfg.Budget = ig.ComputationalTime(inst, *igRuntime)
		}
		caseAlgos := map[string]bench.Algorithm{
			"NEH": available["NEH"],
			"IG":  {Name: "IG", Factory: newIGFactory(caseIGCfg)},
		}

		for _, a := range selected {
			a = caseAlgos[a.Name]
			fmt.Printf("Запущен алгоритм %s; случай %s (общее кол-во запусков=%d)...\n", a.Name, c.Name(), runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Значение целевой функции: лучшее=%d среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms среднее отклонение=%.2fms\n",
				rec.MakespanBest, rec.MakespanMean, rec.MakespanStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// helpers

func parsePairs(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		jm := strings.Split(p, "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 50x10", p)
		}
		jobs, err := atoiStrict(jm[0])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества работ: %w", p, err)
		}
		machines, err := atoiStrict(jm[1])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества машин: %w", p, err)
		}
		if jobs <= 0 || machines <= 0 {
			return nil, fmt.Errorf("пара %q: количество работ и машин должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)

		cases = append(cases, bench.Case{
			Jobs:         jobs,
			Machines:     machines,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
