package flowshop

import "fmt"

// Evaluator computes completion times, makespans and idle times for job
// sequences over one instance. The scratch rows are reused between calls,
// so a single Evaluator must not be shared between goroutines.
type Evaluator struct {
	inst              *Instance
	machineCompletion []int
	prevCompletion    []int

	// flat (Jobs+1) x Machines tables for the accelerated insertion
	head []int
	tail []int

	// seen keeps sequence validation allocation-free
	seen []bool

	evals int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	rows := (inst.Jobs + 1) * inst.Machines
	return &Evaluator{
		inst:              inst,
		machineCompletion: make([]int, inst.Machines),
		prevCompletion:    make([]int, inst.Machines),
		head:              make([]int, rows),
		tail:              make([]int, rows),
		seen:              make([]bool, inst.Jobs+1),
	}, nil
}

// validateSequence is ValidateSequence on the evaluator's reusable scratch:
// after a nil return e.seen[v] is true exactly for the members of seq.
func (e *Evaluator) validateSequence(seq []int) error {
	n := e.inst.Jobs
	if len(seq) > n {
		return fmt.Errorf("sequence length must be <= %d (got %d)", n, len(seq))
	}
	for i := range e.seen {
		e.seen[i] = false
	}
	for i, v := range seq {
		if v < 1 || v > n {
			return fmt.Errorf("seq[%d]=%d out of range [1,%d]", i, v, n)
		}
		if e.seen[v] {
			return fmt.Errorf("duplicate job id %d in sequence", v)
		}
		e.seen[v] = true
	}
	return nil
}

// Evaluations returns the number of schedule evaluations performed with
// this evaluator: every Makespan call and every accelerated insertion
// scan counts as one.
func (e *Evaluator) Evaluations() int { return e.evals }

// Makespan returns the makespan of a (possibly partial) sequence.
// An empty sequence has makespan 0.
func (e *Evaluator) Makespan(seq []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if err := e.validateSequence(seq); err != nil {
		return 0, err
	}
	e.evals++
	if len(seq) == 0 {
		return 0, nil
	}

	for m := range e.machineCompletion {
		e.machineCompletion[m] = 0
	}

	for _, job := range seq {
		e.machineCompletion[0] += e.inst.Time(job, 0)
		for m := 1; m < e.inst.Machines; m++ {
			left := e.machineCompletion[m-1]
			up := e.machineCompletion[m]
			if left > up {
				e.machineCompletion[m] = left + e.inst.Time(job, m)
			} else {
				e.machineCompletion[m] = up + e.inst.Time(job, m)
			}
		}
	}
	return e.machineCompletion[e.inst.Machines-1], nil
}

func (e *Evaluator) MustMakespan(seq []int) int {
	ms, err := e.Makespan(seq)
	if err != nil {
		panic(err)
	}
	return ms
}

// CompletionTimes returns the full completion-time table:
// C[i][m] = max(C[i-1][m], C[i][m-1]) + p[seq[i]][m], with the borders at 0.
// The table is freshly allocated; the inputs are not mutated.
func (e *Evaluator) CompletionTimes(seq []int) ([][]int, error) {
	if e == nil || e.inst == nil {
		return nil, fmt.Errorf("nil evaluator")
	}
	if err := e.validateSequence(seq); err != nil {
		return nil, err
	}

	nm := e.inst.Machines
	c := make([][]int, len(seq))
	for i, job := range seq {
		c[i] = make([]int, nm)
		for m := 0; m < nm; m++ {
			up := 0
			if i > 0 {
				up = c[i-1][m]
			}
			left := 0
			if m > 0 {
				left = c[i][m-1]
			}
			if left > up {
				c[i][m] = left + e.inst.Time(job, m)
			} else {
				c[i][m] = up + e.inst.Time(job, m)
			}
		}
	}
	return c, nil
}

// IdleTimes returns the idle time attributable to each job of the sequence,
// indexed by job id (length Jobs+1, index 0 unused). A job is charged, on
// every machine, the gap between the previous job's completion on that
// machine and its own start there; the first job is charged its front
// delays. Jobs not in the sequence keep idle time 0.
func (e *Evaluator) IdleTimes(seq []int) ([]int, error) {
	if e == nil || e.inst == nil {
		return nil, fmt.Errorf("nil evaluator")
	}
	if err := e.validateSequence(seq); err != nil {
		return nil, err
	}

	idle := make([]int, e.inst.Jobs+1)
	for m := range e.prevCompletion {
		e.prevCompletion[m] = 0
	}

	for _, job := range seq {
		jobIdle := 0
		curLeft := 0 // completion of this job on the previous machine
		for m := 0; m < e.inst.Machines; m++ {
			start := e.prevCompletion[m]
			if curLeft > start {
				start = curLeft
			}
			jobIdle += start - e.prevCompletion[m]
			curLeft = start + e.inst.Time(job, m)
			e.prevCompletion[m] = curLeft
		}
		idle[job] = jobIdle
	}
	return idle, nil
}
