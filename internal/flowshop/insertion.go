package flowshop

import "fmt"

// BestInsertion evaluates inserting job at every one of the len(seq)+1
// candidate positions and returns the 0-based position with the minimum
// resulting makespan, together with that makespan.
//
// It uses the Taillard acceleration: forward completion times e[i][m] of
// the prefix ending at i, backward tail times q[i][m] of the suffix
// starting at i, and a single insertion row f[m], so every candidate
// position costs O(Machines) and the whole scan O(len(seq)*Machines).
//
// With tieBreaking disabled, ties keep the first minimal position in scan
// order. With tieBreaking enabled, ties are broken towards the position
// that induces the least idle time in front of the inserted job; an equal
// secondary value again keeps the earlier position.
//
// The sequence is not mutated; job must not already be in it.
//
// The call performs no allocations: the head, tail and seen tables all
// live on the Evaluator.
func (e *Evaluator) BestInsertion(seq []int, job int, tieBreaking bool) (int, int, error) {
	if e == nil || e.inst == nil {
		return 0, 0, fmt.Errorf("nil evaluator")
	}
	if err := e.validateSequence(seq); err != nil {
		return 0, 0, err
	}
	if job < 1 || job > e.inst.Jobs {
		return 0, 0, fmt.Errorf("job id %d out of range [1,%d]", job, e.inst.Jobs)
	}
	if e.seen[job] {
		return 0, 0, fmt.Errorf("job %d already in sequence", job)
	}
	e.evals++

	k := len(seq)
	nm := e.inst.Machines
	if k == 0 {
		return 0, e.inst.JobTotal(job), nil
	}

	// Forward pass: head[i*nm+m] = completion of seq[i] on machine m.
	for i, sj := range seq {
		row := e.head[i*nm : (i+1)*nm]
		for m := 0; m < nm; m++ {
			prev := 0
			if i > 0 {
				prev = e.head[(i-1)*nm+m]
			}
			left := 0
			if m > 0 {
				left = row[m-1]
			}
			if left > prev {
				row[m] = left + e.inst.Time(sj, m)
			} else {
				row[m] = prev + e.inst.Time(sj, m)
			}
		}
	}

	// Backward pass: tail[i*nm+m] = tail time of seq[i] from machine m.
	// tail[k*nm+m] = 0 is the virtual row after the last position.
	for m := 0; m < nm; m++ {
		e.tail[k*nm+m] = 0
	}
	for i := k - 1; i >= 0; i-- {
		sj := seq[i]
		row := e.tail[i*nm : (i+1)*nm]
		for m := nm - 1; m >= 0; m-- {
			next := e.tail[(i+1)*nm+m]
			right := 0
			if m < nm-1 {
				right = row[m+1]
			}
			if right > next {
				row[m] = right + e.inst.Time(sj, m)
			} else {
				row[m] = next + e.inst.Time(sj, m)
			}
		}
	}

	bestPos := 0
	bestMakespan := -1
	bestIdle := 0

	// Insertion scan: f[m] = completion of job on machine m when placed
	// at position p, built from the prefix row e.head[(p-1)*nm:].
	for p := 0; p <= k; p++ {
		candMakespan := 0
		candIdle := 0
		left := 0
		for m := 0; m < nm; m++ {
			prev := 0
			if p > 0 {
				prev = e.head[(p-1)*nm+m]
			}
			start := prev
			if left > start {
				start = left
			}
			if tieBreaking {
				candIdle += start - prev
			}
			f := start + e.inst.Time(job, m)
			left = f

			v := f + e.tail[p*nm+m]
			if v > candMakespan {
				candMakespan = v
			}
		}

		if bestMakespan < 0 || candMakespan < bestMakespan {
			bestPos, bestMakespan, bestIdle = p, candMakespan, candIdle
		} else if tieBreaking && candMakespan == bestMakespan && candIdle < bestIdle {
			bestPos, bestIdle = p, candIdle
		}
	}
	return bestPos, bestMakespan, nil
}
