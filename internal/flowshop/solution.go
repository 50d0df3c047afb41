package flowshop

import "fmt"

// Solution owns one candidate sequence over a shared read-only instance.
// Makespan is cached (0 means "not computed yet"); the idle-time vector is
// populated on demand. Sequences are never shared between Solutions: every
// assignment goes through Clone or CopyFrom with a deep copy.
type Solution struct {
	inst *Instance
	eval *Evaluator

	Sequence []int
	Makespan int

	idleTimes []int
}

func NewSolution(inst *Instance) (*Solution, error) {
	eval, err := NewEvaluator(inst)
	if err != nil {
		return nil, err
	}
	return &Solution{
		inst:     inst,
		eval:     eval,
		Sequence: make([]int, 0, inst.Jobs),
	}, nil
}

func (s *Solution) Instance() *Instance { return s.inst }

// InsertBestPosition inserts job at the position minimizing the resulting
// makespan, updates the cached makespan and returns it. The job must not
// already be in the sequence.
func (s *Solution) InsertBestPosition(job int, tieBreaking bool) (int, error) {
	pos, makespan, err := s.eval.BestInsertion(s.Sequence, job, tieBreaking)
	if err != nil {
		return 0, err
	}
	s.Sequence = append(s.Sequence, 0)
	copy(s.Sequence[pos+1:], s.Sequence[pos:])
	s.Sequence[pos] = job
	s.Makespan = makespan
	return makespan, nil
}

// Remove deletes job from the sequence, preserving the order of the rest.
// The cached makespan becomes stale and is reset to 0.
func (s *Solution) Remove(job int) bool {
	for i, v := range s.Sequence {
		if v == job {
			s.Sequence = append(s.Sequence[:i], s.Sequence[i+1:]...)
			s.Makespan = 0
			return true
		}
	}
	return false
}

// CalculateMakespan recomputes and caches the makespan of the current
// sequence.
func (s *Solution) CalculateMakespan() (int, error) {
	ms, err := s.eval.Makespan(s.Sequence)
	if err != nil {
		return 0, err
	}
	s.Makespan = ms
	return ms, nil
}

// CalculateIdleTimes recomputes and caches the per-job idle-time vector
// (indexed by job id, length Jobs+1).
func (s *Solution) CalculateIdleTimes() ([]int, error) {
	idle, err := s.eval.IdleTimes(s.Sequence)
	if err != nil {
		return nil, err
	}
	s.idleTimes = idle
	return idle, nil
}

// IdleTimes returns the cached idle-time vector, or nil if it has not been
// computed since the last mutation.
func (s *Solution) IdleTimes() []int { return s.idleTimes }

// Evaluations returns the number of schedule evaluations performed for
// this solution. Clones start at zero.
func (s *Solution) Evaluations() int { return s.eval.Evaluations() }

// Clone returns a deep copy sharing only the read-only instance.
// The clone gets its own Evaluator scratch.
func (s *Solution) Clone() *Solution {
	c, err := NewSolution(s.inst)
	if err != nil {
		// the instance was already validated when s was built
		panic(fmt.Sprintf("clone of invalid solution: %v", err))
	}
	c.Sequence = append(c.Sequence, s.Sequence...)
	c.Makespan = s.Makespan
	return c
}

// CopyFrom replaces this solution's sequence and makespan with deep copies
// taken from other. Both must reference the same instance.
func (s *Solution) CopyFrom(other *Solution) {
	s.Sequence = s.Sequence[:0]
	s.Sequence = append(s.Sequence, other.Sequence...)
	s.Makespan = other.Makespan
	s.idleTimes = nil
}
