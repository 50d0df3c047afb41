package flowshop

import "fmt"

// ValidatePermutation checks a full permutation of job ids 1..n.
func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("permutation length must be %d (got %d)", n, len(perm))
	}
	return ValidateSequence(perm, n)
}

// ValidateSequence checks a possibly partial sequence: distinct job ids,
// each in [1, n], length <= n.
func ValidateSequence(seq []int, n int) error {
	if len(seq) > n {
		return fmt.Errorf("sequence length must be <= %d (got %d)", n, len(seq))
	}
	seen := make([]bool, n+1)
	for i, v := range seq {
		if v < 1 || v > n {
			return fmt.Errorf("seq[%d]=%d out of range [1,%d]", i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("duplicate job id %d in sequence", v)
		}
		seen[v] = true
	}
	return nil
}
