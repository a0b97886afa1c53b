package random

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by Select when no candidates are supplied.
	ErrEmptyInput = errors.New("random: no candidates to select from")
	// ErrNonPositiveTotalWeight is returned by Select when the weights sum to <= 0.
	ErrNonPositiveTotalWeight = errors.New("random: total weight must be positive")
	// ErrNegativeWeight is returned by Select when any candidate has a negative weight.
	ErrNegativeWeight = errors.New("random: candidate weight must not be negative")
)

// Candidate pairs a payload with its selection weight.
type Candidate[T any] struct {
	Value  T
	Weight float64
}

// TotalWeight validates candidates and returns the sum of their weights.
//
// Postcondition: returns a positive total, or one of ErrEmptyInput,
// ErrNegativeWeight, ErrNonPositiveTotalWeight.
func TotalWeight[T any](candidates []Candidate[T]) (float64, error) {
	if len(candidates) == 0 {
		return 0, ErrEmptyInput
	}
	total := 0.0
	for i, c := range candidates {
		if c.Weight < 0 {
			return 0, fmt.Errorf("%w: candidate %d has weight %g", ErrNegativeWeight, i, c.Weight)
		}
		total += c.Weight
	}
	if !(total > 0) {
		return 0, fmt.Errorf("%w: got %g", ErrNonPositiveTotalWeight, total)
	}
	return total, nil
}

// Select picks one candidate with probability proportional to its weight.
//
// The candidates are laid end to end over [0, total); a single draw from src
// lands in exactly one interval. A zero-weight candidate owns an empty
// interval and is never returned.
//
// Precondition: src is non-nil.
// Postcondition: on success the returned index refers to a candidate with
// a positive weight.
func Select[T any](src Source, candidates []Candidate[T]) (T, error) {
	i, err := SelectIndex(src, candidates)
	if err != nil {
		var zero T
		return zero, err
	}
	return candidates[i].Value, nil
}

// SelectIndex is Select returning the position of the chosen candidate.
func SelectIndex[T any](src Source, candidates []Candidate[T]) (int, error) {
	total, err := TotalWeight(candidates)
	if err != nil {
		return -1, err
	}
	return pick(candidates, src.Float64()*total), nil
}

// pick walks the intervals subtracting each weight from r and stops at the
// first candidate where the remainder drops to <= 0.
func pick[T any](candidates []Candidate[T], r float64) int {
	last := -1
	for i, c := range candidates {
		if c.Weight == 0 {
			continue
		}
		last = i
		r -= c.Weight
		if r <= 0 {
			return i
		}
	}
	// Rounding drift can leave r marginally positive after the final interval.
	return last
}
