package random

import "go.uber.org/zap"

// Picker wraps a Source and logger to provide logged weighted selection.
// Every selection is logged at debug level with the chosen index, the number
// of candidates and the total weight.
type Picker struct {
	src    Source
	logger *zap.Logger
}

// NewPicker creates a Picker that draws from src and logs each pick to logger.
//
// Precondition: src and logger must be non-nil.
func NewPicker(src Source, logger *zap.Logger) *Picker {
	if src == nil {
		panic("random: NewPicker precondition violated: src must be non-nil")
	}
	if logger == nil {
		panic("random: NewPicker precondition violated: logger must be non-nil")
	}
	return &Picker{src: src, logger: logger}
}

// Source returns the Source the Picker draws from.
func (p *Picker) Source() Source { return p.src }

// PickIndex selects a candidate index with SelectIndex and logs the outcome.
// Failures are logged at debug level as well and returned unchanged.
func PickIndex[T any](p *Picker, candidates []Candidate[T]) (int, error) {
	i, err := SelectIndex(p.src, candidates)
	if err != nil {
		p.logger.Debug("weighted pick rejected",
			zap.Int("candidates", len(candidates)),
			zap.Error(err),
		)
		return -1, err
	}
	total, _ := TotalWeight(candidates)
	p.logger.Debug("weighted pick",
		zap.Int("index", i),
		zap.Int("candidates", len(candidates)),
		zap.Float64("weight", candidates[i].Weight),
		zap.Float64("total_weight", total),
	)
	return i, nil
}

// Pick selects a candidate value with Select and logs the outcome.
func Pick[T any](p *Picker, candidates []Candidate[T]) (T, error) {
	i, err := PickIndex(p, candidates)
	if err != nil {
		var zero T
		return zero, err
	}
	return candidates[i].Value, nil
}

// Int draws a logged uniform integer in [lo, hi].
func (p *Picker) Int(lo, hi int) int {
	v := Int(p.src, lo, hi)
	p.logger.Debug("random int", zap.Int("min", lo), zap.Int("max", hi), zap.Int("value", v))
	return v
}

// Float draws a logged uniform float in [lo, hi).
func (p *Picker) Float(lo, hi float64) float64 {
	v := Float(p.src, lo, hi)
	p.logger.Debug("random float", zap.Float64("min", lo), zap.Float64("max", hi), zap.Float64("value", v))
	return v
}
