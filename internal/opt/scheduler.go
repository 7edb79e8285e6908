package opt

import "math"

// Schedule yields the learning rate for an epoch. Epochs are counted from 1.
type Schedule interface {
	Rate(epoch int) float64
}

// Constant keeps the learning rate fixed.
type Constant float64

// Rate returns the constant rate.
func (c Constant) Rate(int) float64 { return float64(c) }

// StepDecay multiplies the learning rate by Gamma every StepSize epochs.
type StepDecay struct {
	Initial  float64
	StepSize int
	Gamma    float64
}

// Rate returns Initial * Gamma^floor((epoch-1)/StepSize).
func (s StepDecay) Rate(epoch int) float64 {
	if s.StepSize <= 0 || epoch <= 1 {
		return s.Initial
	}
	return s.Initial * math.Pow(s.Gamma, float64((epoch-1)/s.StepSize))
}

// Exponential decays the learning rate by Gamma every epoch, never going
// below Min.
type Exponential struct {
	Initial float64
	Gamma   float64
	Min     float64
}

// Rate returns max(Min, Initial * Gamma^(epoch-1)).
func (e Exponential) Rate(epoch int) float64 {
	if epoch < 1 {
		epoch = 1
	}
	return math.Max(e.Min, e.Initial*math.Pow(e.Gamma, float64(epoch-1)))
}
