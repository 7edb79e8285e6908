// Package opt provides the parameter update rule and learning rate schedules
// used by the chain-rule training strategies.
package opt

// SGD (Stochastic Gradient Descent) optimizer.
type SGD struct {
	LearningRate float64
}

// Update returns param - lr * grad.
func (s SGD) Update(param, grad float64) float64 {
	return param - s.LearningRate*grad
}

// StepInPlace updates params in-place: params = params - lr * gradients
func (s SGD) StepInPlace(params, gradients []float64) {
	for i := range params {
		params[i] = s.Update(params[i], gradients[i])
	}
}
