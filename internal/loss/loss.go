// Package loss provides the loss functions reported while training.
package loss

import "math"

// Loss measures how far a prediction is from its target.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64
}

// MSE (Mean Squared Error) loss.
type MSE struct{}

// Forward computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (m MSE) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("MSE: prediction and target must have same length")
	}
	if n == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yPred[i] - yTrue[i]
		sum += diff * diff
	}
	return sum / float64(n)
}

// CrossEntropy loss over softmax probabilities.
type CrossEntropy struct{}

// Forward computes cross entropy: -sum(y_true * log(y_pred))
func (c CrossEntropy) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("CrossEntropy: prediction and target must have same length")
	}

	const eps = 1e-12
	var sum float64
	for i := 0; i < n; i++ {
		// Clip prediction to avoid log(0)
		pred := yPred[i]
		if pred < eps {
			pred = eps
		}
		sum -= yTrue[i] * math.Log(pred)
	}
	return sum
}

// BackwardInPlace stores y_pred - y_true in grad, which is the gradient of
// cross entropy composed with softmax w.r.t. the logits.
func (c CrossEntropy) BackwardInPlace(yPred, yTrue, grad []float64) {
	n := len(yPred)
	if n != len(yTrue) || n != len(grad) {
		panic("CrossEntropy: slices must have same length")
	}

	for i := 0; i < n; i++ {
		grad[i] = yPred[i] - yTrue[i]
	}
}

// OneHot fills dst with 1 at index and 0 elsewhere. dst is allocated when it
// is shorter than n.
func OneHot(dst []float64, n, index int) []float64 {
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = 0
	}
	if index >= 0 && index < n {
		dst[index] = 1
	}
	return dst
}
