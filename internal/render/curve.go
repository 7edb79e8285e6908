package render

import (
	"github.com/guptarohit/asciigraph"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

// CurveHeight is the number of rows of a plotted curve.
const CurveHeight = 10

// Curve plots the mismatches of every recorded epoch. An empty history gives
// an empty string.
func Curve(h *net.History) string {
	series := h.Mismatches()
	if len(series) == 0 {
		return ""
	}
	return asciigraph.Plot(series, asciigraph.Height(CurveHeight), asciigraph.Caption("mismatches per epoch"))
}

// LossCurve plots the loss of every recorded epoch.
func LossCurve(h *net.History) string {
	series := h.Losses()
	if len(series) == 0 {
		return ""
	}
	return asciigraph.Plot(series, asciigraph.Height(CurveHeight), asciigraph.Caption("loss per epoch"))
}
