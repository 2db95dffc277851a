package gonumplot

import (
	"github.com/tdewolff/plotview"
	"gonum.org/v1/plot"
)

// Ticker is a plot.Ticker using the plotview linear or logarithmic tick algorithm, so that gonum plots get the same ticks as plotview axes.
type Ticker struct {
	Log bool
}

// Ticks returns the ticks for the range [min,max]. Degenerate ranges have no ticks.
func (t Ticker) Ticks(min, max float64) []plot.Tick {
	if t.Log {
		values, err := plotview.LogTicks(min, max)
		if err != nil {
			return nil
		}
		ticks := make([]plot.Tick, len(values))
		for i, v := range values {
			ticks[i] = plot.Tick{Value: v, Label: plotview.FormatTick(v, 0.0)}
		}
		return ticks
	}

	// include max, plotview ticks cover [min,max)
	values, step, err := plotview.LinearTicks(min, max+1e-9*(max-min))
	if err != nil {
		return nil
	}
	ticks := make([]plot.Tick, len(values))
	for i, v := range values {
		ticks[i] = plot.Tick{Value: v, Label: plotview.FormatTick(v, step)}
	}
	return ticks
}

// AxisTicker is a plot.Ticker returning the ticks last computed by a plotview axis, ignoring the requested range.
type AxisTicker struct {
	Axis *plotview.Axis
}

// Ticks returns the ticks and labels of the axis.
func (t AxisTicker) Ticks(min, max float64) []plot.Tick {
	values, labels := t.Axis.Ticks(), t.Axis.Labels()
	ticks := make([]plot.Tick, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: label})
	}
	return ticks
}
