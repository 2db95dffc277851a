package plotview

import (
	"math"
	"strconv"
)

// MaxTicks bounds the number of ticks generated for a single axis. Exceeding it means the step is too small to advance the tick value, in which case no ticks are returned.
const MaxTicks = 1000

// linearStep returns the tick step for a span, chosen from the candidate tick counts 10, 12, ..., 20 such that the step truncated to its leading digit is closest to the raw step.
func linearStep(span float64) float64 {
	step, diff := 0.0, math.Inf(1)
	for n := 10; n <= 20; n += 2 {
		raw := span / float64(n)
		base := math.Pow(10.0, math.Floor(math.Log10(raw)))
		s := math.Floor(raw/base) * base
		if d := math.Abs(raw - s); d < diff {
			step, diff = s, d
		}
	}
	return step
}

// LinearTicks returns evenly spaced ticks for the range [min,max) and the step between them. The first tick is the multiple of step at or below min. When a tick lies within one step of zero, all ticks are shifted so that one lands exactly on zero. It returns ErrDegenerateRange for empty or non-finite ranges, when the step is too small to advance the tick value, and when more than MaxTicks ticks would be generated.
func LinearTicks(min, max float64) ([]float64, float64, error) {
	if !finite(min) || !finite(max) || max <= min {
		return nil, 0.0, ErrDegenerateRange
	}
	step := linearStep(max - min)
	if !finite(step) || step <= 0.0 {
		return nil, 0.0, ErrDegenerateRange
	}

	start := math.Floor(min/step) * step
	if start+step == start {
		return nil, step, ErrDegenerateRange
	}
	ticks := []float64{}
	closest := math.Inf(1)
	for i := 0; ; i++ {
		t := start + float64(i)*step
		if max <= t {
			break
		} else if i == MaxTicks || 0 < i && t <= ticks[i-1] {
			return nil, step, ErrDegenerateRange
		}
		ticks = append(ticks, t)
		if math.Abs(t) < math.Abs(closest) {
			closest = t
		}
	}
	if math.Abs(closest) <= step {
		for i := range ticks {
			ticks[i] -= closest
		}
	}
	return ticks, step, nil
}

// LogTicks returns one tick per decade within [min,max]. When the range covers fewer than two decades, the multiples 2..9 of each decade are included as well.
func LogTicks(min, max float64) ([]float64, error) {
	if min <= 0.0 {
		return nil, ErrNonPositiveLog
	} else if !finite(min) || !finite(max) || max <= min {
		return nil, ErrDegenerateRange
	}

	lo := math.Floor(math.Log10(min))
	hi := math.Ceil(math.Log10(max))
	if MaxTicks < hi-lo {
		return nil, ErrDegenerateRange
	}
	minor := hi-lo < 2.0

	// slack against rounding errors in the transform
	lower, upper := min*(1.0-1e-9), max*(1.0+1e-9)
	ticks := []float64{}
	for e := lo; e <= hi; e++ {
		decade := math.Pow(10.0, e)
		if lower <= decade && decade <= upper {
			ticks = append(ticks, decade)
		}
		if minor && e < hi {
			for m := 2.0; m <= 9.0; m++ {
				if t := m * decade; lower <= t && t <= upper {
					ticks = append(ticks, t)
				}
			}
		}
	}
	return ticks, nil
}

// FormatTick formats a tick value with as many decimals as the step requires, a non-positive step uses the shortest representation.
func FormatTick(v, step float64) string {
	if v == 0.0 {
		return "0"
	}
	a := math.Abs(v)
	if step <= 0.0 || a < 1e-4 || 1e7 <= a {
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
	prec := max(0, int(-math.Floor(math.Log10(step))))
	for ; prec < 15; prec++ {
		f := step * math.Pow(10.0, float64(prec))
		if math.Abs(f-math.Round(f)) < 1e-6*f {
			break
		}
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
