// Package layout places series name labels so that they do not overlap.
package layout

import (
	"image"
	"math"
	"math/rand/v2"
)

// Iterations is the number of simulated annealing steps.
var Iterations = 200

// OptimizeLabelPlacement uses simulated annealing to move the labels so that none are overlapping, they are close to their original position (anchor), and they don't leave the bounds rectangle. The seed makes the placement deterministic between redraws.
func OptimizeLabelPlacement(bounds image.Rectangle, labels, others []image.Rectangle, seed uint64) []image.Rectangle {
	if len(labels) == 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	Temperature := 100.0
	StepSize := math.Max(float64(bounds.Dx()), float64(bounds.Dy())) / 50.0

	// ensure bounds encompasses all labels
	for _, label := range labels {
		bounds = bounds.Union(label)
	}

	// define energy function
	energy := func(current []image.Rectangle) float64 {
		E := 0.0
		for i, label := range current {
			// outside bounds is highly penalised
			if !label.In(bounds) {
				return math.Inf(1.0)
			}

			// distance from original position
			d := label.Min.Sub(labels[i].Min)
			distAnchor := math.Hypot(float64(d.X), float64(d.Y))

			// overlap with other labels and other objects
			overlapArea := 0
			for j, other := range current {
				if i != j {
					overlapArea += area(label.Intersect(other))
				}
			}
			for _, other := range others {
				overlapArea += area(label.Intersect(other))
			}
			E += distAnchor + 100.0*float64(overlapArea)
		}
		return E
	}

	// define update function
	update := func(labels []image.Rectangle) {
		// StepSize is the standard deviation
		dx := int(math.Round(rng.NormFloat64() * StepSize))
		dy := int(math.Round(rng.NormFloat64() * StepSize))
		index := rng.IntN(len(labels))
		labels[index] = labels[index].Add(image.Point{dx, dy})
	}

	// initial solution
	current := make([]image.Rectangle, len(labels))
	copy(current, labels)
	currentE := energy(current)

	best := make([]image.Rectangle, len(labels))
	copy(best, labels)
	bestE := currentE

	candidate := make([]image.Rectangle, len(labels))
	for i := 0; i < Iterations && 0.0 < bestE; i++ {
		T := Temperature / float64(i+1)

		// generate candidate solution
		copy(candidate, current)
		update(candidate)
		candidateE := energy(candidate)

		// check to keep the new solution or not
		if candidateE < bestE || rng.Float64() < math.Exp((currentE-candidateE)/T) {
			if candidateE < bestE {
				copy(best, candidate)
				bestE = candidateE
			}
			copy(current, candidate)
			currentE = candidateE
		}
	}
	return best
}

// Overlap returns the total area in pixels where the rectangles overlap each other.
func Overlap(rects []image.Rectangle) int {
	n := 0
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			n += area(rects[i].Intersect(rects[j]))
		}
	}
	return n
}

func area(r image.Rectangle) int {
	if r.Empty() {
		return 0
	}
	return r.Dx() * r.Dy()
}
