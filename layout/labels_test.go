package layout

import (
	"image"
	"testing"

	"github.com/tdewolff/test"
)

func TestOverlap(t *testing.T) {
	test.T(t, Overlap(nil), 0)
	test.T(t, Overlap([]image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(5, 5, 15, 15)}), 25)
	test.T(t, Overlap([]image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(10, 0, 20, 10)}), 0)
}

func TestOptimizeLabelPlacement(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 100)
	test.T(t, len(OptimizeLabelPlacement(bounds, nil, nil, 1)), 0)

	// already fine
	labels := []image.Rectangle{image.Rect(10, 10, 40, 23), image.Rect(50, 10, 80, 23)}
	test.T(t, OptimizeLabelPlacement(bounds, labels, nil, 1), labels)

	labels = []image.Rectangle{image.Rect(80, 40, 120, 53), image.Rect(80, 40, 120, 53), image.Rect(85, 45, 125, 58)}
	placed := OptimizeLabelPlacement(bounds, labels, nil, 3)
	test.T(t, len(placed), 3)
	test.That(t, Overlap(placed) < Overlap(labels), "overlap reduced:", Overlap(placed))
	for i, r := range placed {
		test.That(t, r.In(bounds), "in bounds:", r)
		test.T(t, r.Size(), labels[i].Size())
	}
	test.T(t, labels[0], image.Rect(80, 40, 120, 53), "input untouched")

	// deterministic for a seed
	test.T(t, OptimizeLabelPlacement(bounds, labels, nil, 3), placed)
}
