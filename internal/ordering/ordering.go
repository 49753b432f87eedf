// Package ordering turns an unordered set of face boxes into reading order
// and numbers them.
//
// # Modes
//
// Single-row mode sorts strictly left to right. Row mode clusters boxes by
// vertical center into rows (top to bottom) and reads each row left to right.
//
// # Row Clustering
//
// Boxes are sorted by vertical center and walked once. A box joins the
// current row while its center lies within the tolerance of the row anchor,
// the center of the first box placed in that row. The anchor never moves, so
// a slowly sloping row can chain further than the tolerance from its last
// member but never further than the tolerance from its first one.
//
// The tolerance is rowTolFactor times the median box height, floored at
// MinRowTolerance pixels so a photo of tiny faces does not split every box
// into its own row.
//
// All sorts are stable: boxes with equal keys keep their input order.
package ordering

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/group-photo-labeler/internal/box"
)

// MinRowTolerance is the pixel floor for the row clustering tolerance.
const MinRowTolerance = 18.0

// DefaultRowTolerance is the default factor applied to the median height.
const DefaultRowTolerance = 0.75

// Order returns boxes in reading order. The input slice is not modified.
func Order(boxes []box.Box, forceSingleRow bool, rowTolFactor float64) []box.Box {
	idx := Indices(box.Rects(boxes), forceSingleRow, rowTolFactor)
	out := make([]box.Box, len(idx))
	for i, j := range idx {
		out[i] = boxes[j]
	}
	return out
}

// Indices returns the permutation that puts rects into reading order.
func Indices(rects []image.Rectangle, forceSingleRow bool, rowTolFactor float64) []int {
	if forceSingleRow {
		idx := identity(len(rects))
		sort.SliceStable(idx, func(a, b int) bool {
			return rects[idx[a]].Min.X < rects[idx[b]].Min.X
		})
		return idx
	}
	var out []int
	for _, row := range Rows(rects, rowTolFactor) {
		out = append(out, row...)
	}
	if out == nil {
		out = []int{}
	}
	return out
}

// Rows groups rects into rows, top to bottom, each row sorted left to right.
// The returned values are indices into rects.
func Rows(rects []image.Rectangle, rowTolFactor float64) [][]int {
	if len(rects) == 0 {
		return nil
	}

	centers := make([]float64, len(rects))
	heights := make([]float64, len(rects))
	for i, r := range rects {
		centers[i] = float64(r.Min.Y) + float64(r.Dy())/2.0
		heights[i] = float64(r.Dy())
	}
	tol := Tolerance(heights, rowTolFactor)

	idx := identity(len(rects))
	sort.SliceStable(idx, func(a, b int) bool {
		return centers[idx[a]] < centers[idx[b]]
	})

	var rows [][]int
	current := []int{idx[0]}
	anchor := centers[idx[0]]
	for _, i := range idx[1:] {
		if math.Abs(centers[i]-anchor) <= tol {
			current = append(current, i)
			continue
		}
		rows = append(rows, sortByX(current, rects))
		current = []int{i}
		anchor = centers[i]
	}
	rows = append(rows, sortByX(current, rects))
	return rows
}

// Tolerance computes the row clustering tolerance for the given box heights.
func Tolerance(heights []float64, rowTolFactor float64) float64 {
	return math.Max(rowTolFactor*Median(heights), MinRowTolerance)
}

// Median returns the median of values, averaging the two middle values for
// an even count. An empty input yields 1.0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 1.0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2.0
}

// AssignIDs numbers boxes 1..N by position and returns the numbered copy.
func AssignIDs(ordered []box.Box) []box.Box {
	out := make([]box.Box, len(ordered))
	for i, b := range ordered {
		b.ID = i + 1
		out[i] = b
	}
	return out
}

// Number orders boxes and assigns IDs in one step.
func Number(boxes []box.Box, forceSingleRow bool, rowTolFactor float64) []box.Box {
	return AssignIDs(Order(boxes, forceSingleRow, rowTolFactor))
}

func sortByX(row []int, rects []image.Rectangle) []int {
	sort.SliceStable(row, func(a, b int) bool {
		return rects[row[a]].Min.X < rects[row[b]].Min.X
	})
	return row
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
