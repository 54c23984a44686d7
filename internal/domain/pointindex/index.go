// Package pointindex maps drawn pixel coordinates back to the points drawn there.
package pointindex

import (
	"github.com/okian/timeline/internal/domain/model"
)

// Index is a y-major pixel buffer: buffer[y][x] -> point.
type Index struct {
	rows map[int]map[int]model.Point
	size int
}

// New returns an empty Index.
func New() *Index {
	return &Index{rows: make(map[int]map[int]model.Point)}
}

// Reset clears the buffer. Called before every full redraw.
func (idx *Index) Reset() {
	idx.rows = make(map[int]map[int]model.Point)
	idx.size = 0
}

// Put stores p at (p.X, p.Y). A point already stored at the same pixel is
// replaced: the newest draw wins.
func (idx *Index) Put(p model.Point) {
	row, ok := idx.rows[p.Y]
	if !ok {
		row = make(map[int]model.Point)
		idx.rows[p.Y] = row
	}
	if _, exists := row[p.X]; !exists {
		idx.size++
	}
	row[p.X] = p
}

// GetExact returns the point stored at exactly (x, y).
func (idx *Index) GetExact(x, y int) (model.Point, bool) {
	row, ok := idx.rows[y]
	if !ok {
		return model.Point{}, false
	}
	p, ok := row[x]
	return p, ok
}

// GetWithTolerance scans the square [x-tol, x+tol] x [y-tol, y+tol], rows
// first then columns, both ascending, and returns the first stored point.
// The match is not necessarily the closest one.
func (idx *Index) GetWithTolerance(x, y, tolerance int) (model.Point, bool) {
	if tolerance < 0 {
		tolerance = 0
	}
	for yi := y - tolerance; yi <= y+tolerance; yi++ {
		row, ok := idx.rows[yi]
		if !ok {
			continue
		}
		for xj := x - tolerance; xj <= x+tolerance; xj++ {
			if p, ok := row[xj]; ok {
				return p, true
			}
		}
	}
	return model.Point{}, false
}

// Len returns the number of occupied pixels.
func (idx *Index) Len() int { return idx.size }
