package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Quad is a four-corner region as returned by OCR engines. The corners
// are not required to form an axis-aligned rectangle.
type Quad [4]Point

// Bounds returns the axis-aligned box enclosing the quad as
// (x0, x1, y0, y1), using corner min/max.
func (q Quad) Bounds() (x0, x1, y0, y1 float64) {
	x0, y0 = q[0].X, q[0].Y
	x1, y1 = q[0].X, q[0].Y
	for _, p := range q[1:] {
		x0 = math.Min(x0, p.X)
		x1 = math.Max(x1, p.X)
		y0 = math.Min(y0, p.Y)
		y1 = math.Max(y1, p.Y)
	}
	return x0, x1, y0, y1
}
